package dealer

// Hand is thirteen cards belonging to one seat. A [Hand] is immutable
// once produced by the shuffle engine, and only ever exists as part of
// a [Deal].
type Hand [NumRanks]Card

// Cards yields the hand's thirteen cards in slot-fill order (predeal
// slots first, then the shuffled remainder) — not sorted. Used only by
// emission; evaluators should use [Deal.Stats] instead of scanning
// cards directly.
func (h Hand) Cards() []Card {
	v := make([]Card, NumRanks)
	copy(v, h[:])
	return v
}

// Contains reports whether the hand holds the given card.
func (h Hand) Contains(c Card) bool {
	for _, hc := range h {
		if hc == c {
			return true
		}
	}
	return false
}

// Deal is a partition of the 52 cards into four 13-card hands, one per
// seat. A [Deal] is never mutated after creation, and is dropped once
// evaluated (and optionally emitted).
type Deal struct {
	hands [NumSeats]Hand
	stats [NumSeats]*HandStats
}

// Hand returns the deal's hand for the given seat.
func (d *Deal) Hand(seat Seat) Hand {
	return d.hands[seat]
}

// FromDeck builds a [Deal] from a 52-card permutation: the first 13
// cards go to [North], the next 13 to [East], the next 13 to [South],
// and the last 13 to [West]. Fails only on misuse: deck must be a
// permutation of 0..52.
func FromDeck(deck [NumCards]Card) (*Deal, error) {
	var seen [NumCards]bool
	for _, c := range deck {
		if int(c) >= NumCards || seen[c] {
			return nil, ErrBadDeck
		}
		seen[c] = true
	}
	d := &Deal{}
	for i, seat := range Seats {
		var h Hand
		copy(h[:], deck[i*NumRanks:(i+1)*NumRanks])
		d.hands[seat] = h
	}
	return d, nil
}

// Stats returns the [HandStats] for the given seat, computing and
// caching it on first access for this deal (see §4.5 and §9's "lazy
// precomputed stats": each hand's feature vector is computed at most
// once per deal).
func (d *Deal) Stats(seat Seat) *HandStats {
	if d.stats[seat] == nil {
		d.stats[seat] = computeStats(d.hands[seat])
	}
	return d.stats[seat]
}
