package dealer

import "sort"

// Rand is the shuffle engine's randomness source: anything that can
// draw an index in [0,n) (both [prng.Legacy] and [prng.Fast] satisfy
// this directly; Fast's draw is unbiased, Legacy's is plain modulo).
type Rand interface {
	NextIndex(n uint32) uint32
}

// Predeal is a (possibly empty) set of predealt cards per seat (§4.3).
type Predeal [NumSeats][]Card

// Validate checks a predeal specification against §4.3's invariants:
// (a) no card predealt to more than one seat, (b) no seat over 13
// predealt cards, (c) no duplicate card within one seat. Returns
// [ErrPredealConflict] on violation.
func (p Predeal) Validate() error {
	seen := map[Card]bool{}
	for _, seat := range Seats {
		if len(p[seat]) > NumRanks {
			return ErrPredealConflict
		}
		local := map[Card]bool{}
		for _, c := range p[seat] {
			if local[c] || seen[c] {
				return ErrPredealConflict
			}
			local[c] = true
			seen[c] = true
		}
	}
	return nil
}

// canonicalLess orders cards spades-high-to-low, then hearts, diamonds,
// clubs — the canonical order §4.3 places predealt cards within a
// seat's slots.
func canonicalLess(a, b Card) bool {
	suitOrder := func(s Suit) int {
		switch s {
		case Spades:
			return 0
		case Hearts:
			return 1
		case Diamonds:
			return 2
		default:
			return 3
		}
	}
	as, bs := suitOrder(a.Suit()), suitOrder(b.Suit())
	if as != bs {
		return as < bs
	}
	return a.Rank() > b.Rank() // high to low
}

// Shuffle draws a deal using rng, honoring predeal bit-for-bit (§4.3):
//
//  1. Predealt cards are placed into their seat's slots in canonical
//     order.
//  2. The remaining 52-P cards are shuffled via Fisher-Yates.
//  3. Remaining seat slots are filled, in seat order N,E,S,W, each
//     seat's empty slots in canonical order, from the shuffled
//     remainder.
func Shuffle(rng Rand, predeal Predeal) (*Deal, error) {
	if err := predeal.Validate(); err != nil {
		return nil, err
	}
	var placed [NumSeats][]Card
	occupied := [NumCards]bool{}
	for _, seat := range Seats {
		cards := make([]Card, len(predeal[seat]))
		copy(cards, predeal[seat])
		sort.Slice(cards, func(i, j int) bool { return canonicalLess(cards[i], cards[j]) })
		placed[seat] = cards
		for _, c := range cards {
			occupied[c] = true
		}
	}
	var remainder []Card
	for c := Card(0); int(c) < NumCards; c++ {
		if !occupied[c] {
			remainder = append(remainder, c)
		}
	}
	fisherYates(rng, remainder)
	d := &Deal{}
	cursor := 0
	for _, seat := range Seats {
		h := placed[seat]
		for len(h) < NumRanks {
			h = append(h, remainder[cursor])
			cursor++
		}
		var hand Hand
		copy(hand[:], h)
		d.hands[seat] = hand
	}
	return d, nil
}

// fisherYates shuffles v in place, from the last index down to 1,
// drawing a swap partner in [0,i] at each step (§3/§4.3).
func fisherYates(rng Rand, v []Card) {
	for i := len(v) - 1; i > 0; i-- {
		j := int(rng.NextIndex(uint32(i + 1)))
		v[i], v[j] = v[j], v[i]
	}
}

// NewUnshuffledDeck returns deck[i] = Card(i) for i in [0,52), the
// shuffle domain's starting point.
func NewUnshuffledDeck() [NumCards]Card {
	var deck [NumCards]Card
	for i := range deck {
		deck[i] = Card(i)
	}
	return deck
}
