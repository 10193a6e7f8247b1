package dealer

// Error is a dealer error.
//
// Mirrors the teacher's (cardrank.Error) pattern: a plain string type
// satisfying [error], so error values can be compared with ==  and
// with [errors.Is] without allocation.
type Error string

// Error satisfies the [error] interface.
func (err Error) Error() string {
	return string(err)
}

// Card/deck errors.
const (
	// ErrInvalidCard is returned when a card literal cannot be parsed.
	ErrInvalidCard Error = "invalid card"
	// ErrBadDeck is returned when a deck is not a permutation of 0..52.
	// An internal misuse error, never reachable through normal
	// shuffling.
	ErrBadDeck Error = "internal: bad deck"
	// ErrBadShape is returned when a shape pattern is not exactly four
	// digit-or-wildcard characters.
	ErrBadShape Error = "parse: bad shape"
)

// Predeal / configuration errors.
const (
	// ErrPredealConflict is returned when a predeal specification
	// assigns a card to more than one seat, assigns more than 13 cards
	// to one seat, or repeats a card within one seat.
	ErrPredealConflict Error = "config: predeal conflict"
	// ErrBadSeat is returned for an unparsable seat name.
	ErrBadSeat Error = "config: bad seat"
	// ErrBadVulnerability is returned for an unparsable vulnerability.
	ErrBadVulnerability Error = "config: bad vulnerability"
)
