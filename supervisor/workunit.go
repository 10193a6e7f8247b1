package supervisor

import dealer "github.com/Rick-Wilson/Dealer3"

// WorkUnit is one generation attempt assigned a serial number, per §3's
// data model. Legacy mode never materialises these (its master PRNG is
// advanced in place instead); fast mode assigns one per dispatched
// attempt, its Seed derived from the master seed by a running counter
// (§4.6 step 1).
type WorkUnit struct {
	Serial uint64
	Seed   uint64
}

// CompletedWork is the result of one [WorkUnit]: either the deal
// passed (Deal is non-nil, Passed true) or it did not (Deal nil,
// Passed false). The supervisor processes these strictly in serial
// order regardless of completion order (§4.6 step 3).
type CompletedWork struct {
	Serial uint64
	Deal   *dealer.Deal
	Passed bool
}
