package prng

// legacyStateSize is the BSD TYPE-3 state array size.
const legacyStateSize = 31

// legacySeparation is the BSD TYPE-3 fptr/rptr separation.
const legacySeparation = 3

// legacyWarmup is the number of advance steps run after seeding (10 *
// legacyStateSize), per §4.2.
const legacyWarmup = 10 * legacyStateSize

// LegacyState is a snapshot of a [Legacy] generator's internal state,
// suitable for cloning and restoring per §4.2's "state capture".
type LegacyState struct {
	s    [legacyStateSize]int64
	fptr int
	rptr int
}

// Legacy is a bit-exact reproduction of a historical 64-bit BSD TYPE-3
// PRNG (§4.2). Legacy generation is strictly single-threaded: its
// output depends on all prior draws, so it cannot be parallelized
// without changing output (§9).
type Legacy struct {
	state LegacyState
}

// NewLegacy seeds a new [Legacy] generator and runs its warmup.
//
// Seeding: S[0] := seed; for i in [1, 31), S[i] := S[i-1] *
// 1103515145 + 12345 (wrapping 64-bit signed multiply). fptr starts at
// S[3], rptr at S[0] (separation 3). The generator is then warmed up
// by calling the advance step 310 times (10 * 31), discarding output.
func NewLegacy(seed int64) *Legacy {
	l := &Legacy{}
	l.Seed(seed)
	return l
}

// Seed re-seeds the generator in place, as described in [NewLegacy].
func (l *Legacy) Seed(seed int64) {
	var s [legacyStateSize]int64
	s[0] = seed
	for i := 1; i < legacyStateSize; i++ {
		s[i] = s[i-1]*1103515145 + 12345
	}
	l.state = LegacyState{s: s, fptr: legacySeparation, rptr: 0}
	for i := 0; i < legacyWarmup; i++ {
		l.advance()
	}
}

// advance runs one BSD TYPE-3 step, returning its raw output:
// *fptr += *rptr; output = ((*fptr) >>arith 1) & 0x7FFF_FFFF_FFFF_FFFF,
// truncated to uint32. Both cursors then advance modulo 31.
func (l *Legacy) advance() uint32 {
	s := &l.state
	s.s[s.fptr] += s.s[s.rptr]
	out := uint32(uint64(s.s[s.fptr]>>1) & 0x7FFF_FFFF_FFFF_FFFF)
	s.fptr++
	if s.fptr >= legacyStateSize {
		s.fptr = 0
	}
	s.rptr++
	if s.rptr >= legacyStateSize {
		s.rptr = 0
	}
	return out
}

// NextU32 satisfies [Source].
func (l *Legacy) NextU32() uint32 {
	return l.advance()
}

// NextIndex satisfies [Source]. Legacy mode uses simple modulo
// reduction (not Lemire's unbiased method — that optimization only
// pays off for the fast mode's parallel hot path, and changing the
// legacy reduction would break bit-exact reproduction of the
// historical generator, the entire point of legacy mode).
func (l *Legacy) NextIndex(n uint32) uint32 {
	return l.NextU32() % n
}

// CloneState captures the generator's current state.
func (l *Legacy) CloneState() LegacyState {
	return l.state
}

// Restore resets the generator to a previously captured state.
func (l *Legacy) Restore(state LegacyState) {
	l.state = state
}
