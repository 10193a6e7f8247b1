package prng

import "math/bits"

// FastState is a snapshot of a [Fast] generator's 256 bits of state.
type FastState struct {
	s [4]uint64
}

// Fast is xoshiro256++, seeded from a u64 via SplitMix64 (§4.2). Its
// draws depend only on the seed, so (unlike [Legacy]) fast-mode deals
// can be generated independently and in parallel (§9).
type Fast struct {
	state FastState
}

// NewFast seeds a new [Fast] generator.
func NewFast(seed uint64) *Fast {
	f := &Fast{}
	f.Seed(seed)
	return f
}

// Seed re-seeds the generator in place, filling 256 bits of xoshiro256
// state from seed via four successive SplitMix64 draws.
func (f *Fast) Seed(seed uint64) {
	sm := seed
	for i := range f.state.s {
		sm, f.state.s[i] = splitMix64(sm)
	}
}

// splitMix64 advances state and returns (next state, output), the
// standard SplitMix64 step used to seed xoshiro generators.
func splitMix64(state uint64) (uint64, uint64) {
	state += 0x9E3779B97F4A7C15
	z := state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return state, z
}

func rotl(x uint64, k uint) uint64 {
	return bits.RotateLeft64(x, int(k))
}

// next64 runs one xoshiro256++ step, returning the next 64-bit output.
func (f *Fast) next64() uint64 {
	s := &f.state.s
	result := rotl(s[0]+s[3], 23) + s[0]
	t := s[1] << 17
	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = rotl(s[3], 45)
	return result
}

// NextU32 satisfies [Source], taking the high 32 bits of a xoshiro256++
// step (the high bits have the better statistical quality for
// generators built this way).
func (f *Fast) NextU32() uint32 {
	return uint32(f.next64() >> 32)
}

// NextIndex satisfies [Source], using Lemire's nearly-divisionless
// unbiased reduction (§4.2):
//
//	x = next_u32(); m = x * n (64-bit); l = low32(m);
//	if l < n: t = (-n) mod n; while l < t: redraw;
//	return high32(m).
//
// For n a power of two, a mask is used instead (no redraw needed).
func (f *Fast) NextIndex(n uint32) uint32 {
	if n&(n-1) == 0 {
		return f.NextU32() & (n - 1)
	}
	x := uint64(f.NextU32())
	m := x * uint64(n)
	l := uint32(m)
	if l < n {
		t := uint32(-int32(n)) % n
		for l < t {
			x = uint64(f.NextU32())
			m = x * uint64(n)
			l = uint32(m)
		}
	}
	return uint32(m >> 32)
}

// CloneState captures the generator's current 256 bits of state.
func (f *Fast) CloneState() FastState {
	return f.state
}

// Restore resets the generator to a previously captured state.
func (f *Fast) Restore(state FastState) {
	f.state = state
}
