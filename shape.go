package dealer

import "strings"

// shapeWords is the number of uint64 words backing a [ShapeSet]: 9
// words = 576 bits, enough to give every one of the 560 four-tuples
// (s,h,d,c) with s+h+d+c=13 its own distinct bit.
//
// §3 declares HandStats.shape_bits as a bare u64, and §9's own design
// notes notice the contradiction ("exceeds 64... split into a
// two-word bitset, or use a perfect hash") without picking one. This
// module resolves it as a small multi-word bitset sized to the actual
// tuple space, rather than truncating to 64 bits and silently losing
// matches for shapes like 7-3-2-1 or 10-1-1-1. See DESIGN.md.
const shapeWords = 9

// ShapeSet is a bitset over the 560 suit-length tuples (s,h,d,c) with
// s+h+d+c=13, keyed by [shapeIndex]. Compiled shape patterns and a
// hand's own shape are both [ShapeSet] values; matching is a bounded
// number of word-wise ANDs (§9).
type ShapeSet [shapeWords]uint64

// shapeTupleOrder is the canonical suit order for shape patterns:
// spades, hearts, diamonds, clubs (standard bridge notation, ex:
// "4333" means 4 spades, 3 hearts, 3 diamonds, 3 clubs).
var shapeTupleOrder = [NumSuits]Suit{Spades, Hearts, Diamonds, Clubs}

// shapeIndexTable maps a (s,h,d,c) tuple (in shapeTupleOrder order) to
// its bit index, built once at init by enumerating tuples in
// lexicographic order.
var shapeIndexTable = buildShapeIndexTable()

func buildShapeIndexTable() map[[NumSuits]int]int {
	m := make(map[[NumSuits]int]int, 560)
	idx := 0
	for s := 0; s <= NumRanks; s++ {
		for h := 0; h <= NumRanks-s; h++ {
			for d := 0; d <= NumRanks-s-h; d++ {
				c := NumRanks - s - h - d
				m[[NumSuits]int{s, h, d, c}] = idx
				idx++
			}
		}
	}
	return m
}

// shapeIndex returns the bit index for a (s,h,d,c) tuple (in
// shapeTupleOrder order), or -1 if the tuple doesn't sum to 13.
func shapeIndex(tuple [NumSuits]int) int {
	if idx, ok := shapeIndexTable[tuple]; ok {
		return idx
	}
	return -1
}

// setBit sets bit i in the set.
func (ss *ShapeSet) setBit(i int) {
	ss[i/64] |= 1 << uint(i%64)
}

// testBit reports whether bit i is set.
func (ss ShapeSet) testBit(i int) bool {
	return ss[i/64]&(1<<uint(i%64)) != 0
}

// Union returns the bitwise OR of two shape sets.
func (ss ShapeSet) Union(other ShapeSet) ShapeSet {
	var out ShapeSet
	for i := range ss {
		out[i] = ss[i] | other[i]
	}
	return out
}

// Difference returns ss with other's bits cleared (AND NOT).
func (ss ShapeSet) Difference(other ShapeSet) ShapeSet {
	var out ShapeSet
	for i := range ss {
		out[i] = ss[i] &^ other[i]
	}
	return out
}

// Intersects reports whether ss and other share any set bit.
func (ss ShapeSet) Intersects(other ShapeSet) bool {
	for i := range ss {
		if ss[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// Any reports whether any bit is set.
func (ss ShapeSet) Any() bool {
	for _, w := range ss {
		if w != 0 {
			return true
		}
	}
	return false
}

// shapeOf builds the single-bit [ShapeSet] for a hand's exact suit
// lengths (indexed by the dealer.Suit enum, clubs-first).
func shapeOf(length [NumSuits]int) ShapeSet {
	tuple := [NumSuits]int{
		length[Spades],
		length[Hearts],
		length[Diamonds],
		length[Clubs],
	}
	var ss ShapeSet
	if idx := shapeIndex(tuple); idx >= 0 {
		ss.setBit(idx)
	}
	return ss
}

// shapeSlot is one position of a compiled shape pattern: either an
// exact length (0-9) or a wildcard matching any length.
type shapeSlot struct {
	wild bool
	n    int
}

// ParseShapePattern parses a four-character shape pattern (digits 0-9
// and/or 'x'/'X' wildcards, ex: "4333", "5x2x") into its four slots, in
// spades/hearts/diamonds/clubs order. Returns [ErrBadShape] if pattern
// is not exactly four such characters.
func ParseShapePattern(pattern string) ([NumSuits]shapeSlot, error) {
	var slots [NumSuits]shapeSlot
	if len(pattern) != NumSuits {
		return slots, ErrBadShape
	}
	for i := 0; i < NumSuits; i++ {
		b := pattern[i]
		switch {
		case b == 'x' || b == 'X':
			slots[i] = shapeSlot{wild: true}
		case '0' <= b && b <= '9':
			slots[i] = shapeSlot{n: int(b - '0')}
		default:
			return slots, ErrBadShape
		}
	}
	return slots, nil
}

// CompileShapeTerm compiles a single (non-"any") shape pattern into
// its matching [ShapeSet].
func CompileShapeTerm(pattern string) (ShapeSet, error) {
	slots, err := ParseShapePattern(pattern)
	if err != nil {
		return ShapeSet{}, err
	}
	return compileSlots(slots), nil
}

// CompileAnyShapeTerm compiles an "any"-prefixed shape pattern into
// the union of every distinct permutation of its four slots across the
// four suit positions (the "permutation-closure" of §4.4's shape
// sub-grammar).
func CompileAnyShapeTerm(pattern string) (ShapeSet, error) {
	slots, err := ParseShapePattern(pattern)
	if err != nil {
		return ShapeSet{}, err
	}
	var out ShapeSet
	seen := map[[NumSuits]shapeSlot]bool{}
	permuteSlots(slots, 0, &seen, func(p [NumSuits]shapeSlot) {
		out = out.Union(compileSlots(p))
	})
	return out, nil
}

func permuteSlots(slots [NumSuits]shapeSlot, k int, seen *map[[NumSuits]shapeSlot]bool, emit func([NumSuits]shapeSlot)) {
	if k == len(slots) {
		if !(*seen)[slots] {
			(*seen)[slots] = true
			emit(slots)
		}
		return
	}
	for i := k; i < len(slots); i++ {
		slots[k], slots[i] = slots[i], slots[k]
		permuteSlots(slots, k+1, seen, emit)
		slots[k], slots[i] = slots[i], slots[k]
	}
}

// compileSlots matches every tuple in the 560-entry table against
// slots, unioning the matching bits into a [ShapeSet].
func compileSlots(slots [NumSuits]shapeSlot) ShapeSet {
	var out ShapeSet
	for tuple, idx := range shapeIndexTable {
		if slotsMatch(slots, tuple) {
			out.setBit(idx)
		}
	}
	return out
}

func slotsMatch(slots [NumSuits]shapeSlot, tuple [NumSuits]int) bool {
	for i, slot := range slots {
		if !slot.wild && slot.n != tuple[i] {
			return false
		}
	}
	return true
}

// ShapeExprTerm is one term of a compiled shape expression: a compiled
// pattern, combined into the running set with "+" (union) or "-"
// (difference).
type ShapeExprTerm struct {
	Set ShapeSet
	Sub bool // true for "-" (difference), false for "+" (union)
}

// CompileShapeExpr compiles a sequence of terms (already split and
// sign-tagged by the parser) into the final [ShapeSet].
func CompileShapeExpr(terms []ShapeExprTerm) ShapeSet {
	var out ShapeSet
	for i, t := range terms {
		if i == 0 && !t.Sub {
			out = t.Set
			continue
		}
		if t.Sub {
			out = out.Difference(t.Set)
		} else {
			out = out.Union(t.Set)
		}
	}
	return out
}

// IsPureDigits reports whether s is exactly four ASCII digits, the
// shape of literal the preprocessor must disambiguate from an integer
// (§4.4).
func IsPureDigits(s string) bool {
	if len(s) != NumSuits {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}
