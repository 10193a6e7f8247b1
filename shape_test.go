package dealer

import "testing"

func TestShapeIndexTableSize(t *testing.T) {
	if n := len(shapeIndexTable); n != 560 {
		t.Fatalf("len(shapeIndexTable) = %d, want 560", n)
	}
}

func TestCompileShapeTermExact(t *testing.T) {
	mask, err := CompileShapeTerm("4333")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	length := [NumSuits]int{Clubs: 3, Diamonds: 3, Hearts: 3, Spades: 4}
	if got := shapeOf(length); !got.Intersects(mask) {
		t.Errorf("4-3-3-3 hand does not match exact pattern 4333")
	}
	other := [NumSuits]int{Clubs: 4, Diamonds: 3, Hearts: 3, Spades: 3}
	if got := shapeOf(other); got.Intersects(mask) {
		t.Errorf("3-3-3-4 hand (different suit order) matched exact pattern 4333")
	}
}

func TestCompileAnyShapeTermPermutes(t *testing.T) {
	mask, err := CompileAnyShapeTerm("4333")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perms := []([NumSuits]int){
		{Clubs: 3, Diamonds: 3, Hearts: 3, Spades: 4},
		{Clubs: 4, Diamonds: 3, Hearts: 3, Spades: 3},
		{Clubs: 3, Diamonds: 4, Hearts: 3, Spades: 3},
		{Clubs: 3, Diamonds: 3, Hearts: 4, Spades: 3},
	}
	for _, length := range perms {
		if got := shapeOf(length); !got.Intersects(mask) {
			t.Errorf("shape %v did not match any-permutation of 4333", length)
		}
	}
	notBalanced := [NumSuits]int{Clubs: 5, Diamonds: 4, Hearts: 2, Spades: 2}
	if got := shapeOf(notBalanced); got.Intersects(mask) {
		t.Errorf("5-4-2-2 incorrectly matched any 4333")
	}
}

func TestCompileShapeWildcard(t *testing.T) {
	mask, err := CompileShapeTerm("5x2x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	match := [NumSuits]int{Clubs: 0, Diamonds: 2, Hearts: 6, Spades: 5}
	if got := shapeOf(match); !got.Intersects(mask) {
		t.Errorf("5-6-2-0 should match wildcard pattern 5x2x")
	}
	noMatch := [NumSuits]int{Clubs: 0, Diamonds: 6, Hearts: 3, Spades: 4}
	if got := shapeOf(noMatch); got.Intersects(mask) {
		t.Errorf("4-3-6-0 should not match exact-spade pattern 5x2x")
	}
}

func TestShapeUnionAndDifference(t *testing.T) {
	a, _ := CompileShapeTerm("4333")
	b, _ := CompileShapeTerm("4432")
	union := CompileShapeExpr([]ShapeExprTerm{{Set: a}, {Set: b}})
	h4333 := shapeOf([NumSuits]int{Clubs: 3, Diamonds: 3, Hearts: 3, Spades: 4})
	h4432 := shapeOf([NumSuits]int{Clubs: 2, Diamonds: 3, Hearts: 4, Spades: 4})
	if !union.Intersects(h4333) || !union.Intersects(h4432) {
		t.Fatalf("union of 4333+4432 should match both shapes")
	}
	diff := CompileShapeExpr([]ShapeExprTerm{{Set: union}, {Set: a, Sub: true}})
	if diff.Intersects(h4333) {
		t.Errorf("difference should have removed 4333")
	}
	if !diff.Intersects(h4432) {
		t.Errorf("difference should still match 4432")
	}
}

func TestBadShapePattern(t *testing.T) {
	if _, err := CompileShapeTerm("433"); err != ErrBadShape {
		t.Fatalf("expected ErrBadShape for short pattern, got %v", err)
	}
	if _, err := CompileShapeTerm("43y3"); err != ErrBadShape {
		t.Fatalf("expected ErrBadShape for invalid character, got %v", err)
	}
}

func TestIsPureDigits(t *testing.T) {
	if !IsPureDigits("5242") {
		t.Errorf("5242 should be pure digits")
	}
	if IsPureDigits("5x42") {
		t.Errorf("5x42 should not be pure digits")
	}
	if IsPureDigits("1500") != true {
		t.Errorf("1500 should be pure digits (the lexical-ambiguity case)")
	}
}
