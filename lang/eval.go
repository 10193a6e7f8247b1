package lang

import (
	"github.com/cespare/xxhash/v2"

	dealer "github.com/Rick-Wilson/Dealer3"
)

// maxStackDepth is the evaluation recursion limit (§4.5/§9):
// pathological variable/expression nesting fails with
// [ErrStackOverflow] rather than overflowing the Go call stack.
const maxStackDepth = 256

type memoState uint8

const (
	memoEvaluating memoState = iota + 1
	memoDone
)

type memoEntry struct {
	state memoState
	value int32
}

// Evaluator evaluates a [Program]'s expressions against one [dealer.Deal].
// It is not safe for concurrent use; each worker owns one Evaluator per
// deal it evaluates (§4.5, §5: "each worker owns its own PRNG instance"
// — the evaluator is the analogous per-deal, per-worker scratch state).
type Evaluator struct {
	prog  *Program
	deal  *dealer.Deal
	memo  map[uint64]*memoEntry
	depth int
}

// NewEvaluator creates an evaluator for one deal under one program.
func NewEvaluator(prog *Program, deal *dealer.Deal) *Evaluator {
	return &Evaluator{prog: prog, deal: deal, memo: map[uint64]*memoEntry{}}
}

// EvalInt evaluates any integer-valued expression (§3's IR invariant:
// "integer-typed sub-expressions stay integer").
func (ev *Evaluator) EvalInt(expr Expr) (int32, error) {
	return ev.eval(expr)
}

// EvalBool evaluates expr in boolean context: nonzero is true (§3:
// "boolean contexts accept integer... and vice versa").
func (ev *Evaluator) EvalBool(expr Expr) (bool, error) {
	v, err := ev.eval(expr)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (ev *Evaluator) eval(expr Expr) (int32, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > maxStackDepth {
		return 0, ErrStackOverflow
	}
	switch e := expr.(type) {
	case IntLit:
		return e.Value, nil
	case CardLit:
		return int32(e.Value), nil
	case SeatLit:
		return int32(e.Value), nil
	case SuitLit:
		return int32(e.Value), nil
	case VarRef:
		return ev.evalVar(e.Name)
	case *Call:
		return ev.evalCall(e)
	case *BinOp:
		return ev.evalBinOp(e)
	case *UnaryOp:
		return ev.evalUnaryOp(e)
	case *Ternary:
		return ev.evalTernary(e)
	}
	return 0, ErrUnexpectedToken
}

func (ev *Evaluator) evalVar(name string) (int32, error) {
	key := xxhash.Sum64String(name)
	if e, ok := ev.memo[key]; ok {
		switch e.state {
		case memoEvaluating:
			return 0, ErrCyclicVar
		case memoDone:
			return e.value, nil
		}
	}
	bound, ok := ev.prog.Lookup(name)
	if !ok {
		return 0, ErrUnknownVar
	}
	ev.memo[key] = &memoEntry{state: memoEvaluating}
	v, err := ev.eval(bound)
	if err != nil {
		delete(ev.memo, key)
		return 0, err
	}
	ev.memo[key] = &memoEntry{state: memoDone, value: v}
	return v, nil
}

func (ev *Evaluator) evalBinOp(b *BinOp) (int32, error) {
	switch b.Op {
	case "&&":
		l, err := ev.eval(b.Left)
		if err != nil {
			return 0, err
		}
		if l == 0 {
			return 0, nil
		}
		r, err := ev.eval(b.Right)
		if err != nil {
			return 0, err
		}
		return boolInt(r != 0), nil
	case "||":
		l, err := ev.eval(b.Left)
		if err != nil {
			return 0, err
		}
		if l != 0 {
			return 1, nil
		}
		r, err := ev.eval(b.Right)
		if err != nil {
			return 0, err
		}
		return boolInt(r != 0), nil
	}
	l, err := ev.eval(b.Left)
	if err != nil {
		return 0, err
	}
	r, err := ev.eval(b.Right)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, ErrDivByZero
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return 0, ErrDivByZero
		}
		return l % r, nil
	case "==":
		return boolInt(l == r), nil
	case "!=":
		return boolInt(l != r), nil
	case "<":
		return boolInt(l < r), nil
	case "<=":
		return boolInt(l <= r), nil
	case ">":
		return boolInt(l > r), nil
	case ">=":
		return boolInt(l >= r), nil
	}
	return 0, ErrUnexpectedToken
}

func (ev *Evaluator) evalUnaryOp(u *UnaryOp) (int32, error) {
	v, err := ev.eval(u.Operand)
	if err != nil {
		return 0, err
	}
	switch u.Op {
	case "-":
		return -v, nil
	case "!":
		return boolInt(v == 0), nil
	}
	return 0, ErrUnexpectedToken
}

func (ev *Evaluator) evalTernary(t *Ternary) (int32, error) {
	c, err := ev.eval(t.Cond)
	if err != nil {
		return 0, err
	}
	if c != 0 {
		return ev.eval(t.Then)
	}
	return ev.eval(t.Else)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// resolveSeat resolves an argument expression to a concrete seat,
// following variable indirection (a seat may be bound to a name, ex:
// `s = north`).
func (ev *Evaluator) resolveSeat(expr Expr) (dealer.Seat, error) {
	switch e := expr.(type) {
	case SeatLit:
		return e.Value, nil
	case VarRef:
		bound, ok := ev.prog.Lookup(e.Name)
		if !ok {
			return dealer.InvalidSeat, ErrUnknownVar
		}
		return ev.resolveSeat(bound)
	}
	return dealer.InvalidSeat, ErrBadArgument
}

// resolveSuit resolves an argument expression to a concrete suit.
func (ev *Evaluator) resolveSuit(expr Expr) (dealer.Suit, error) {
	switch e := expr.(type) {
	case SuitLit:
		return e.Value, nil
	case VarRef:
		bound, ok := ev.prog.Lookup(e.Name)
		if !ok {
			return dealer.InvalidSuit, ErrUnknownVar
		}
		return ev.resolveSuit(bound)
	}
	return dealer.InvalidSuit, ErrBadArgument
}

// resolveCard resolves an argument expression to a concrete card.
func (ev *Evaluator) resolveCard(expr Expr) (dealer.Card, error) {
	switch e := expr.(type) {
	case CardLit:
		return e.Value, nil
	case VarRef:
		bound, ok := ev.prog.Lookup(e.Name)
		if !ok {
			return dealer.InvalidCard, ErrUnknownVar
		}
		return ev.resolveCard(bound)
	}
	return dealer.InvalidCard, ErrBadArgument
}

func (ev *Evaluator) evalCall(c *Call) (int32, error) {
	stats := func(argIdx int) (*dealer.HandStats, error) {
		seat, err := ev.resolveSeat(c.Args[argIdx])
		if err != nil {
			return nil, err
		}
		return ev.deal.Stats(seat), nil
	}
	switch c.Fn {
	case "hcp":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		return int32(s.TotalHCP), nil
	case "controls":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		return int32(s.TotalControls), nil
	case "losers":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		if len(c.Args) == 1 {
			return int32(s.TotalLosers), nil
		}
		suit, err := ev.resolveSuit(c.Args[1])
		if err != nil {
			return 0, err
		}
		return int32(s.Losers[suit]), nil
	case "spades", "hearts", "diamonds", "clubs":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		return int32(s.Length[suitFuncs[c.Fn]]), nil
	case "hascard":
		seat, err := ev.resolveSeat(c.Args[0])
		if err != nil {
			return 0, err
		}
		card, err := ev.resolveCard(c.Args[1])
		if err != nil {
			return 0, err
		}
		return boolInt(ev.deal.Hand(seat).Contains(card)), nil
	case "shape":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		return boolInt(s.Shape.Intersects(*c.Shape)), nil
	case "tens", "jacks", "queens", "kings", "aces":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		if len(c.Args) == 1 {
			return int32(wholeHandHonor(s, c.Fn)), nil
		}
		suit, err := ev.resolveSuit(c.Args[1])
		if err != nil {
			return 0, err
		}
		return boolInt(s.HasRank(suit, honorRankFor(c.Fn))), nil
	case "top2", "top3", "top4", "top5":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		n, _ := topNIndex(c.Fn)
		if len(c.Args) == 1 {
			return int32(s.TopNWholeHand(n)), nil
		}
		suit, err := ev.resolveSuit(c.Args[1])
		if err != nil {
			return 0, err
		}
		return int32(s.TopN[suit][n-1]), nil
	case "c13":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		if len(c.Args) == 1 {
			return int32(s.C13()), nil
		}
		suit, err := ev.resolveSuit(c.Args[1])
		if err != nil {
			return 0, err
		}
		return int32(s.C13Suit(suit)), nil
	case "quality":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		suit, err := ev.resolveSuit(c.Args[1])
		if err != nil {
			return 0, err
		}
		return int32(s.Quality[suit]), nil
	case "cccc":
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		return int32(s.CCCC), nil
	}
	if n, ok := ptIndex(c.Fn); ok {
		s, err := stats(0)
		if err != nil {
			return 0, err
		}
		return int32(s.Pt(n)), nil
	}
	return 0, ErrUnknownFunction
}

func wholeHandHonor(s *dealer.HandStats, fn string) int {
	switch fn {
	case "tens":
		return s.Tens()
	case "jacks":
		return s.Jacks()
	case "queens":
		return s.Queens()
	case "kings":
		return s.Kings()
	case "aces":
		return s.Aces()
	}
	return 0
}

func honorRankFor(fn string) dealer.Rank {
	switch fn {
	case "tens":
		return dealer.Ten
	case "jacks":
		return dealer.Jack
	case "queens":
		return dealer.Queen
	case "kings":
		return dealer.King
	case "aces":
		return dealer.Ace
	}
	return dealer.InvalidRank
}
