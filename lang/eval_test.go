package lang

import (
	"testing"

	"github.com/stretchr/testify/require"

	dealer "github.com/Rick-Wilson/Dealer3"
)

// dealWith builds a [dealer.Deal] whose North hand is exactly the given
// 13 cards (in any order), with the remaining 39 cards distributed
// arbitrarily (but validly) across East/South/West.
func dealWith(t *testing.T, north []dealer.Card) *dealer.Deal {
	t.Helper()
	require.Len(t, north, 13)
	var deck [dealer.NumCards]dealer.Card
	used := map[dealer.Card]bool{}
	for i, c := range north {
		deck[i] = c
		used[c] = true
	}
	cursor := 13
	for c := dealer.Card(0); int(c) < dealer.NumCards; c++ {
		if !used[c] {
			deck[cursor] = c
			cursor++
		}
	}
	d, err := dealer.FromDeck(deck)
	require.NoError(t, err)
	return d
}

func strongNorthHand() []dealer.Card {
	return []dealer.Card{
		dealer.CardOf(dealer.Spades, dealer.Ace),
		dealer.CardOf(dealer.Spades, dealer.King),
		dealer.CardOf(dealer.Spades, dealer.Queen),
		dealer.CardOf(dealer.Spades, dealer.Jack),
		dealer.CardOf(dealer.Hearts, dealer.Ace),
		dealer.CardOf(dealer.Hearts, dealer.King),
		dealer.CardOf(dealer.Hearts, dealer.Queen),
		dealer.CardOf(dealer.Diamonds, dealer.Ace),
		dealer.CardOf(dealer.Diamonds, dealer.King),
		dealer.CardOf(dealer.Diamonds, dealer.Two),
		dealer.CardOf(dealer.Clubs, dealer.Two),
		dealer.CardOf(dealer.Clubs, dealer.Three),
		dealer.CardOf(dealer.Clubs, dealer.Four),
	}
}

func TestEvalHCP(t *testing.T) {
	d := dealWith(t, strongNorthHand())
	prog, err := Parse("hcp(north) >= 20")
	require.NoError(t, err)
	ev := NewEvaluator(prog, d)
	ok, err := ev.EvalBool(prog.Condition())
	require.NoError(t, err)
	require.True(t, ok, "North's hand has 26 HCP, should satisfy >= 20")
}

func TestEvalVariableMemoizationScenario(t *testing.T) {
	d := dealWith(t, strongNorthHand())
	prog, err := Parse("strong = hcp(north)>=15\nlong_h = hearts(north)>=3\nstrong && long_h")
	require.NoError(t, err)
	ev := NewEvaluator(prog, d)
	v1, err := ev.EvalInt(VarRef{Name: "strong"})
	require.NoError(t, err)
	v2, err := ev.EvalInt(VarRef{Name: "strong"})
	require.NoError(t, err)
	require.Equal(t, v1, v2, "re-evaluating a variable must yield the same value")
	ok, err := ev.EvalBool(prog.Condition())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvalUnknownVar(t *testing.T) {
	prog, err := Parse("hcp(north) >= bogus")
	require.NoError(t, err)
	d := dealWith(t, strongNorthHand())
	ev := NewEvaluator(prog, d)
	_, err = ev.EvalBool(prog.Condition())
	require.ErrorIs(t, err, ErrUnknownVar)
}

func TestEvalCyclicVar(t *testing.T) {
	prog, err := Parse("a = b + 1\nb = a + 1\na")
	require.NoError(t, err)
	d := dealWith(t, strongNorthHand())
	ev := NewEvaluator(prog, d)
	_, err = ev.EvalBool(prog.Condition())
	require.ErrorIs(t, err, ErrCyclicVar)
}

func TestEvalDivByZero(t *testing.T) {
	prog, err := Parse("hcp(north) / 0 >= 1")
	require.NoError(t, err)
	d := dealWith(t, strongNorthHand())
	ev := NewEvaluator(prog, d)
	_, err = ev.EvalBool(prog.Condition())
	require.ErrorIs(t, err, ErrDivByZero)
}

func TestEvalHasCard(t *testing.T) {
	prog, err := Parse("hascard(north, AS)")
	require.NoError(t, err)
	d := dealWith(t, strongNorthHand())
	ev := NewEvaluator(prog, d)
	ok, err := ev.EvalBool(prog.Condition())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvalPredealScenario(t *testing.T) {
	north := strongNorthHand()
	prog, err := Parse("predeal north SA,KH\nhcp(north) >= 0")
	require.NoError(t, err)
	pd := prog.Statements[0].(*PredealStmt)
	require.Len(t, pd.Cards, 2)
	d := dealWith(t, north)
	require.True(t, d.Hand(dealer.North).Contains(dealer.CardOf(dealer.Spades, dealer.Ace)))
	require.True(t, d.Hand(dealer.North).Contains(dealer.CardOf(dealer.Hearts, dealer.King)))
}

func TestEvalShapeAny4333(t *testing.T) {
	// 4-3-3-3 distributed as clubs=4 here; "any 4333" must still match.
	hand := []dealer.Card{
		dealer.CardOf(dealer.Clubs, dealer.Two), dealer.CardOf(dealer.Clubs, dealer.Three),
		dealer.CardOf(dealer.Clubs, dealer.Four), dealer.CardOf(dealer.Clubs, dealer.Five),
		dealer.CardOf(dealer.Diamonds, dealer.Two), dealer.CardOf(dealer.Diamonds, dealer.Three),
		dealer.CardOf(dealer.Diamonds, dealer.Four),
		dealer.CardOf(dealer.Hearts, dealer.Two), dealer.CardOf(dealer.Hearts, dealer.Three),
		dealer.CardOf(dealer.Hearts, dealer.Four),
		dealer.CardOf(dealer.Spades, dealer.Two), dealer.CardOf(dealer.Spades, dealer.Three),
		dealer.CardOf(dealer.Spades, dealer.Four),
	}
	d := dealWith(t, hand)
	prog, err := Parse("shape(north, any 4333)")
	require.NoError(t, err)
	ev := NewEvaluator(prog, d)
	ok, err := ev.EvalBool(prog.Condition())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvalTernary(t *testing.T) {
	prog, err := Parse("hcp(north) >= 20 ? 1 : 0")
	require.NoError(t, err)
	d := dealWith(t, strongNorthHand())
	ev := NewEvaluator(prog, d)
	v, err := ev.EvalInt(prog.Condition())
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
}

func TestEvalStackOverflow(t *testing.T) {
	var src string
	for i := 0; i < maxStackDepth+10; i++ {
		src += "-"
	}
	src += "1"
	prog, err := Parse(src)
	require.NoError(t, err)
	d := dealWith(t, strongNorthHand())
	ev := NewEvaluator(prog, d)
	_, err = ev.EvalInt(prog.Condition())
	require.ErrorIs(t, err, ErrStackOverflow)
}
