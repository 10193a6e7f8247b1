package supervisor

import (
	"testing"

	"github.com/stretchr/testify/require"

	dealer "github.com/Rick-Wilson/Dealer3"
	"github.com/Rick-Wilson/Dealer3/lang"
)

func TestResolveDefaults(t *testing.T) {
	prog, err := lang.Parse("hcp(north) >= 20")
	require.NoError(t, err)

	r, err := Resolve(Overrides{}, prog)
	require.NoError(t, err)
	require.Equal(t, DefaultProduce, r.Produce)
	require.Equal(t, DefaultGenerate, r.Generate)
	require.Equal(t, dealer.North, r.Dealer)
	require.Equal(t, dealer.VulNone, r.Vulnerable)
	require.False(t, r.Legacy)
	require.Equal(t, 0, r.BatchSize, "unset batch size stays the 200*W sentinel")
}

func TestResolveInProgramDirectiveOverridesDefault(t *testing.T) {
	prog, err := lang.Parse("produce 5\ngenerate 50\ndealer south\nvulnerable NS\nhcp(north) >= 20")
	require.NoError(t, err)

	r, err := Resolve(Overrides{}, prog)
	require.NoError(t, err)
	require.Equal(t, 5, r.Produce)
	require.Equal(t, 50, r.Generate)
	require.Equal(t, dealer.South, r.Dealer)
	require.Equal(t, dealer.VulNS, r.Vulnerable)
}

func TestResolveSupervisorOverrideWinsOverProgram(t *testing.T) {
	prog, err := lang.Parse("produce 5\nhcp(north) >= 20")
	require.NoError(t, err)

	p := 99
	r, err := Resolve(Overrides{Produce: &p}, prog)
	require.NoError(t, err)
	require.Equal(t, 99, r.Produce, "supervisor override must win over the in-program directive")
}

func TestResolveLegacyWithMultipleWorkersConflicts(t *testing.T) {
	prog, err := lang.Parse("hcp(north) >= 20")
	require.NoError(t, err)

	w := 4
	_, err = Resolve(Overrides{Legacy: true, LegacySet: true, WorkerCount: &w}, prog)
	require.ErrorIs(t, err, ErrFlagConflict)
}

func TestResolvePredealConflictPropagates(t *testing.T) {
	prog, err := lang.Parse("hcp(north) >= 0")
	require.NoError(t, err)

	ace := dealer.CardOf(dealer.Spades, dealer.Ace)
	var pd dealer.Predeal
	pd[dealer.North] = []dealer.Card{ace}
	pd[dealer.East] = []dealer.Card{ace}

	_, err = Resolve(Overrides{Predeal: pd, HasPredeal: true}, prog)
	require.ErrorIs(t, err, dealer.ErrPredealConflict)
}
