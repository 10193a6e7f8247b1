package dealer_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	dealer "github.com/Rick-Wilson/Dealer3"
	"github.com/Rick-Wilson/Dealer3/lang"
	"github.com/Rick-Wilson/Dealer3/supervisor"
)

// emitted is one deal captured by a test's [supervisor.EmitFunc], in
// the order it was emitted.
type emitted struct {
	serial uint64
	deal   *dealer.Deal
}

func recordingEmit(out *[]emitted) supervisor.EmitFunc {
	return func(serial uint64, deal *dealer.Deal, _ dealer.Seat, _ dealer.Vulnerability) {
		*out = append(*out, emitted{serial: serial, deal: deal})
	}
}

func legacyRun(t *testing.T, src string, seed uint64, produce int) []emitted {
	t.Helper()
	prog, err := lang.Parse(src)
	require.NoError(t, err)
	p := produce
	s := seed
	cfg, err := supervisor.Resolve(supervisor.Overrides{
		Produce:   &p,
		Seed:      &s,
		Legacy:    true,
		LegacySet: true,
	}, prog)
	require.NoError(t, err)
	var out []emitted
	_, err = supervisor.Run(context.Background(), prog, cfg, recordingEmit(&out), zerolog.Nop())
	require.NoError(t, err)
	return out
}

// §8 scenario 1: `hcp(north) >= 20`, seed=1, produce=1, legacy — exactly
// one deal emitted, North's HCP (independently recomputed) >= 20.
func TestScenario1StrongNorthOpener(t *testing.T) {
	out := legacyRun(t, "hcp(north) >= 20", 1, 1)
	require.Len(t, out, 1)
	require.GreaterOrEqual(t, out[0].deal.Stats(dealer.North).TotalHCP, 20)
}

// §8 scenario 2: `shape(north, any 4333)`, seed=42, produce=10, legacy —
// ten deals, each with North's suit-length multiset equal to {4,3,3,3}.
func TestScenario2Any4333Shape(t *testing.T) {
	out := legacyRun(t, "shape(north, any 4333)", 42, 10)
	require.Len(t, out, 10)
	for _, e := range out {
		length := e.deal.Stats(dealer.North).Length
		counts := map[int]int{}
		for _, l := range length {
			counts[l]++
		}
		require.Equal(t, map[int]int{4: 1, 3: 3}, counts, "serial %d", e.serial)
	}
}

// §8 scenario 3: a conjunction of two memoised variables, seed=7,
// produce=5, legacy — every emitted deal satisfies both conjuncts, and
// variable memoisation must not change the output.
func TestScenario3VariableConjunction(t *testing.T) {
	src := "strong = hcp(north)>=15\nlong_h = hearts(north)>=5\nstrong && long_h"
	out := legacyRun(t, src, 7, 5)
	require.Len(t, out, 5)
	for _, e := range out {
		stats := e.deal.Stats(dealer.North)
		require.GreaterOrEqual(t, stats.TotalHCP, 15, "serial %d", e.serial)
		require.GreaterOrEqual(t, stats.Length[dealer.Hearts], 5, "serial %d", e.serial)
	}
}

// §8 scenario 5: `predeal north SA,KH` with `hcp(north) >= 0`, seed=1,
// produce=3, legacy — every North hand contains [SPAdes Ace] and
// [Hearts King].
func TestScenario5Predeal(t *testing.T) {
	out := legacyRun(t, "predeal north SA,KH\nhcp(north) >= 0", 1, 3)
	require.Len(t, out, 3)
	ace, king := dealer.CardOf(dealer.Spades, dealer.Ace), dealer.CardOf(dealer.Hearts, dealer.King)
	for _, e := range out {
		hand := e.deal.Hand(dealer.North)
		require.True(t, hand.Contains(ace), "serial %d missing SA", e.serial)
		require.True(t, hand.Contains(king), "serial %d missing KH", e.serial)
	}
}

// §8 scenario 6: `hcp(north) >= 20`, seed=1, produce=100, fast mode —
// output must be byte-identical (here: same serial/deal sequence)
// regardless of worker count.
func TestScenario6FastModeWorkerCountInvariant(t *testing.T) {
	run := func(workers int) []emitted {
		prog, err := lang.Parse("hcp(north) >= 20")
		require.NoError(t, err)
		p, s, w := 100, uint64(1), workers
		cfg, err := supervisor.Resolve(supervisor.Overrides{
			Produce:     &p,
			Seed:        &s,
			WorkerCount: &w,
		}, prog)
		require.NoError(t, err)
		var out []emitted
		_, err = supervisor.Run(context.Background(), prog, cfg, recordingEmit(&out), zerolog.Nop())
		require.NoError(t, err)
		return out
	}
	oneWorker := run(1)
	eightWorkers := run(8)
	require.Len(t, oneWorker, 100)
	require.Len(t, eightWorkers, 100)
	require.Equal(t, len(oneWorker), len(eightWorkers))
	for i := range oneWorker {
		require.Equal(t, oneWorker[i].serial, eightWorkers[i].serial, "index %d", i)
		require.Equal(t, oneWorker[i].deal.Hand(dealer.North), eightWorkers[i].deal.Hand(dealer.North), "index %d", i)
		require.Equal(t, oneWorker[i].deal.Hand(dealer.East), eightWorkers[i].deal.Hand(dealer.East), "index %d", i)
		require.Equal(t, oneWorker[i].deal.Hand(dealer.South), eightWorkers[i].deal.Hand(dealer.South), "index %d", i)
		require.Equal(t, oneWorker[i].deal.Hand(dealer.West), eightWorkers[i].deal.Hand(dealer.West), "index %d", i)
	}
}

// produce 0 terminates immediately with nothing emitted (§8 boundary
// behaviour).
func TestProduceZeroEmitsNothing(t *testing.T) {
	out := legacyRun(t, "hcp(north) >= 0", 1, 0)
	require.Empty(t, out)
}

// §8's partition property: every generated deal's four hands partition
// the full 52-card deck exactly.
func TestDealPartitionsDeck(t *testing.T) {
	out := legacyRun(t, "hcp(north) >= 0", 9, 20)
	require.Len(t, out, 20)
	for _, e := range out {
		seen := map[dealer.Card]bool{}
		for _, seat := range dealer.Seats {
			for _, c := range e.deal.Hand(seat).Cards() {
				require.False(t, seen[c], "card %s seen twice in serial %d", c, e.serial)
				seen[c] = true
			}
		}
		require.Len(t, seen, dealer.NumCards, "serial %d", e.serial)
	}
}
