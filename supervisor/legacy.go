package supervisor

import (
	"context"

	"github.com/rs/zerolog"

	dealer "github.com/Rick-Wilson/Dealer3"
	"github.com/Rick-Wilson/Dealer3/lang"
	"github.com/Rick-Wilson/Dealer3/prng"
)

// runLegacy is the single-threaded, strictly sequential generation
// loop of §4.6's "legacy configuration": shuffle, analyse, evaluate,
// maybe emit, repeat. The master PRNG is never shared or cloned
// outside this loop — parallelising it would change its output (§9).
func runLegacy(ctx context.Context, prog *lang.Program, cfg Resolved, emit EmitFunc, logger zerolog.Logger) (*Report, error) {
	rng := prng.NewLegacy(int64(cfg.Seed))
	aggs := NewAggregatorSet(prog)

	var produced, generated uint64
	for {
		if produced >= uint64(cfg.Produce) || generated >= uint64(cfg.Generate) {
			logger.Info().Uint64("produced", produced).Uint64("generated", generated).Msg("legacy generation complete")
			break
		}
		select {
		case <-ctx.Done():
			logger.Warn().Err(ctx.Err()).Msg("legacy generation cancelled")
			return buildReport(aggs, produced, generated), ctx.Err()
		default:
		}

		serial := generated
		deal, err := dealer.Shuffle(rng, cfg.Predeal)
		if err != nil {
			return buildReport(aggs, produced, generated), err
		}
		generated++

		ev := lang.NewEvaluator(prog, deal)
		ok, err := ev.EvalBool(prog.Condition())
		if err != nil {
			return buildReport(aggs, produced, generated), &FatalEvaluationError{Serial: serial, Cause: err}
		}
		if !ok {
			continue
		}
		if err := aggs.Sample(ev); err != nil {
			return buildReport(aggs, produced, generated), &FatalEvaluationError{Serial: serial, Cause: err}
		}
		produced++
		emit(serial, deal, cfg.Dealer, cfg.Vulnerable)
	}
	return buildReport(aggs, produced, generated), nil
}
