package supervisor

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	dealer "github.com/Rick-Wilson/Dealer3"
	"github.com/Rick-Wilson/Dealer3/lang"
	"github.com/Rick-Wilson/Dealer3/prng"
)

// runFast is the parallel worker pool of §4.6's "fast configuration".
// Work is dispatched in batches of B=200·W (auto-detecting cores when
// W=0); within a batch, up to W attempts run concurrently under a
// [semaphore.Weighted], with [errgroup.Group] carrying the first fatal
// evaluation error out. Results are written into a serial-indexed
// slice and drained in that order after the batch completes, which
// gives the same byte-identical ordering guarantee (§8) a literal
// result channel plus reorder buffer would, without its bookkeeping.
func runFast(ctx context.Context, prog *lang.Program, cfg Resolved, emit EmitFunc, logger zerolog.Logger) (*Report, error) {
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchUnit * workerCount
	}

	aggs := NewAggregatorSet(prog)
	var produced, generated uint64
	var stopped atomic.Bool

	for {
		if produced >= uint64(cfg.Produce) || generated >= uint64(cfg.Generate) || stopped.Load() {
			logger.Info().Uint64("produced", produced).Uint64("generated", generated).Msg("fast generation complete")
			break
		}
		select {
		case <-ctx.Done():
			logger.Warn().Err(ctx.Err()).Msg("fast generation cancelled")
			return buildReport(aggs, produced, generated), ctx.Err()
		default:
		}

		remaining := uint64(cfg.Generate) - generated
		n := uint64(batchSize)
		if n > remaining {
			n = remaining
		}
		if n == 0 {
			break
		}

		units := make([]WorkUnit, n)
		for i := range units {
			serial := generated + uint64(i)
			units[i] = WorkUnit{Serial: serial, Seed: cfg.Seed + serial}
		}

		logger.Debug().Int("workers", workerCount).Uint64("batch", n).Uint64("from_serial", generated).Msg("dispatching batch")

		results := make([]*CompletedWork, n)
		unitAggs := make([]*AggregatorSet, n)
		sem := semaphore.NewWeighted(int64(workerCount))
		g, gctx := errgroup.WithContext(ctx)

		var dispatchErr error
	dispatch:
		for i := range units {
			i := i
			u := units[i]
			if err := sem.Acquire(gctx, 1); err != nil {
				dispatchErr = err
				break dispatch
			}
			g.Go(func() error {
				defer sem.Release(1)
				if stopped.Load() {
					results[i] = &CompletedWork{Serial: u.Serial}
					return nil
				}
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				rng := prng.NewFast(u.Seed)
				deal, err := dealer.Shuffle(rng, cfg.Predeal)
				if err != nil {
					return err
				}
				ev := lang.NewEvaluator(prog, deal)
				ok, err := ev.EvalBool(prog.Condition())
				if err != nil {
					return &FatalEvaluationError{Serial: u.Serial, Cause: err}
				}
				cw := &CompletedWork{Serial: u.Serial, Passed: ok}
				if ok {
					cw.Deal = deal
					local := aggs.Clone()
					if err := local.Sample(ev); err != nil {
						return &FatalEvaluationError{Serial: u.Serial, Cause: err}
					}
					unitAggs[i] = local
				}
				results[i] = cw
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return buildReport(aggs, produced, generated), err
		}
		if dispatchErr != nil {
			return buildReport(aggs, produced, generated), dispatchErr
		}

		for i, cw := range results {
			if produced >= uint64(cfg.Produce) {
				break
			}
			if cw == nil {
				continue
			}
			generated++
			if !cw.Passed {
				continue
			}
			produced++
			emit(cw.Serial, cw.Deal, cfg.Dealer, cfg.Vulnerable)
			if a := unitAggs[i]; a != nil {
				aggs.Merge(a)
			}
			if produced >= uint64(cfg.Produce) {
				stopped.Store(true)
			}
		}
	}
	return buildReport(aggs, produced, generated), nil
}
