package supervisor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Rick-Wilson/Dealer3/lang"
)

// Run drives deal generation to completion, selecting the legacy
// single-threaded loop or the fast parallel worker pool per
// cfg.Legacy (§4.6), and returns the final [Report] once a
// termination condition is reached (§4.6/§5), ctx is cancelled, or an
// [*FatalEvaluationError] aborts the run (§7: "the same program will
// fail on every deal").
//
// emit is called once per matching deal, strictly in serial order,
// before Run returns. logger receives debug-level per-batch dispatch
// messages (fast mode only), info on normal termination, and warn on
// cancellation, per the AMBIENT STACK's logging-level mapping.
func Run(ctx context.Context, prog *lang.Program, cfg Resolved, emit EmitFunc, logger zerolog.Logger) (*Report, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if cfg.Legacy {
		return runLegacy(ctx, prog, cfg, emit, logger)
	}
	return runFast(ctx, prog, cfg, emit, logger)
}
