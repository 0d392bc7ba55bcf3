package app

import (
	"context"
	"sync/atomic"

	"github.com/specialistvlad/scriptfunc/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// WarmReport summarizes a warm-up run.
type WarmReport struct {
	Listed  int
	Built   int
	Missing int
	Failed  int
}

// Warm resolves every function the store lists so that later calls hit the
// cache. Failures are logged and counted; they do not stop the run. Warm
// returns an error only when ctx is cancelled.
func (a *App) Warm(ctx context.Context) (WarmReport, error) {
	if err := ctx.Err(); err != nil {
		return WarmReport{}, err
	}
	ctx = ctxlog.WithLogger(ctx, a.logger)
	names := a.factory.FunctionNames(ctx)
	a.logger.Info("Warming function cache.", "functions", len(names), "workers", a.config.Warm.Workers)

	var built, missing, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Warm.Workers)

	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn, err := a.factory.Function(gctx, name, nil, nil)
			switch {
			case err != nil:
				failed.Add(1)
				a.logger.Warn("Function failed to build.", "name", name.String(), "error", err)
			case fn == nil:
				missing.Add(1)
			default:
				built.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()

	report := WarmReport{
		Listed:  len(names),
		Built:   int(built.Load()),
		Missing: int(missing.Load()),
		Failed:  int(failed.Load()),
	}
	a.logger.Info("Function cache warmed.", "built", report.Built, "missing", report.Missing, "failed", report.Failed)
	return report, err
}
