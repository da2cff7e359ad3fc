package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/clock"
)

// Runner triggers update cycles on a fixed interval until the context is
// canceled. It is one of several trigger adapters over ForceUpdate; the
// engine itself does not know what drives it.
type Runner struct {
	engine   *Engine
	interval time.Duration
	sleep    func(context.Context, time.Duration) error
	logger   *zap.Logger
}

// NewRunner builds an interval Runner around the engine.
func NewRunner(engine *Engine, interval time.Duration, logger *zap.Logger) *Runner {
	return &Runner{
		engine:   engine,
		interval: interval,
		sleep:    clock.SleepWithContext,
		logger:   logger,
	}
}

// Run performs an immediate cycle and then one per interval. Cycle failures
// are logged and retried on the next tick; only context cancellation stops
// the loop.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := r.engine.ForceUpdate(ctx); err != nil {
			r.logger.Warn("update cycle failed; retrying next tick",
				zap.Error(err), zap.Duration("interval", r.interval))
		}
		if err := r.sleep(ctx, r.interval); err != nil {
			return err
		}
	}
}
