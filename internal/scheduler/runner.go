// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner wraps a cron instance whose jobs all receive the same base context.
type Runner struct {
	cron    *cron.Cron
	log     *zap.SugaredLogger
	baseCtx context.Context
	timeout time.Duration
}

// New creates a runner. Specs use the standard five field format plus
// descriptors such as "@every 6h". Each run is bounded by timeout when it is positive.
func New(baseCtx context.Context, log *zap.SugaredLogger, timeout time.Duration) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{
		cron:    cron.New(),
		log:     log,
		baseCtx: baseCtx,
		timeout: timeout,
	}
}

// Add registers job under name on spec.
func (r *Runner) Add(name, spec string, job func(context.Context) error) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() { r.run(name, job) })
}

func (r *Runner) run(name string, job func(context.Context) error) {
	ctx := r.baseCtx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job(ctx); err != nil {
		r.log.Warnw("scheduled job failed", "job", name, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	r.log.Infow("scheduled job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
}

// Entries returns the number of registered jobs.
func (r *Runner) Entries() int { return len(r.cron.Entries()) }

// Start begins running jobs in the background.
func (r *Runner) Start() {
	r.log.Info("scheduler started")
	r.cron.Start()
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("scheduler stopped")
}
