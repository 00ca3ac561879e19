package schedule

import (
	"context"
	"log/slog"
	"time"

	"coursecred/internal/platform/workqueue"
)

const DefaultTick = time.Minute

// Runner polls the store and submits every due unit.
type Runner struct {
	store     Store
	submitter workqueue.Submitter
	tick      time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

type RunnerOption func(*Runner)

func WithTick(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.tick = d
		}
	}
}

func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

func NewRunner(store Store, submitter workqueue.Submitter, opts ...RunnerOption) *Runner {
	r := &Runner{
		store:     store,
		submitter: submitter,
		tick:      DefaultTick,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run ticks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Tick(ctx); err != nil {
				r.logger.ErrorContext(ctx, "schedule tick failed", "error", err)
			}
		}
	}
}

// Tick submits the due units once and returns how many were submitted.
// A unit whose submission fails stays due for the next tick.
func (r *Runner) Tick(ctx context.Context) (int, error) {
	schedules, err := r.store.List(ctx)
	if err != nil {
		return 0, err
	}
	now := r.now()
	submitted := 0
	for _, s := range schedules {
		if !s.Due(now) {
			continue
		}
		taskID, err := r.submitter.Submit(ctx, workqueue.NewTask(s.Task, s.Args...))
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to submit scheduled task",
				"schedule", s.Name,
				"configuration_id", s.ConfigurationID.String(),
				"error", err,
			)
			continue
		}
		if err := r.store.MarkRun(ctx, s.ConfigurationID, now); err != nil {
			r.logger.ErrorContext(ctx, "failed to record schedule run",
				"schedule", s.Name,
				"error", err,
			)
		}
		r.logger.InfoContext(ctx, "scheduled task submitted",
			"schedule", s.Name,
			"task_id", taskID,
		)
		submitted++
	}
	return submitted, nil
}
