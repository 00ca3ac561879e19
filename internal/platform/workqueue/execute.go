package workqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type runner struct {
	handler Handler
	metrics *Metrics
	logger  *slog.Logger
}

// run executes one task, converting a handler panic into an error.
func (r *runner) run(ctx context.Context, t Task) (err error) {
	start := time.Now()
	if r.metrics != nil {
		r.metrics.InFlight.Inc()
		defer r.metrics.InFlight.Dec()
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task %s panicked: %v", t.Name, rec)
		}
		result := "ok"
		if err != nil {
			result = "error"
			r.logger.ErrorContext(ctx, "task failed",
				"task_id", t.ID,
				"task", t.Name,
				"error", err,
			)
		}
		if r.metrics != nil {
			r.metrics.Processed.WithLabelValues(t.Name, result).Inc()
			r.metrics.Duration.WithLabelValues(t.Name).Observe(time.Since(start).Seconds())
		}
	}()
	return r.handler(ctx, t)
}

func prepareTask(t Task, now time.Time) Task {
	if t.ID == "" {
		t.ID = NewTask(t.Name).ID
	}
	if t.EnqueuedAt.IsZero() {
		t.EnqueuedAt = now
	}
	return t
}
