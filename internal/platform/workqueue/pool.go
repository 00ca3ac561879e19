package workqueue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
)

// Pool is a bounded in-process executor.
type Pool struct {
	runner  runner
	workers int
	tasks   chan Task

	mu     sync.RWMutex
	closed bool
}

type PoolOption func(*Pool)

func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithBuffer sets how many submitted tasks may wait for a worker before
// Submit blocks.
func WithBuffer(n int) PoolOption {
	return func(p *Pool) {
		if n >= 0 {
			p.tasks = make(chan Task, n)
		}
	}
}

func WithPoolMetrics(m *Metrics) PoolOption {
	return func(p *Pool) { p.runner.metrics = m }
}

func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) { p.runner.logger = logger }
}

func NewPool(handler Handler, opts ...PoolOption) *Pool {
	p := &Pool{
		runner:  runner{handler: handler, logger: slog.Default()},
		workers: defaultWorkers,
		tasks:   make(chan Task, defaultBuffer),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit queues t and returns its id. It blocks while the buffer is full.
func (p *Pool) Submit(ctx context.Context, t Task) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return "", ErrClosed
	}
	t = prepareTask(t, time.Now())
	select {
	case p.tasks <- t:
		if p.runner.metrics != nil {
			p.runner.metrics.Submitted.WithLabelValues(t.Name).Inc()
		}
		return t.ID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Run executes tasks until Close drains the queue or ctx is cancelled.
// Handler errors do not stop the pool.
func (p *Pool) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for range p.workers {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case t, ok := <-p.tasks:
					if !ok {
						return nil
					}
					_ = p.runner.run(gctx, t)
				}
			}
		})
	}
	return g.Wait()
}

// Close stops accepting tasks. Queued tasks still run.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.tasks)
}
