package workqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultQueueKey    = "coursecred:tasks"
	defaultPollTimeout = 5 * time.Second
)

// ListClient is the subset of go-redis the queue uses.
type ListClient interface {
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// RedisQueue is a Redis list backed queue. Producers RPUSH JSON encoded
// tasks, consumers BLPOP them; each task is delivered to at most one consumer.
type RedisQueue struct {
	client      ListClient
	key         string
	workers     int
	pollTimeout time.Duration
	metrics     *Metrics
	logger      *slog.Logger
}

type RedisOption func(*RedisQueue)

func WithQueueKey(key string) RedisOption {
	return func(q *RedisQueue) { q.key = key }
}

func WithConsumers(n int) RedisOption {
	return func(q *RedisQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithPollTimeout(d time.Duration) RedisOption {
	return func(q *RedisQueue) { q.pollTimeout = d }
}

func WithRedisMetrics(m *Metrics) RedisOption {
	return func(q *RedisQueue) { q.metrics = m }
}

func WithRedisLogger(logger *slog.Logger) RedisOption {
	return func(q *RedisQueue) { q.logger = logger }
}

func NewRedisQueue(client ListClient, opts ...RedisOption) *RedisQueue {
	q := &RedisQueue{
		client:      client,
		key:         DefaultQueueKey,
		workers:     defaultWorkers,
		pollTimeout: defaultPollTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *RedisQueue) Submit(ctx context.Context, t Task) (string, error) {
	t = prepareTask(t, time.Now())
	payload, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode task: %w", err)
	}
	if err := q.client.RPush(ctx, q.key, payload).Err(); err != nil {
		return "", fmt.Errorf("push task: %w", err)
	}
	if q.metrics != nil {
		q.metrics.Submitted.WithLabelValues(t.Name).Inc()
	}
	return t.ID, nil
}

// Run consumes tasks with the configured number of consumers until ctx is
// cancelled. Undecodable payloads are logged and dropped.
func (q *RedisQueue) Run(ctx context.Context, handler Handler) error {
	r := runner{handler: handler, metrics: q.metrics, logger: q.logger}
	g, gctx := errgroup.WithContext(ctx)
	for range q.workers {
		g.Go(func() error {
			return q.consume(gctx, &r)
		})
	}
	return g.Wait()
}

func (q *RedisQueue) consume(ctx context.Context, r *runner) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		result, err := q.client.BLPop(ctx, q.pollTimeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			q.logger.ErrorContext(ctx, "failed to pop task", "queue", q.key, "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		// BLPOP replies with [key, value].
		if len(result) != 2 {
			continue
		}
		var t Task
		if err := json.Unmarshal([]byte(result[1]), &t); err != nil {
			q.logger.ErrorContext(ctx, "dropping undecodable task", "queue", q.key, "error", err)
			continue
		}
		_ = r.run(ctx, t)
	}
}
