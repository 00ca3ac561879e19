package workqueue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMux(t *testing.T) {
	mux := NewMux()
	var got []string
	mux.Handle("generate", func(_ context.Context, task Task) error {
		got = task.Args
		return nil
	})

	require.NoError(t, mux.Dispatch(context.Background(), NewTask("generate", "a", "b")))
	assert.Equal(t, []string{"a", "b"}, got)
	assert.ErrorIs(t, mux.Dispatch(context.Background(), NewTask("other")), ErrUnknownTask)
}

func TestPool(t *testing.T) {
	t.Run("runs every submitted task and drains on close", func(t *testing.T) {
		var count atomic.Int32
		m := NewMetrics(prometheus.NewRegistry())
		pool := NewPool(func(context.Context, Task) error {
			count.Add(1)
			return nil
		}, WithWorkers(3), WithPoolMetrics(m))

		done := make(chan error, 1)
		go func() { done <- pool.Run(context.Background()) }()

		for i := 0; i < 20; i++ {
			id, err := pool.Submit(context.Background(), NewTask("generate"))
			require.NoError(t, err)
			assert.NotEmpty(t, id)
		}
		pool.Close()
		require.NoError(t, <-done)
		assert.Equal(t, int32(20), count.Load())
		assert.Equal(t, float64(20), promtest.ToFloat64(m.Processed.WithLabelValues("generate", "ok")))
	})

	t.Run("submit after close", func(t *testing.T) {
		pool := NewPool(func(context.Context, Task) error { return nil })
		pool.Close()
		pool.Close()
		_, err := pool.Submit(context.Background(), NewTask("generate"))
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("failures and panics do not stop workers", func(t *testing.T) {
		var mu sync.Mutex
		var seen []string
		m := NewMetrics(prometheus.NewRegistry())
		pool := NewPool(func(_ context.Context, task Task) error {
			mu.Lock()
			seen = append(seen, task.Args[0])
			mu.Unlock()
			switch task.Args[0] {
			case "fail":
				return errors.New("boom")
			case "panic":
				panic("bad task")
			}
			return nil
		}, WithWorkers(1), WithPoolMetrics(m))

		done := make(chan error, 1)
		go func() { done <- pool.Run(context.Background()) }()
		for _, arg := range []string{"fail", "panic", "ok"} {
			_, err := pool.Submit(context.Background(), NewTask("generate", arg))
			require.NoError(t, err)
		}
		pool.Close()
		require.NoError(t, <-done)
		assert.Equal(t, []string{"fail", "panic", "ok"}, seen)
		assert.Equal(t, float64(2), promtest.ToFloat64(m.Processed.WithLabelValues("generate", "error")))
	})

	t.Run("submit honours context while the buffer is full", func(t *testing.T) {
		pool := NewPool(func(context.Context, Task) error { return nil }, WithBuffer(0))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := pool.Submit(ctx, NewTask("generate"))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

type fakeList struct {
	mu     sync.Mutex
	pushed []string
	items  chan string
}

func newFakeList() *fakeList {
	return &fakeList{items: make(chan string, 16)}
}

func (f *fakeList) RPush(_ context.Context, _ string, values ...any) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range values {
		s := string(v.([]byte))
		f.pushed = append(f.pushed, s)
		f.items <- s
	}
	return redis.NewIntResult(int64(len(f.pushed)), nil)
}

func (f *fakeList) BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd {
	select {
	case v := <-f.items:
		return redis.NewStringSliceResult([]string{keys[0], v}, nil)
	case <-time.After(timeout):
		return redis.NewStringSliceResult(nil, redis.Nil)
	case <-ctx.Done():
		return redis.NewStringSliceResult(nil, ctx.Err())
	}
}

func TestRedisQueue(t *testing.T) {
	client := newFakeList()
	q := NewRedisQueue(client, WithQueueKey("test:tasks"), WithConsumers(2), WithPollTimeout(10*time.Millisecond))

	id, err := q.Submit(context.Background(), NewTask("generate_for_learner", "cfg", "42"))
	require.NoError(t, err)

	var encoded Task
	require.NoError(t, json.Unmarshal([]byte(client.pushed[0]), &encoded))
	assert.Equal(t, id, encoded.ID)
	assert.Equal(t, []string{"cfg", "42"}, encoded.Args)
	assert.False(t, encoded.EnqueuedAt.IsZero())

	client.items <- "not json"

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan Task, 1)
	done := make(chan error, 1)
	go func() {
		done <- q.Run(ctx, func(_ context.Context, task Task) error {
			received <- task
			return nil
		})
	}()

	select {
	case task := <-received:
		assert.Equal(t, id, task.ID)
		assert.Equal(t, "generate_for_learner", task.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("task was not consumed")
	}
	cancel()
	require.NoError(t, <-done)
}
