//go:build integration

package workqueue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"coursecred/internal/platform/config"
	platformredis "coursecred/internal/platform/redis"
	"coursecred/internal/platform/workqueue"
	"coursecred/pkg/testutil/containers"
)

type RedisQueueIntegrationSuite struct {
	suite.Suite
	client *platformredis.Client
}

func TestRedisQueueIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisQueueIntegrationSuite))
}

func (s *RedisQueueIntegrationSuite) SetupSuite() {
	rc := containers.GetManager().GetRedis(s.T())
	client, err := platformredis.New(context.Background(), config.RedisConfig{URL: rc.URL})
	s.Require().NoError(err)
	s.client = client
}

func (s *RedisQueueIntegrationSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

// Each submitted task reaches exactly one of several consumers.
func (s *RedisQueueIntegrationSuite) TestTasksDeliveredOnce() {
	queue := workqueue.NewRedisQueue(s.client,
		workqueue.WithQueueKey("coursecred:test:"+s.T().Name()),
		workqueue.WithConsumers(3),
		workqueue.WithPollTimeout(100*time.Millisecond),
	)

	const total = 20
	seen := make(chan string, total*2)
	mux := workqueue.NewMux()
	mux.Handle("generate_for_learner", func(_ context.Context, t workqueue.Task) error {
		seen <- t.ID
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- queue.Run(ctx, mux.Dispatch) }()

	submitted := make(map[string]bool, total)
	for i := range total {
		id, err := queue.Submit(context.Background(), workqueue.NewTask("generate_for_learner", "cfg", string(rune('a'+i))))
		s.Require().NoError(err)
		submitted[id] = true
	}

	received := make(map[string]int, total)
	timeout := time.After(10 * time.Second)
	for len(received) < total {
		select {
		case id := <-seen:
			received[id]++
		case <-timeout:
			s.FailNow("timed out waiting for tasks", "received %d of %d", len(received), total)
		}
	}
	cancel()
	s.NoError(<-done)

	for id, n := range received {
		s.True(submitted[id])
		s.Equal(1, n, "task %s delivered more than once", id)
	}
}
