//go:build integration

// Package containers starts the PostgreSQL, Redis and Kafka instances that
// integration tests run against. Each one is started at most once per test
// binary and shared by every suite in it; the testcontainers reaper removes
// them when the binary exits.
package containers

import (
	"sync"
	"testing"
	"time"
)

const startupTimeout = 90 * time.Second

// shared starts a value on first use and hands the same value to later callers.
type shared[T any] struct {
	mu    sync.Mutex
	value *T
}

func (s *shared[T]) get(t *testing.T, start func(*testing.T) *T) *T {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		s.value = start(t)
	}
	return s.value
}

// Manager hands out the shared containers.
type Manager struct {
	postgres shared[PostgresContainer]
	redis    shared[RedisContainer]
	kafka    shared[KafkaContainer]
}

var manager = &Manager{}

func GetManager() *Manager {
	return manager
}

// GetPostgres returns a migrated PostgreSQL instance.
func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	return m.postgres.get(t, NewPostgresContainer)
}

func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	return m.redis.get(t, NewRedisContainer)
}

func (m *Manager) GetKafka(t *testing.T) *KafkaContainer {
	t.Helper()
	return m.kafka.get(t, NewKafkaContainer)
}
