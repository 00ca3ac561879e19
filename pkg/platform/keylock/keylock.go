// Package keylock serializes work on the same key inside one process.
package keylock

import (
	"hash/fnv"
	"sync"
)

const defaultShards = 64

// Sharded maps keys onto a fixed set of mutexes. Two keys may share a shard,
// so a holder must never take a second key while holding the first.
type Sharded struct {
	shards []sync.Mutex
}

func New() *Sharded {
	return NewWithShards(defaultShards)
}

// NewWithShards builds a lock with n shards; n below 1 becomes 1.
func NewWithShards(n int) *Sharded {
	if n < 1 {
		n = 1
	}
	return &Sharded{shards: make([]sync.Mutex, n)}
}

func (s *Sharded) Lock(key string) {
	s.shards[s.shardFor(key)].Lock()
}

func (s *Sharded) Unlock(key string) {
	s.shards[s.shardFor(key)].Unlock()
}

// Do runs fn while holding the lock for key.
func (s *Sharded) Do(key string, fn func() error) error {
	s.Lock(key)
	defer s.Unlock(key)
	return fn()
}

func (s *Sharded) shardFor(key string) int {
	if len(s.shards) == 1 || key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.shards)))
}
