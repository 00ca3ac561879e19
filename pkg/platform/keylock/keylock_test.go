package keylock

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharded_SameKeySerializes(t *testing.T) {
	l := New()
	counter := 0
	var wg sync.WaitGroup

	for range 200 {
		wg.Go(func() {
			_ = l.Do("learner-1/course-v1:A+B+C", func() error {
				counter++
				return nil
			})
		})
	}
	wg.Wait()

	assert.Equal(t, 200, counter)
}

func TestSharded_DistinctKeys(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			key := fmt.Sprintf("key-%d", i)
			l.Lock(key)
			defer l.Unlock(key)
		})
	}
	wg.Wait()
}

func TestSharded_DoReturnsError(t *testing.T) {
	l := New()
	err := l.Do("k", func() error { return assert.AnError })
	assert.True(t, errors.Is(err, assert.AnError))

	// lock is released after an error
	l.Lock("k")
	l.Unlock("k")
}

func TestShardFor(t *testing.T) {
	t.Run("empty key uses first shard", func(t *testing.T) {
		assert.Equal(t, 0, New().shardFor(""))
	})

	t.Run("single shard", func(t *testing.T) {
		l := NewWithShards(0)
		assert.Len(t, l.shards, 1)
		assert.Equal(t, 0, l.shardFor("anything"))
	})

	t.Run("stable and in range", func(t *testing.T) {
		l := NewWithShards(8)
		first := l.shardFor("course-v1:X+Y+Z")
		assert.Equal(t, first, l.shardFor("course-v1:X+Y+Z"))
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 8)
	})

	t.Run("spreads keys", func(t *testing.T) {
		l := New()
		seen := map[int]bool{}
		for i := range 500 {
			seen[l.shardFor(fmt.Sprintf("learner-%d", i))] = true
		}
		assert.Greater(t, len(seen), defaultShards/2)
	})
}
