package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	schedules map[models.ConfigurationID]models.Schedule
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{schedules: make(map[models.ConfigurationID]models.Schedule)}
}

func (s *InMemoryStore) Save(_ context.Context, sc *models.Schedule) error {
	if sc == nil {
		return sentinel.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.schedules {
		if existing.Name == sc.Name && id != sc.ConfigurationID {
			return sentinel.ErrConflict
		}
	}
	stored := *sc
	stored.Args = append([]string(nil), sc.Args...)
	s.schedules[sc.ConfigurationID] = stored
	return nil
}

func (s *InMemoryStore) FindByConfiguration(_ context.Context, id models.ConfigurationID) (*models.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.schedules[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &sc, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id models.ConfigurationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedules[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.schedules, id)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Schedule, 0, len(s.schedules))
	for _, sc := range s.schedules {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStore) MarkRun(_ context.Context, id models.ConfigurationID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.schedules[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	sc.LastRunAt = &at
	s.schedules[id] = sc
	return nil
}
