package asset

import (
	"context"
	"sort"
	"sync"

	"coursecred/internal/credential/models"
)

// InMemoryStore holds assets in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	assets map[string]models.Asset
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{assets: make(map[string]models.Asset)}
}

// Save uploads an asset, replacing any bytes previously stored under the slug.
func (s *InMemoryStore) Save(_ context.Context, a *models.Asset) error {
	stored, err := prepare(a)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[stored.Slug] = stored
	return nil
}

// AssetBySlug returns a copy of the asset; callers may not mutate stored bytes.
func (s *InMemoryStore) AssetBySlug(_ context.Context, slug string) (*models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[slug]
	if !ok {
		return nil, notFound(slug)
	}
	a.Data = append([]byte(nil), a.Data...)
	return &a, nil
}

// List returns asset metadata without payloads, ordered by slug.
func (s *InMemoryStore) List(_ context.Context) ([]models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		a.Data = nil
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[slug]; !ok {
		return notFound(slug)
	}
	delete(s.assets, slug)
	return nil
}
