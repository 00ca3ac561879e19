package credential

import (
	"context"
	"sort"
	"sync"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

// InMemoryStore is an in-memory credential store for tests and local runs.
// Records are indexed by id and by natural key.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[models.CredentialID]models.Credential
	byKey   map[models.NaturalKey]models.CredentialID
}

// NewInMemoryStore constructs an empty in-memory credential store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[models.CredentialID]models.Credential),
		byKey:   make(map[models.NaturalKey]models.CredentialID),
	}
}

func (s *InMemoryStore) FindByID(_ context.Context, id models.CredentialID) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &record, nil
}

func (s *InMemoryStore) FindByKey(_ context.Context, key models.NaturalKey) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	record := s.records[id]
	return &record, nil
}

// Save writes the record by natural key. A record with a different id already
// holding the key is replaced, so the last writer wins.
func (s *InMemoryStore) Save(_ context.Context, c *models.Credential) error {
	if c == nil {
		return sentinel.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(*c)
	return nil
}

// UpsertGenerating atomically moves the record for the key into GENERATING,
// creating it with candidate's id when absent.
func (s *InMemoryStore) UpsertGenerating(_ context.Context, candidate *models.Credential) (*models.Credential, error) {
	if candidate == nil {
		return nil, sentinel.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := candidate.Key()
	if id, ok := s.byKey[key]; ok {
		existing := s.records[id]
		existing.Restart(candidate.LearnerDisplayName, candidate.GenerationTaskID, candidate.UpdatedAt)
		s.records[id] = existing
		return &existing, nil
	}
	record := *candidate
	s.save(record)
	return &record, nil
}

func (s *InMemoryStore) save(c models.Credential) {
	key := c.Key()
	if previous, ok := s.byKey[key]; ok && previous != c.ID {
		delete(s.records, previous)
	}
	s.records[c.ID] = c
	s.byKey[key] = c.ID
}

// ListByLearner returns the learner's records for a resource ordered by type.
func (s *InMemoryStore) ListByLearner(_ context.Context, resourceID string, learnerID models.LearnerID) ([]models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Credential
	for _, record := range s.records {
		if record.Resource.ID == resourceID && record.LearnerID == learnerID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CredentialType < out[j].CredentialType })
	return out, nil
}

// CredentialedLearners returns the candidates holding a record for the
// resource and type in any status that suppresses generation.
func (s *InMemoryStore) CredentialedLearners(_ context.Context, resourceID, credentialType string, candidates []models.LearnerID) ([]models.LearnerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.LearnerID
	for _, learnerID := range candidates {
		id, ok := s.byKey[models.NaturalKey{LearnerID: learnerID, ResourceID: resourceID, CredentialType: credentialType}]
		if !ok {
			continue
		}
		if s.records[id].Status.SuppressesGeneration() {
			out = append(out, learnerID)
		}
	}
	return out, nil
}
