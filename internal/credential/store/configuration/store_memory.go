package configuration

import (
	"context"
	"sort"
	"sync"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

type resourceTypeKey struct {
	resourceID     string
	credentialType string
}

// InMemoryStore keeps credential types and configurations in process memory.
type InMemoryStore struct {
	mu             sync.RWMutex
	types          map[string]models.CredentialType
	configurations map[models.ConfigurationID]models.Configuration
	byResource     map[resourceTypeKey]models.ConfigurationID
}

// NewInMemoryStore constructs an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		types:          make(map[string]models.CredentialType),
		configurations: make(map[models.ConfigurationID]models.Configuration),
		byResource:     make(map[resourceTypeKey]models.ConfigurationID),
	}
}

// SaveType creates or replaces a credential type by name.
func (s *InMemoryStore) SaveType(_ context.Context, t *models.CredentialType) error {
	if t == nil {
		return sentinel.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *t
	stored.CustomOptions = models.MergeOptions(nil, t.CustomOptions)
	s.types[t.Name] = stored
	return nil
}

func (s *InMemoryStore) FindType(_ context.Context, name string) (*models.CredentialType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[name]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &t, nil
}

func (s *InMemoryStore) ListTypes(_ context.Context) ([]models.CredentialType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CredentialType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Create inserts a configuration. A second configuration for the same
// resource and type is a conflict.
func (s *InMemoryStore) Create(_ context.Context, c *models.Configuration) error {
	if c == nil {
		return sentinel.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.types[c.CredentialType]; !ok {
		return sentinel.ErrNotFound
	}
	key := resourceTypeKey{resourceID: c.Resource.ID, credentialType: c.CredentialType}
	if _, ok := s.byResource[key]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.configurations[c.ID]; ok {
		return sentinel.ErrConflict
	}
	s.put(*c)
	return nil
}

// Update replaces an existing configuration.
func (s *InMemoryStore) Update(_ context.Context, c *models.Configuration) error {
	if c == nil {
		return sentinel.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.configurations[c.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	key := resourceTypeKey{resourceID: c.Resource.ID, credentialType: c.CredentialType}
	if owner, taken := s.byResource[key]; taken && owner != c.ID {
		return sentinel.ErrConflict
	}
	delete(s.byResource, resourceTypeKey{resourceID: previous.Resource.ID, credentialType: previous.CredentialType})
	s.put(*c)
	return nil
}

func (s *InMemoryStore) put(c models.Configuration) {
	c.CustomOptions = models.MergeOptions(nil, c.CustomOptions)
	s.configurations[c.ID] = c
	s.byResource[resourceTypeKey{resourceID: c.Resource.ID, credentialType: c.CredentialType}] = c.ID
}

func (s *InMemoryStore) Delete(_ context.Context, id models.ConfigurationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.configurations[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.configurations, id)
	delete(s.byResource, resourceTypeKey{resourceID: c.Resource.ID, credentialType: c.CredentialType})
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id models.ConfigurationID) (*models.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.configurations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemoryStore) FindByResourceAndType(_ context.Context, resourceID, credentialType string) (*models.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byResource[resourceTypeKey{resourceID: resourceID, credentialType: credentialType}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := s.configurations[id]
	return &c, nil
}

// ListByResource returns the configurations of a resource ordered by type name.
func (s *InMemoryStore) ListByResource(_ context.Context, resourceID string) ([]models.Configuration, error) {
	return s.list(func(c models.Configuration) bool { return c.Resource.ID == resourceID }), nil
}

// ListEnabled returns every enabled configuration.
func (s *InMemoryStore) ListEnabled(_ context.Context) ([]models.Configuration, error) {
	return s.list(func(c models.Configuration) bool { return c.Enabled }), nil
}

func (s *InMemoryStore) list(keep func(models.Configuration) bool) []models.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Configuration
	for _, c := range s.configurations {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource.ID != out[j].Resource.ID {
			return out[i].Resource.ID < out[j].Resource.ID
		}
		return out[i].CredentialType < out[j].CredentialType
	})
	return out
}
