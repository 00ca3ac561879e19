// Package strategy is the closed registry of named eligibility and
// generation functions a credential type may reference.
package strategy

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"coursecred/internal/credential/models"
	dErrors "coursecred/pkg/domain-errors"
)

// Built-in strategy names.
const (
	RetrieveSubsectionGrades  = "retrieve_subsection_grades"
	RetrieveCourseCompletions = "retrieve_course_completions"
	GeneratePDFCredential     = "generate_pdf_credential"
)

// RetrievalFunc returns the learners eligible for a resource. A non-empty
// only restricts evaluation to those learners.
type RetrievalFunc func(ctx context.Context, resource models.Resource, opts models.Options, only []models.LearnerID) ([]models.LearnerID, error)

// GenerationRequest carries everything a generation function needs.
type GenerationRequest struct {
	Resource     models.Resource
	Learner      models.Learner
	CredentialID models.CredentialID
	Options      models.Options
}

// GenerationFunc renders and stores the artifact, returning its public URL.
type GenerationFunc func(ctx context.Context, req GenerationRequest) (string, error)

// OptionsCheck validates the merged options a strategy will receive.
type OptionsCheck func(opts models.Options) error

type retrieval struct {
	fn    RetrievalFunc
	check OptionsCheck
}

type generation struct {
	fn    GenerationFunc
	check OptionsCheck
}

// Registry maps strategy names to implementations. Registration happens at
// wiring time; lookups are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	retrieval  map[string]retrieval
	generation map[string]generation
}

func NewRegistry() *Registry {
	return &Registry{
		retrieval:  make(map[string]retrieval),
		generation: make(map[string]generation),
	}
}

// RegisterRetrieval adds a named eligibility strategy. check may be nil.
func (r *Registry) RegisterRetrieval(name string, fn RetrievalFunc, check OptionsCheck) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retrieval[name] = retrieval{fn: fn, check: check}
}

// RegisterGeneration adds a named generation strategy. check may be nil.
func (r *Registry) RegisterGeneration(name string, fn GenerationFunc, check OptionsCheck) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation[name] = generation{fn: fn, check: check}
}

// Retrieval resolves an eligibility strategy by name.
func (r *Registry) Retrieval(name string) (RetrievalFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.retrieval[name]
	if !ok {
		return nil, unknown("retrieval", name)
	}
	return entry.fn, nil
}

// Generation resolves a generation strategy by name.
func (r *Registry) Generation(name string) (GenerationFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.generation[name]
	if !ok {
		return nil, unknown("generation", name)
	}
	return entry.fn, nil
}

// ValidateType checks that both strategies of t resolve.
func (r *Registry) ValidateType(t *models.CredentialType) error {
	if t == nil || t.Name == "" {
		return dErrors.New(dErrors.CodeConfiguration, "credential type name is required")
	}
	if _, err := r.Retrieval(t.RetrievalFunc); err != nil {
		return err
	}
	_, err := r.Generation(t.GenerationFunc)
	return err
}

// ValidateConfiguration checks the strategies of t and the merged options c
// runs with.
func (r *Registry) ValidateConfiguration(t *models.CredentialType, c *models.Configuration) error {
	if err := r.ValidateType(t); err != nil {
		return err
	}
	if _, err := models.ParseResourceType(string(c.Resource.Type)); err != nil {
		return err
	}
	opts := c.EffectiveOptions(t)

	r.mu.RLock()
	rc := r.retrieval[t.RetrievalFunc].check
	gc := r.generation[t.GenerationFunc].check
	r.mu.RUnlock()

	for _, check := range []OptionsCheck{rc, gc} {
		if check == nil {
			continue
		}
		if err := check(opts); err != nil {
			return dErrors.Wrap(err, dErrors.CodeConfiguration,
				fmt.Sprintf("invalid options for %s in %s: %v", t.Name, c.Resource.ID, err))
		}
	}
	return nil
}

// RetrievalNames lists registered eligibility strategies, sorted.
func (r *Registry) RetrievalNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.retrieval))
	for name := range r.retrieval {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GenerationNames lists registered generation strategies, sorted.
func (r *Registry) GenerationNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.generation))
	for name := range r.generation {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func unknown(kind, name string) error {
	return dErrors.New(dErrors.CodeConfiguration, fmt.Sprintf("unknown %s strategy %q", kind, name))
}
