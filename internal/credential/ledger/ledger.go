// Package ledger is the authoritative record of one credential per learner,
// resource and credential type. It owns the GENERATING -> AVAILABLE | ERROR
// state machine and decides which learners still need a credential.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coursecred/internal/credential/metrics"
	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports"
	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/platform/sentinel"
)

// Store is the persistence the ledger needs.
type Store interface {
	FindByID(ctx context.Context, id models.CredentialID) (*models.Credential, error)
	FindByKey(ctx context.Context, key models.NaturalKey) (*models.Credential, error)
	Save(ctx context.Context, c *models.Credential) error
	UpsertGenerating(ctx context.Context, candidate *models.Credential) (*models.Credential, error)
	CredentialedLearners(ctx context.Context, resourceID, credentialType string, candidates []models.LearnerID) ([]models.LearnerID, error)
}

type Ledger struct {
	store        Store
	notifier     ports.Notifier
	platformName string
	strict       bool
	now          func() time.Time
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

type Option func(*Ledger)

// WithNotifier sets who is told when a credential becomes available.
func WithNotifier(n ports.Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

func WithPlatformName(name string) Option {
	return func(l *Ledger) { l.platformName = name }
}

// WithStrictUpsert makes BeginGeneration a single atomic insert-or-update by
// natural key instead of find-then-save.
func WithStrictUpsert(strict bool) Option {
	return func(l *Ledger) { l.strict = strict }
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FilterAlreadyCredentialed drops candidates holding a record in any status
// other than ERROR for the resource and type. Candidate order is kept.
func (l *Ledger) FilterAlreadyCredentialed(ctx context.Context, resourceID, credentialType string, candidates []models.LearnerID) ([]models.LearnerID, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	held, err := l.store.CredentialedLearners(ctx, resourceID, credentialType, candidates)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load existing credentials")
	}
	skip := make(map[models.LearnerID]struct{}, len(held))
	for _, id := range held {
		skip[id] = struct{}{}
	}
	remaining := make([]models.LearnerID, 0, len(candidates))
	for _, id := range candidates {
		if _, ok := skip[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	return remaining, nil
}

// BeginGeneration puts the learner's record for the resource and type into
// GENERATING. An existing record of any status is reused with its id; a new
// record gets a freshly minted id.
func (l *Ledger) BeginGeneration(ctx context.Context, resource models.Resource, credentialType string, learner models.Learner, taskRef string) (*models.Credential, error) {
	now := l.now()
	if l.strict {
		candidate := newRecord(resource, credentialType, learner, taskRef, now)
		record, err := l.store.UpsertGenerating(ctx, candidate)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to start credential generation")
		}
		return record, nil
	}

	key := models.NaturalKey{LearnerID: learner.ID, ResourceID: resource.ID, CredentialType: credentialType}
	record, err := l.store.FindByKey(ctx, key)
	switch {
	case err == nil:
		record.Restart(learner.DisplayName(), taskRef, now)
	case errors.Is(err, sentinel.ErrNotFound):
		record = newRecord(resource, credentialType, learner, taskRef, now)
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credential")
	}
	if err := l.store.Save(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to start credential generation")
	}
	return record, nil
}

func newRecord(resource models.Resource, credentialType string, learner models.Learner, taskRef string, now time.Time) *models.Credential {
	record := &models.Credential{
		ID:             models.NewCredentialID(),
		LearnerID:      learner.ID,
		Resource:       resource,
		CredentialType: credentialType,
		CreatedAt:      now,
	}
	record.Restart(learner.DisplayName(), taskRef, now)
	return record
}

// CompleteGeneration records the artifact URL and marks the record AVAILABLE.
// Learners with an active account and a usable password are then notified.
// A failed notification is logged; the credential stays available.
func (l *Ledger) CompleteGeneration(ctx context.Context, c *models.Credential, url string, learner models.Learner, resourceName string) error {
	if err := c.Complete(url, l.now()); err != nil {
		return err
	}
	if err := l.store.Save(ctx, c); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record generated credential")
	}
	if l.notifier == nil || !learner.Notifiable() {
		return nil
	}
	n := models.NewGeneratedNotification(learner, url, resourceName, l.platformName)
	if err := l.notifier.Notify(ctx, n); err != nil {
		if l.metrics != nil {
			l.metrics.IncrementNotificationFailure()
		}
		l.logger.ErrorContext(ctx, "failed to send credential notification",
			"credential_id", c.ID.String(),
			"learner_id", int64(learner.ID),
			"error", err,
		)
	}
	return nil
}

// FailGeneration marks the record ERROR, persists it and hands cause back to
// the caller. A persistence failure is joined to cause. The write outlives
// cancellation of ctx so the record never stays GENERATING.
func (l *Ledger) FailGeneration(ctx context.Context, c *models.Credential, cause error) error {
	c.Fail(l.now())
	if err := l.store.Save(context.WithoutCancel(ctx), c); err != nil {
		l.logger.ErrorContext(ctx, "failed to record credential failure",
			"credential_id", c.ID.String(),
			"error", err,
		)
		return errors.Join(cause, err)
	}
	return cause
}

// Invalidate revokes a credential. The record keeps suppressing generation
// until an operator forces a new one.
func (l *Ledger) Invalidate(ctx context.Context, id models.CredentialID, reason string) (*models.Credential, error) {
	record, err := l.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Invalidate(reason, l.now())
	if err := l.store.Save(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to invalidate credential")
	}
	return record, nil
}

// Find returns a record by id, translating a missing record to CodeNotFound.
func (l *Ledger) Find(ctx context.Context, id models.CredentialID) (*models.Credential, error) {
	record, err := l.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "credential not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credential")
	}
	return record, nil
}
