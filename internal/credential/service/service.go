// Package service orchestrates credential generation: it evaluates
// eligibility, skips learners already holding a credential, renders through
// the configured generation strategy and records the outcome in the ledger.
// It also owns the configuration lifecycle and the read APIs.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ConfigurationStore,CredentialReader,Ledger,ScheduleProvisioner,TaskSubmitter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coursecred/internal/credential/metrics"
	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports"
	"coursecred/internal/credential/strategy"
	"coursecred/internal/platform/tracer"
	"coursecred/internal/platform/workqueue"
	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/platform/keylock"
	"coursecred/pkg/platform/sentinel"
)

// Task names handled by RegisterTasks.
const (
	TaskGenerateForConfiguration = "generate_for_configuration"
	TaskGenerateForLearner       = "generate_for_learner"
	TaskGenerateForAll           = "generate_for_all"
)

// ConfigurationStore persists credential types and configurations.
type ConfigurationStore interface {
	SaveType(ctx context.Context, t *models.CredentialType) error
	FindType(ctx context.Context, name string) (*models.CredentialType, error)
	ListTypes(ctx context.Context) ([]models.CredentialType, error)
	Create(ctx context.Context, c *models.Configuration) error
	Update(ctx context.Context, c *models.Configuration) error
	Delete(ctx context.Context, id models.ConfigurationID) error
	FindByID(ctx context.Context, id models.ConfigurationID) (*models.Configuration, error)
	FindByResourceAndType(ctx context.Context, resourceID, credentialType string) (*models.Configuration, error)
	ListByResource(ctx context.Context, resourceID string) ([]models.Configuration, error)
	ListEnabled(ctx context.Context) ([]models.Configuration, error)
}

// CredentialReader serves the learner facing credential listing.
type CredentialReader interface {
	ListByLearner(ctx context.Context, resourceID string, learnerID models.LearnerID) ([]models.Credential, error)
}

// Ledger is the credential state machine.
type Ledger interface {
	FilterAlreadyCredentialed(ctx context.Context, resourceID, credentialType string, candidates []models.LearnerID) ([]models.LearnerID, error)
	BeginGeneration(ctx context.Context, resource models.Resource, credentialType string, learner models.Learner, taskRef string) (*models.Credential, error)
	CompleteGeneration(ctx context.Context, c *models.Credential, url string, learner models.Learner, resourceName string) error
	FailGeneration(ctx context.Context, c *models.Credential, cause error) error
	Find(ctx context.Context, id models.CredentialID) (*models.Credential, error)
	Invalidate(ctx context.Context, id models.CredentialID, reason string) (*models.Credential, error)
}

// ScheduleProvisioner keeps the periodic unit of each configuration in sync.
type ScheduleProvisioner interface {
	Provision(ctx context.Context, c *models.Configuration) (*models.Schedule, error)
	Sync(ctx context.Context, c *models.Configuration) (*models.Schedule, error)
	Remove(ctx context.Context, id models.ConfigurationID) error
}

// TaskSubmitter hands units of work to the work queue.
type TaskSubmitter interface {
	Submit(ctx context.Context, t workqueue.Task) (string, error)
}

type Service struct {
	configurations ConfigurationStore
	credentials    CredentialReader
	ledger         Ledger
	registry       *strategy.Registry
	learners       ports.LearnerDirectory
	courses        ports.CourseCatalog
	learningPaths  ports.LearningPathCatalog
	schedules      ScheduleProvisioner
	submitter      TaskSubmitter
	runs           *keylock.Sharded
	tracer         tracer.Tracer
	metrics        *metrics.Metrics
	now            func() time.Time
	logger         *slog.Logger
}

type Option func(*Service)

// WithSubmitter makes generation asynchronous. Without a submitter every
// unit of work runs inline on the caller's goroutine.
func WithSubmitter(s TaskSubmitter) Option {
	return func(svc *Service) { svc.submitter = s }
}

func WithSchedules(p ScheduleProvisioner) Option {
	return func(svc *Service) { svc.schedules = p }
}

func WithLearningPaths(c ports.LearningPathCatalog) Option {
	return func(svc *Service) { svc.learningPaths = c }
}

func WithTracer(t tracer.Tracer) Option {
	return func(svc *Service) { svc.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(svc *Service) { svc.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(svc *Service) { svc.logger = logger }
}

func New(
	configurations ConfigurationStore,
	credentials CredentialReader,
	ledger Ledger,
	registry *strategy.Registry,
	learners ports.LearnerDirectory,
	courses ports.CourseCatalog,
	opts ...Option,
) (*Service, error) {
	if configurations == nil || credentials == nil || ledger == nil || registry == nil {
		return nil, errors.New("configuration store, credential reader, ledger and registry are required")
	}
	if learners == nil || courses == nil {
		return nil, errors.New("learner directory and course catalog are required")
	}
	svc := &Service{
		configurations: configurations,
		credentials:    credentials,
		ledger:         ledger,
		registry:       registry,
		learners:       learners,
		courses:        courses,
		runs:           keylock.New(),
		tracer:         tracer.NewNoop(),
		now:            time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// loadConfiguration returns a configuration with its credential type.
func (s *Service) loadConfiguration(ctx context.Context, id models.ConfigurationID) (*models.Configuration, *models.CredentialType, error) {
	c, err := s.configurations.FindByID(ctx, id)
	if err != nil {
		return nil, nil, translate(err, "configuration not found", "failed to load configuration")
	}
	t, err := s.configurations.FindType(ctx, c.CredentialType)
	if err != nil {
		return nil, nil, translate(err, "credential type not found", "failed to load credential type")
	}
	return c, t, nil
}

// translate maps store sentinels to domain errors once, at the service edge.
func translate(err error, notFound, internal string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, notFound)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "resource already exists")
	case errors.Is(err, sentinel.ErrInvalidInput):
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid input")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internal)
	}
}

// resourceDisplayName is the name used in notifications: the course title
// (or its id when untitled) or the learning path title.
func (s *Service) resourceDisplayName(ctx context.Context, res models.Resource) string {
	switch res.Type {
	case models.ResourceTypeLearningPath:
		if s.learningPaths == nil {
			return ""
		}
		title, err := s.learningPaths.LearningPathTitle(ctx, res.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "learning path title unavailable", "resource_id", res.ID, "error", err)
			return ""
		}
		return title
	default:
		title, err := s.courses.CourseTitle(ctx, res.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "course title unavailable", "resource_id", res.ID, "error", err)
			return res.ID
		}
		if title == "" {
			return res.ID
		}
		return title
	}
}
