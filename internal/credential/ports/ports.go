// Package ports declares the host platform collaborators the credential
// pipeline consumes. Adapters (HTTP client, in-memory fakes, mocks) implement them.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"coursecred/internal/credential/models"
)

// GradingPolicySource returns the weighted grading categories of a resource.
type GradingPolicySource interface {
	GradingPolicy(ctx context.Context, resourceID string) ([]models.CategoryWeight, error)
}

// EnrollmentSource lists learners actively enrolled in a resource.
type EnrollmentSource interface {
	ActiveEnrollees(ctx context.Context, resourceID string) ([]models.Learner, error)
}

// GradeSource returns graded subsection totals per learner. A category absent
// from a learner's scores means the learner never attempted it.
type GradeSource interface {
	SubsectionScores(ctx context.Context, resourceID string, learners []models.Learner) (map[models.LearnerID][]models.SubsectionScore, error)
}

// CompletionSource pages through completion aggregates. Pages are 1-based.
type CompletionSource interface {
	CompletionPage(ctx context.Context, resourceID string, pageSize, page int) (*models.CompletionPage, error)
}

// LearnerDirectory resolves learners by id or username.
type LearnerDirectory interface {
	Learner(ctx context.Context, id models.LearnerID) (*models.Learner, error)
	IDsByUsernames(ctx context.Context, usernames []string) ([]models.LearnerID, error)
}

// CourseCatalog looks up course display names.
type CourseCatalog interface {
	CourseTitle(ctx context.Context, courseID string) (string, error)
}

// LearningPathCatalog looks up learning path display names. It is optional:
// hosts without learning paths leave it unset.
type LearningPathCatalog interface {
	LearningPathTitle(ctx context.Context, pathID string) (string, error)
}

// AssetResolver loads renderer assets by slug. Unknown slugs fail with a
// CodeAssetNotFound domain error.
type AssetResolver interface {
	AssetBySlug(ctx context.Context, slug string) (*models.Asset, error)
}

// Notifier delivers the generation message to a learner.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}
