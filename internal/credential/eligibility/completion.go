package eligibility

import (
	"context"
	"fmt"
	"log/slog"

	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports"
)

// CompletionPageSize is the page size requested from the completion source.
const CompletionPageSize = 1000

// CompletionStrategy selects learners whose completion meets a threshold.
type CompletionStrategy struct {
	completions ports.CompletionSource
	learners    ports.LearnerDirectory
	logger      *slog.Logger
}

func NewCompletionStrategy(completions ports.CompletionSource, learners ports.LearnerDirectory, logger *slog.Logger) *CompletionStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionStrategy{completions: completions, learners: learners, logger: logger}
}

// Retrieve pages sequentially through the completion source until it reports
// no next page, then resolves the matching usernames to learner ids.
func (s *CompletionStrategy) Retrieve(ctx context.Context, resource models.Resource, opts models.Options, only []models.LearnerID) ([]models.LearnerID, error) {
	criteria, err := models.DecodeCompletionCriteria(opts)
	if err != nil {
		return nil, err
	}

	var usernames []string
	for page := 1; ; page++ {
		result, err := s.completions.CompletionPage(ctx, resource.ID, CompletionPageSize, page)
		if err != nil {
			return nil, fmt.Errorf("fetch completion page %d of %s: %w", page, resource.ID, err)
		}
		if result == nil {
			break
		}
		for _, row := range result.Results {
			if row.Percent >= criteria.RequiredCompletion {
				usernames = append(usernames, row.Username)
			}
		}
		if !result.HasNextPage {
			break
		}
	}

	s.logger.DebugContext(ctx, "completions above threshold",
		"resource_id", resource.ID,
		"required_completion", criteria.RequiredCompletion,
		"count", len(usernames),
	)
	if len(usernames) == 0 {
		return nil, nil
	}

	ids, err := s.learners.IDsByUsernames(ctx, usernames)
	if err != nil {
		return nil, fmt.Errorf("resolve usernames of %s: %w", resource.ID, err)
	}
	return restrictIDs(ids, only), nil
}

func restrictIDs(ids, only []models.LearnerID) []models.LearnerID {
	if len(only) == 0 {
		return ids
	}
	keep := make(map[models.LearnerID]struct{}, len(only))
	for _, id := range only {
		keep[id] = struct{}{}
	}
	var out []models.LearnerID
	for _, id := range ids {
		if _, ok := keep[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
