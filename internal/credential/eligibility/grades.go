package eligibility

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports"
	dErrors "coursecred/pkg/domain-errors"
)

// TotalCategory is the reserved requirement key bounding the weighted sum.
const TotalCategory = "total"

// AggregateScores sums subsection totals per lower-cased category and
// converts them to percentages. A category with nothing possible scores 0.
func AggregateScores(scores []models.SubsectionScore) map[string]float64 {
	type sum struct{ earned, possible float64 }
	sums := make(map[string]*sum)
	for _, s := range scores {
		key := strings.ToLower(s.Category)
		acc, ok := sums[key]
		if !ok {
			acc = &sum{}
			sums[key] = acc
		}
		acc.earned += s.Earned
		acc.possible += s.Possible
	}

	grades := make(map[string]float64, len(sums))
	for category, acc := range sums {
		if acc.possible > 0 {
			grades[category] = acc.earned / acc.possible * 100
		} else {
			grades[category] = 0
		}
	}
	return grades
}

// WeightTable builds the lower-cased category to weight lookup of a grading policy.
func WeightTable(policy []models.CategoryWeight) map[string]float64 {
	weights := make(map[string]float64, len(policy))
	for _, p := range policy {
		weights[strings.ToLower(p.Category)] = p.Weight
	}
	return weights
}

// PassesGradeCriteria decides a single learner. grades and required are on
// the 0-100 scale; weights are fractions.
//
// Every required category except "total" must be attempted, every attempted
// category must meet its minimum (0 when unset), and the weighted sum must
// reach the "total" requirement. A graded category missing from weights is a
// configuration error.
func PassesGradeCriteria(grades, required, weights map[string]float64) (bool, error) {
	for category := range required {
		if category == TotalCategory {
			continue
		}
		if _, attempted := grades[category]; !attempted {
			return false, nil
		}
	}

	categories := slices.Sorted(maps.Keys(grades))
	for _, category := range categories {
		if _, ok := weights[category]; !ok {
			return false, dErrors.New(dErrors.CodeConfiguration,
				fmt.Sprintf("category weight %q was not found in the grading policy", category))
		}
	}

	var total float64
	for _, category := range categories {
		score := grades[category]
		if score < required[category] {
			return false, nil
		}
		total += score * weights[category]
	}

	return total >= required[TotalCategory], nil
}

// GradeStrategy selects learners whose weighted category grades meet the
// configured requirements.
type GradeStrategy struct {
	policy      ports.GradingPolicySource
	enrollments ports.EnrollmentSource
	grades      ports.GradeSource
	logger      *slog.Logger
}

// NewGradeStrategy wires the strategy to its grading collaborators.
func NewGradeStrategy(policy ports.GradingPolicySource, enrollments ports.EnrollmentSource, grades ports.GradeSource, logger *slog.Logger) *GradeStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &GradeStrategy{policy: policy, enrollments: enrollments, grades: grades, logger: logger}
}

// Retrieve returns the eligible learner ids in enrollment order. When only is
// non-empty, evaluation is restricted to those learners.
func (s *GradeStrategy) Retrieve(ctx context.Context, resource models.Resource, opts models.Options, only []models.LearnerID) ([]models.LearnerID, error) {
	criteria, err := models.DecodeGradeCriteria(opts)
	if err != nil {
		return nil, err
	}
	required := criteria.Percentages()

	learners, err := s.enrollments.ActiveEnrollees(ctx, resource.ID)
	if err != nil {
		return nil, fmt.Errorf("list enrollees of %s: %w", resource.ID, err)
	}
	learners = restrictLearners(learners, only)
	if len(learners) == 0 {
		return nil, nil
	}

	scores, err := s.grades.SubsectionScores(ctx, resource.ID, learners)
	if err != nil {
		return nil, fmt.Errorf("fetch grades of %s: %w", resource.ID, err)
	}
	policy, err := s.policy.GradingPolicy(ctx, resource.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch grading policy of %s: %w", resource.ID, err)
	}
	weights := WeightTable(policy)

	var eligible []models.LearnerID
	for _, learner := range learners {
		grades := AggregateScores(scores[learner.ID])
		s.logger.DebugContext(ctx, "learner grades",
			"resource_id", resource.ID,
			"learner_id", learner.ID,
			"grades", grades,
		)
		ok, err := PassesGradeCriteria(grades, required, weights)
		if err != nil {
			return nil, err
		}
		if ok {
			eligible = append(eligible, learner.ID)
		}
	}
	return eligible, nil
}

func restrictLearners(learners []models.Learner, only []models.LearnerID) []models.Learner {
	if len(only) == 0 {
		return learners
	}
	keep := make(map[models.LearnerID]struct{}, len(only))
	for _, id := range only {
		keep[id] = struct{}{}
	}
	out := learners[:0:0]
	for _, l := range learners {
		if _, ok := keep[l.ID]; ok {
			out = append(out, l)
		}
	}
	return out
}
