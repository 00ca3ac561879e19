package service

import (
	"context"
	"slices"

	"coursecred/internal/credential/models"
	"coursecred/internal/platform/tracer"
	"coursecred/internal/platform/workqueue"
	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/requestcontext"
)

// EligibleLearnersByType returns, per credential type configured on the
// resource, the eligible learners that hold no credential yet. With a learner
// id only that learner is evaluated and each list holds it at most once.
func (s *Service) EligibleLearnersByType(ctx context.Context, resourceID string, learnerID *models.LearnerID) (map[string][]models.LearnerID, error) {
	configs, err := s.configurations.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, translate(err, "resource not found", "failed to list configurations")
	}

	var only []models.LearnerID
	if learnerID != nil {
		only = []models.LearnerID{*learnerID}
	}

	result := make(map[string][]models.LearnerID, len(configs))
	for i := range configs {
		c := &configs[i]
		t, err := s.configurations.FindType(ctx, c.CredentialType)
		if err != nil {
			return nil, translate(err, "credential type not found", "failed to load credential type")
		}
		eligible, err := s.eligibleLearners(ctx, c, t, only)
		if err != nil {
			return nil, err
		}
		remaining, err := s.ledger.FilterAlreadyCredentialed(ctx, resourceID, t.Name, eligible)
		if err != nil {
			return nil, err
		}
		if learnerID != nil {
			if slices.Contains(remaining, *learnerID) {
				remaining = []models.LearnerID{*learnerID}
			} else {
				remaining = []models.LearnerID{}
			}
		}
		result[t.Name] = remaining
	}
	return result, nil
}

// LearnerCredentialsByType returns the learner's credentials on a resource
// keyed by credential type.
func (s *Service) LearnerCredentialsByType(ctx context.Context, resourceID string, learnerID models.LearnerID) (map[string]models.Summary, error) {
	records, err := s.credentials.ListByLearner(ctx, resourceID, learnerID)
	if err != nil {
		return nil, translate(err, "credential not found", "failed to list credentials")
	}
	result := make(map[string]models.Summary, len(records))
	for _, c := range records {
		result[c.CredentialType] = models.Summary{DownloadURL: c.DownloadURL, Status: c.Status}
	}
	return result, nil
}

// GenerateCredentialForLearner is the manual single learner entry point. It
// fails with not_eligible, and leaves every record untouched, unless force
// is set or the learner passes the configuration's retrieval strategy. The
// returned task id is empty when generation ran inline.
func (s *Service) GenerateCredentialForLearner(ctx context.Context, resourceID, credentialType string, learnerID models.LearnerID, force bool) (string, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanGenerateLearner,
		tracer.String(tracer.AttrResourceID, resourceID),
		tracer.String(tracer.AttrCredentialType, credentialType),
		tracer.Int64(tracer.AttrLearnerID, int64(learnerID)),
		tracer.Bool(tracer.AttrForced, force),
	)
	var err error
	defer func() { span.End(err) }()

	c, err := s.configurations.FindByResourceAndType(ctx, resourceID, credentialType)
	if err != nil {
		err = translate(err, "credential configuration not found", "failed to load configuration")
		return "", err
	}

	if !force {
		var t *models.CredentialType
		if t, err = s.configurations.FindType(ctx, c.CredentialType); err != nil {
			err = translate(err, "credential type not found", "failed to load credential type")
			return "", err
		}
		var eligible []models.LearnerID
		if eligible, err = s.eligibleLearners(ctx, c, t, []models.LearnerID{learnerID}); err != nil {
			return "", err
		}
		if !slices.Contains(eligible, learnerID) {
			s.logger.WarnContext(ctx, "learner is not eligible for credential",
				"learner_id", int64(learnerID),
				"resource_id", resourceID,
				"credential_type", credentialType,
			)
			err = dErrors.New(dErrors.CodeNotEligible, "learner is not eligible for the credential")
			return "", err
		}
	}

	if s.submitter == nil {
		err = s.GenerateForLearner(ctx, c.ID, learnerID, requestcontext.RequestID(ctx))
		return "", err
	}
	var taskID string
	taskID, err = s.submitter.Submit(ctx, workqueue.NewTask(TaskGenerateForLearner, c.ID.String(), learnerID.String()))
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to submit credential generation")
		return "", err
	}
	return taskID, nil
}

// CredentialMetadata returns the public view of a credential.
func (s *Service) CredentialMetadata(ctx context.Context, id models.CredentialID) (*models.Metadata, error) {
	c, err := s.ledger.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	md := c.Metadata()
	return &md, nil
}

// InvalidateCredential marks a credential INVALIDATED with reason.
func (s *Service) InvalidateCredential(ctx context.Context, id models.CredentialID, reason string) (*models.Metadata, error) {
	c, err := s.ledger.Invalidate(ctx, id, reason)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "credential invalidated", "credential_id", id.String())
	md := c.Metadata()
	return &md, nil
}
