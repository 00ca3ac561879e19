package service

import (
	"context"
	"fmt"
	"time"

	"coursecred/internal/credential/metrics"
	"coursecred/internal/credential/models"
	"coursecred/internal/credential/strategy"
	"coursecred/internal/platform/tracer"
	"coursecred/internal/platform/workqueue"
	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/requestcontext"
)

// eligibleLearners runs the configuration's retrieval strategy with the
// merged options. A non-empty only restricts evaluation to those learners.
func (s *Service) eligibleLearners(ctx context.Context, c *models.Configuration, t *models.CredentialType, only []models.LearnerID) (ids []models.LearnerID, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanEligibility,
		tracer.String(tracer.AttrResourceID, c.Resource.ID),
		tracer.String(tracer.AttrCredentialType, t.Name),
	)
	defer func() { span.End(err) }()

	retrieve, err := s.registry.Retrieval(t.RetrievalFunc)
	if err != nil {
		return nil, err
	}
	ids, err = retrieve(ctx, c.Resource, c.EffectiveOptions(t), only)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to evaluate eligibility")
	}
	span.SetAttributes(tracer.Int(tracer.AttrEligibleCount, len(ids)))
	return ids, nil
}

// GenerateForConfiguration evaluates eligibility for a configuration, drops
// learners already holding a credential and dispatches one unit of work per
// remaining learner. It returns the learners dispatched.
func (s *Service) GenerateForConfiguration(ctx context.Context, id models.ConfigurationID) ([]models.LearnerID, error) {
	return s.generateForConfiguration(ctx, id, s.submitter == nil)
}

// RunConfiguration is the manual administrative run: every learner is
// generated inline on the caller's goroutine and the run stops at the first
// failure.
func (s *Service) RunConfiguration(ctx context.Context, id models.ConfigurationID) ([]models.LearnerID, error) {
	return s.generateForConfiguration(ctx, id, true)
}

// Runs of the same configuration do not overlap within a process, so a
// scheduled run and a manual one evaluate one after the other.
func (s *Service) generateForConfiguration(ctx context.Context, id models.ConfigurationID, inline bool) (dispatched []models.LearnerID, err error) {
	s.runs.Lock(id.String())
	defer s.runs.Unlock(id.String())

	ctx, span := s.tracer.Start(ctx, tracer.SpanGenerateConfiguration,
		tracer.String(tracer.AttrConfigurationID, id.String()),
	)
	defer func() {
		span.End(err)
		if s.metrics != nil {
			outcome := metrics.OutcomeAvailable
			if err != nil {
				outcome = metrics.OutcomeError
			}
			s.metrics.IncrementConfigurationRun(outcome)
		}
	}()

	c, t, err := s.loadConfiguration(ctx, id)
	if err != nil {
		return nil, err
	}
	eligible, err := s.eligibleLearners(ctx, c, t, nil)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "eligible learners",
		"configuration_id", id.String(),
		"resource_id", c.Resource.ID,
		"credential_type", t.Name,
		"learner_ids", eligible,
	)

	remaining, err := s.ledger.FilterAlreadyCredentialed(ctx, c.Resource.ID, t.Name, eligible)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "eligible learners without a credential",
		"configuration_id", id.String(),
		"resource_id", c.Resource.ID,
		"learner_ids", remaining,
	)
	span.AddEvent(tracer.EventLedgerFiltered, tracer.Int(tracer.AttrRemainingCount, len(remaining)))
	if s.metrics != nil {
		s.metrics.AddEligible(t.Name, len(eligible), len(eligible)-len(remaining))
	}

	for i, learnerID := range remaining {
		if err := s.dispatchLearner(ctx, c.ID, learnerID, inline); err != nil {
			return remaining[:i], err
		}
	}
	if !inline {
		span.AddEvent(tracer.EventTaskSubmitted, tracer.Int(tracer.AttrRemainingCount, len(remaining)))
	}
	return remaining, nil
}

// dispatchLearner submits one learner's unit of work, or runs it inline.
func (s *Service) dispatchLearner(ctx context.Context, id models.ConfigurationID, learnerID models.LearnerID, inline bool) error {
	if inline {
		return s.GenerateForLearner(ctx, id, learnerID, requestcontext.TaskID(ctx))
	}
	taskID, err := s.submitter.Submit(ctx, workqueue.NewTask(TaskGenerateForLearner, id.String(), learnerID.String()))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to submit credential generation")
	}
	s.logger.InfoContext(ctx, "credential generation submitted",
		"configuration_id", id.String(),
		"learner_id", int64(learnerID),
		"task_id", taskID,
	)
	return nil
}

// GenerateForLearner renders and records one learner's credential for a
// configuration. Any failure after the ledger entered GENERATING leaves the
// record in ERROR and is returned tagged as a generation failure.
func (s *Service) GenerateForLearner(ctx context.Context, id models.ConfigurationID, learnerID models.LearnerID, taskRef string) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanGenerateLearner,
		tracer.String(tracer.AttrConfigurationID, id.String()),
		tracer.Int64(tracer.AttrLearnerID, int64(learnerID)),
	)
	defer func() { span.End(err) }()

	c, t, err := s.loadConfiguration(ctx, id)
	if err != nil {
		return err
	}
	learner, err := s.learners.Learner(ctx, learnerID)
	if err != nil {
		return translate(err, "learner not found", "failed to load learner")
	}

	record, err := s.ledger.BeginGeneration(ctx, c.Resource, t.Name, *learner, taskRef)
	if err != nil {
		return err
	}
	span.SetAttributes(tracer.String(tracer.AttrCredentialID, record.ID.String()))
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncrementStarted(t.Name)
	}

	url, genErr := s.render(ctx, t, strategy.GenerationRequest{
		Resource:     c.Resource,
		Learner:      *learner,
		CredentialID: record.ID,
		Options:      c.EffectiveOptions(t),
	})
	if genErr == nil {
		genErr = s.ledger.CompleteGeneration(ctx, record, url, *learner, s.resourceDisplayName(ctx, c.Resource))
	}
	if genErr != nil {
		s.observe(t.Name, metrics.OutcomeError, start)
		cause := s.ledger.FailGeneration(ctx, record, genErr)
		s.logger.ErrorContext(ctx, "credential generation failed",
			"credential_id", record.ID.String(),
			"learner_id", int64(learnerID),
			"configuration_id", id.String(),
			"error", cause,
		)
		return dErrors.Tag(cause, dErrors.CodeGenerationFailed, fmt.Sprintf(
			"failed to generate credential %s for learner %d with configuration %s: %v",
			record.ID, learnerID, id, cause))
	}

	s.observe(t.Name, metrics.OutcomeAvailable, start)
	s.logger.InfoContext(ctx, "credential generated",
		"credential_id", record.ID.String(),
		"learner_id", int64(learnerID),
		"configuration_id", id.String(),
	)
	return nil
}

func (s *Service) render(ctx context.Context, t *models.CredentialType, req strategy.GenerationRequest) (url string, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRender,
		tracer.String(tracer.AttrCredentialID, req.CredentialID.String()),
	)
	defer func() { span.End(err) }()

	generate, err := s.registry.Generation(t.GenerationFunc)
	if err != nil {
		return "", err
	}
	return generate(ctx, req)
}

func (s *Service) observe(credentialType, outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveFinished(credentialType, outcome, start)
	}
}

// GenerateForAllEnabled dispatches a configuration run for every enabled
// configuration. Runs are independent: inline failures are logged and the
// remaining configurations still run.
func (s *Service) GenerateForAllEnabled(ctx context.Context) (int, error) {
	enabled, err := s.configurations.ListEnabled(ctx)
	if err != nil {
		return 0, translate(err, "configuration not found", "failed to list enabled configurations")
	}
	for _, c := range enabled {
		if s.submitter == nil {
			if _, err := s.GenerateForConfiguration(ctx, c.ID); err != nil {
				s.logger.ErrorContext(ctx, "configuration run failed",
					"configuration_id", c.ID.String(),
					"error", err,
				)
			}
			continue
		}
		if _, err := s.submitter.Submit(ctx, workqueue.NewTask(TaskGenerateForConfiguration, c.ID.String())); err != nil {
			return 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to submit configuration run")
		}
	}
	return len(enabled), nil
}

// RegisterTasks binds the generation tasks to mux.
func (s *Service) RegisterTasks(mux *workqueue.Mux) {
	mux.Handle(TaskGenerateForConfiguration, func(ctx context.Context, t workqueue.Task) error {
		if len(t.Args) != 1 {
			return dErrors.New(dErrors.CodeInvalidInput, "generate_for_configuration takes one argument")
		}
		id, err := models.ParseConfigurationID(t.Args[0])
		if err != nil {
			return err
		}
		_, err = s.GenerateForConfiguration(requestcontext.WithTaskID(ctx, t.ID), id)
		return err
	})
	mux.Handle(TaskGenerateForLearner, func(ctx context.Context, t workqueue.Task) error {
		if len(t.Args) != 2 {
			return dErrors.New(dErrors.CodeInvalidInput, "generate_for_learner takes two arguments")
		}
		id, err := models.ParseConfigurationID(t.Args[0])
		if err != nil {
			return err
		}
		learnerID, err := models.ParseLearnerID(t.Args[1])
		if err != nil {
			return err
		}
		return s.GenerateForLearner(requestcontext.WithTaskID(ctx, t.ID), id, learnerID, t.ID)
	})
	mux.Handle(TaskGenerateForAll, func(ctx context.Context, t workqueue.Task) error {
		_, err := s.GenerateForAllEnabled(requestcontext.WithTaskID(ctx, t.ID))
		return err
	})
}
