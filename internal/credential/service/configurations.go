package service

import (
	"context"
	"errors"
	"strings"

	"coursecred/internal/credential/models"
	dErrors "coursecred/pkg/domain-errors"
)

// SaveCredentialType creates or replaces a credential type after checking
// that both of its strategies resolve.
func (s *Service) SaveCredentialType(ctx context.Context, t *models.CredentialType) (*models.CredentialType, error) {
	if t == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "credential type is required")
	}
	t.Name = strings.TrimSpace(t.Name)
	if err := s.registry.ValidateType(t); err != nil {
		return nil, err
	}
	now := s.now()
	if existing, err := s.configurations.FindType(ctx, t.Name); err == nil {
		t.CreatedAt = existing.CreatedAt
	} else {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if err := s.configurations.SaveType(ctx, t); err != nil {
		return nil, translate(err, "credential type not found", "failed to save credential type")
	}
	return t, nil
}

func (s *Service) ListCredentialTypes(ctx context.Context) ([]models.CredentialType, error) {
	types, err := s.configurations.ListTypes(ctx)
	if err != nil {
		return nil, translate(err, "credential type not found", "failed to list credential types")
	}
	return types, nil
}

// CreateConfiguration validates and stores a configuration and provisions
// its periodic unit. Configurations start disabled. A failed provisioning
// rolls the configuration back.
func (s *Service) CreateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error) {
	if c == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "configuration is required")
	}
	if c.Resource.Type == "" {
		c.Resource.Type = models.ResourceTypeCourse
	}
	if strings.TrimSpace(c.Resource.ID) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "resource id is required")
	}
	t, err := s.configurations.FindType(ctx, c.CredentialType)
	if err != nil {
		return nil, translate(err, "credential type not found", "failed to load credential type")
	}
	if err := s.registry.ValidateConfiguration(t, c); err != nil {
		return nil, err
	}

	now := s.now()
	if c.ID == (models.ConfigurationID{}) {
		c.ID = models.NewConfigurationID()
	}
	c.Enabled = false
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.configurations.Create(ctx, c); err != nil {
		return nil, translate(err, "credential type not found", "failed to create configuration")
	}

	if s.schedules != nil {
		if _, err := s.schedules.Provision(ctx, c); err != nil {
			if rbErr := s.configurations.Delete(ctx, c.ID); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to provision configuration schedule")
		}
	}
	s.logger.InfoContext(ctx, "configuration created",
		"configuration_id", c.ID.String(),
		"resource_id", c.Resource.ID,
		"credential_type", c.CredentialType,
	)
	return c, nil
}

// UpdateConfiguration replaces a configuration's options and enabled flag
// and keeps its periodic unit in sync.
func (s *Service) UpdateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error) {
	if c == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "configuration is required")
	}
	existing, err := s.configurations.FindByID(ctx, c.ID)
	if err != nil {
		return nil, translate(err, "configuration not found", "failed to load configuration")
	}
	if c.Resource.Type == "" {
		c.Resource.Type = models.ResourceTypeCourse
	}
	t, err := s.configurations.FindType(ctx, c.CredentialType)
	if err != nil {
		return nil, translate(err, "credential type not found", "failed to load credential type")
	}
	if err := s.registry.ValidateConfiguration(t, c); err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.now()
	if err := s.configurations.Update(ctx, c); err != nil {
		return nil, translate(err, "configuration not found", "failed to update configuration")
	}
	if s.schedules != nil {
		if _, err := s.schedules.Sync(ctx, c); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sync configuration schedule")
		}
	}
	return c, nil
}

// DeleteConfiguration removes a configuration with its periodic unit.
// Credentials already issued under it are kept.
func (s *Service) DeleteConfiguration(ctx context.Context, id models.ConfigurationID) error {
	if err := s.configurations.Delete(ctx, id); err != nil {
		return translate(err, "configuration not found", "failed to delete configuration")
	}
	if s.schedules != nil {
		if err := s.schedules.Remove(ctx, id); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove configuration schedule")
		}
	}
	return nil
}

func (s *Service) GetConfiguration(ctx context.Context, id models.ConfigurationID) (*models.Configuration, error) {
	c, err := s.configurations.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "configuration not found", "failed to load configuration")
	}
	return c, nil
}

func (s *Service) ListConfigurations(ctx context.Context, resourceID string) ([]models.Configuration, error) {
	configs, err := s.configurations.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, translate(err, "resource not found", "failed to list configurations")
	}
	return configs, nil
}
