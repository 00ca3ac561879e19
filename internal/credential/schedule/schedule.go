// Package schedule keeps one periodic unit of work per credential
// configuration and fires due units into the work queue.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

const (
	// DefaultInterval is how often an enabled configuration is regenerated.
	DefaultInterval = 10 * 24 * time.Hour

	TaskGenerateForConfiguration = "generate_for_configuration"
)

// Store persists schedules keyed by configuration id.
type Store interface {
	Save(ctx context.Context, s *models.Schedule) error
	FindByConfiguration(ctx context.Context, id models.ConfigurationID) (*models.Schedule, error)
	Delete(ctx context.Context, id models.ConfigurationID) error
	List(ctx context.Context) ([]models.Schedule, error)
	MarkRun(ctx context.Context, id models.ConfigurationID, at time.Time) error
}

// Name is the display name of a configuration's periodic unit.
func Name(c *models.Configuration) string {
	return fmt.Sprintf("%s in %s", c.CredentialType, c.Resource.ID)
}

// Provisioner creates, syncs and removes the periodic unit of a configuration.
type Provisioner struct {
	store    Store
	interval time.Duration
}

func NewProvisioner(store Store) *Provisioner {
	return &Provisioner{store: store, interval: DefaultInterval}
}

// Provision creates the unit for a new configuration. It starts disabled.
func (p *Provisioner) Provision(ctx context.Context, c *models.Configuration) (*models.Schedule, error) {
	s := &models.Schedule{
		Name:            Name(c),
		ConfigurationID: c.ID,
		Task:            TaskGenerateForConfiguration,
		Args:            []string{c.ID.String()},
		Interval:        p.interval,
		Enabled:         false,
	}
	if err := p.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("provision schedule: %w", err)
	}
	return s, nil
}

// Sync rewrites the unit's target and arguments on every configuration save
// and mirrors the enabled flag. A missing unit is recreated.
func (p *Provisioner) Sync(ctx context.Context, c *models.Configuration) (*models.Schedule, error) {
	s, err := p.store.FindByConfiguration(ctx, c.ID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, fmt.Errorf("load schedule: %w", err)
		}
		s = &models.Schedule{ConfigurationID: c.ID, Name: Name(c), Interval: p.interval}
	}
	s.Task = TaskGenerateForConfiguration
	s.Args = []string{c.ID.String()}
	s.Enabled = c.Enabled
	if err := p.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("sync schedule: %w", err)
	}
	return s, nil
}

// Remove deletes the unit together with its configuration.
func (p *Provisioner) Remove(ctx context.Context, id models.ConfigurationID) error {
	if err := p.store.Delete(ctx, id); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("remove schedule: %w", err)
	}
	return nil
}
