// Package seeder bootstraps credential types, configurations and renderer
// assets from a YAML file. Seeding is idempotent: existing entries are updated.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"coursecred/internal/credential/models"
)

// CredentialService is the part of the credential service the seeder drives.
type CredentialService interface {
	SaveCredentialType(ctx context.Context, t *models.CredentialType) (*models.CredentialType, error)
	ListConfigurations(ctx context.Context, resourceID string) ([]models.Configuration, error)
	CreateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error)
	UpdateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error)
}

type AssetStore interface {
	Save(ctx context.Context, a *models.Asset) error
}

// File is the YAML layout of a seed file.
type File struct {
	CredentialTypes []models.CredentialType `yaml:"credential_types"`
	Configurations  []ConfigurationSeed     `yaml:"configurations"`
	Assets          []AssetSeed             `yaml:"assets"`
}

type ConfigurationSeed struct {
	ResourceID     string         `yaml:"resource_id"`
	ResourceType   string         `yaml:"resource_type"`
	CredentialType string         `yaml:"credential_type"`
	CustomOptions  models.Options `yaml:"custom_options"`
	Enabled        bool           `yaml:"enabled"`
}

// AssetSeed points at a file on disk. Relative paths resolve against the
// directory of the seed file.
type AssetSeed struct {
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	ContentType string `yaml:"content_type"`
	Path        string `yaml:"path"`
}

// Seeder populates stores with bootstrap data.
type Seeder struct {
	credentials CredentialService
	assets      AssetStore
	logger      *slog.Logger
}

func New(credentials CredentialService, assets AssetStore, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{credentials: credentials, assets: assets, logger: logger}
}

// Load parses a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i := range f.Assets {
		if f.Assets[i].Path != "" && !filepath.IsAbs(f.Assets[i].Path) {
			f.Assets[i].Path = filepath.Join(base, f.Assets[i].Path)
		}
	}
	return &f, nil
}

// SeedFile loads path and seeds its contents.
func (s *Seeder) SeedFile(ctx context.Context, path string) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	return s.Seed(ctx, f)
}

// Seed applies types first, then assets, then configurations, since
// configurations reference both.
func (s *Seeder) Seed(ctx context.Context, f *File) error {
	s.logger.InfoContext(ctx, "seeding credential data...")

	for i := range f.CredentialTypes {
		t := f.CredentialTypes[i]
		if _, err := s.credentials.SaveCredentialType(ctx, &t); err != nil {
			return fmt.Errorf("failed to seed credential type %q: %w", t.Name, err)
		}
	}

	for _, a := range f.Assets {
		if err := s.seedAsset(ctx, a); err != nil {
			return fmt.Errorf("failed to seed asset %q: %w", a.Slug, err)
		}
	}

	for _, c := range f.Configurations {
		if err := s.seedConfiguration(ctx, c); err != nil {
			return fmt.Errorf("failed to seed configuration %s/%s: %w", c.ResourceID, c.CredentialType, err)
		}
	}

	s.logger.InfoContext(ctx, "credential data seeded successfully",
		"credential_types", len(f.CredentialTypes),
		"configurations", len(f.Configurations),
		"assets", len(f.Assets),
	)
	return nil
}

func (s *Seeder) seedAsset(ctx context.Context, a AssetSeed) error {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return err
	}
	return s.assets.Save(ctx, &models.Asset{
		Slug:        a.Slug,
		Description: a.Description,
		ContentType: a.ContentType,
		Data:        data,
	})
}

func (s *Seeder) seedConfiguration(ctx context.Context, seed ConfigurationSeed) error {
	resourceType, err := models.ParseResourceType(seed.ResourceType)
	if err != nil {
		return err
	}
	existing, err := s.credentials.ListConfigurations(ctx, seed.ResourceID)
	if err != nil {
		return err
	}

	var current *models.Configuration
	for i := range existing {
		if existing[i].CredentialType == seed.CredentialType {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		current, err = s.credentials.CreateConfiguration(ctx, &models.Configuration{
			Resource:       models.Resource{ID: seed.ResourceID, Type: resourceType},
			CredentialType: seed.CredentialType,
			CustomOptions:  seed.CustomOptions,
		})
		if err != nil {
			return err
		}
		// Configurations are created disabled; enable in a second step.
		if !seed.Enabled {
			return nil
		}
	}

	current.Resource.Type = resourceType
	current.CustomOptions = seed.CustomOptions
	current.Enabled = seed.Enabled
	_, err = s.credentials.UpdateConfiguration(ctx, current)
	return err
}
