package seeder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"coursecred/internal/credential/models"
)

type fakeService struct {
	types   map[string]models.CredentialType
	configs []models.Configuration
	creates int
	updates int
}

func newFakeService() *fakeService {
	return &fakeService{types: map[string]models.CredentialType{}}
}

func (f *fakeService) SaveCredentialType(_ context.Context, t *models.CredentialType) (*models.CredentialType, error) {
	f.types[t.Name] = *t
	return t, nil
}

func (f *fakeService) ListConfigurations(_ context.Context, resourceID string) ([]models.Configuration, error) {
	var out []models.Configuration
	for _, c := range f.configs {
		if c.Resource.ID == resourceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeService) CreateConfiguration(_ context.Context, c *models.Configuration) (*models.Configuration, error) {
	f.creates++
	created := *c
	created.ID = models.ConfigurationID(uuid.New())
	created.Enabled = false
	f.configs = append(f.configs, created)
	return &created, nil
}

func (f *fakeService) UpdateConfiguration(_ context.Context, c *models.Configuration) (*models.Configuration, error) {
	f.updates++
	for i := range f.configs {
		if f.configs[i].ID == c.ID {
			f.configs[i] = *c
		}
	}
	return c, nil
}

type fakeAssets struct {
	saved map[string]models.Asset
}

func (f *fakeAssets) Save(_ context.Context, a *models.Asset) error {
	f.saved[a.Slug] = *a
	return nil
}

type SeederSuite struct {
	suite.Suite
	service *fakeService
	assets  *fakeAssets
	seeder  *Seeder
	path    string
}

func TestSeederSuite(t *testing.T) {
	suite.Run(t, new(SeederSuite))
}

const seedYAML = `
credential_types:
  - name: completion
    retrieval_func: completion
    generation_func: pdf_default
    custom_options:
      required_completion: 0.9
configurations:
  - resource_id: course-v1:OpenedX+DemoX+Demo
    credential_type: completion
    enabled: true
    custom_options:
      template: demo-template
  - resource_id: path-1
    resource_type: learning_path
    credential_type: completion
assets:
  - slug: demo-template
    description: Demo certificate
    content_type: application/pdf
    path: template.pdf
`

func (s *SeederSuite) SetupTest() {
	s.service = newFakeService()
	s.assets = &fakeAssets{saved: map[string]models.Asset{}}
	s.seeder = New(s.service, s.assets, nil)

	dir := s.T().TempDir()
	s.path = filepath.Join(dir, "seed.yaml")
	s.Require().NoError(os.WriteFile(s.path, []byte(seedYAML), 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "template.pdf"), []byte("%PDF-1.7"), 0o600))
}

func (s *SeederSuite) TestLoadResolvesAssetPaths() {
	f, err := Load(s.path)
	s.Require().NoError(err)
	s.Require().Len(f.Assets, 1)
	s.Equal(filepath.Join(filepath.Dir(s.path), "template.pdf"), f.Assets[0].Path)
	s.Require().Len(f.CredentialTypes, 1)
	s.InDelta(0.9, f.CredentialTypes[0].CustomOptions["required_completion"], 1e-9)
}

func (s *SeederSuite) TestSeedFile() {
	s.Require().NoError(s.seeder.SeedFile(context.Background(), s.path))

	s.Contains(s.service.types, "completion")
	s.Equal([]byte("%PDF-1.7"), s.assets.saved["demo-template"].Data)
	s.Require().Len(s.service.configs, 2)

	course := s.service.configs[0]
	s.True(course.Enabled)
	s.Equal(models.ResourceTypeCourse, course.Resource.Type)
	s.Equal("demo-template", course.CustomOptions["template"])

	path := s.service.configs[1]
	s.False(path.Enabled)
	s.Equal(models.ResourceTypeLearningPath, path.Resource.Type)
	s.Equal(2, s.service.creates)
	s.Equal(1, s.service.updates)
}

func (s *SeederSuite) TestSeedIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.seeder.SeedFile(ctx, s.path))
	s.Require().NoError(s.seeder.SeedFile(ctx, s.path))

	s.Len(s.service.configs, 2)
	s.Equal(2, s.service.creates)
}

func (s *SeederSuite) TestSeedErrors() {
	s.T().Run("missing file", func(t *testing.T) {
		s.Error(s.seeder.SeedFile(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")))
	})
	s.T().Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		s.Require().NoError(os.WriteFile(path, []byte("credential_types: {"), 0o600))
		s.Error(s.seeder.SeedFile(context.Background(), path))
	})
	s.T().Run("missing asset file", func(t *testing.T) {
		err := s.seeder.Seed(context.Background(), &File{Assets: []AssetSeed{{Slug: "x", Path: "/does/not/exist"}}})
		s.ErrorContains(err, `asset "x"`)
	})
	s.T().Run("unknown resource type", func(t *testing.T) {
		err := s.seeder.Seed(context.Background(), &File{Configurations: []ConfigurationSeed{{ResourceID: "p", ResourceType: "program"}}})
		s.Error(err)
	})
}
