package testutil

import (
	"time"

	"github.com/google/uuid"

	"coursecred/internal/credential/models"
	"coursecred/internal/credential/strategy"
)

// TestIDs provides pre-generated ids for deterministic test data.
var TestIDs = struct {
	ConfigurationID1 models.ConfigurationID
	ConfigurationID2 models.ConfigurationID
	CredentialID1    models.CredentialID
	CredentialID2    models.CredentialID
	LearnerID1       models.LearnerID
	LearnerID2       models.LearnerID
	CourseID         string
	LearningPathID   string
}{
	ConfigurationID1: models.ConfigurationID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000001")),
	ConfigurationID2: models.ConfigurationID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000002")),
	CredentialID1:    models.CredentialID(uuid.MustParse("cccc0000-0000-0000-0000-000000000001")),
	CredentialID2:    models.CredentialID(uuid.MustParse("cccc0000-0000-0000-0000-000000000002")),
	LearnerID1:       101,
	LearnerID2:       102,
	CourseID:         "course-v1:OpenedX+DemoX+Demo",
	LearningPathID:   "path-v1:OpenedX+DemoPath",
}

// CredentialTypeBuilder provides a fluent interface for building credential types.
type CredentialTypeBuilder struct {
	t *models.CredentialType
}

// NewCredentialTypeBuilder defaults to a completion type rendered as a PDF.
func NewCredentialTypeBuilder() *CredentialTypeBuilder {
	now := time.Now()
	return &CredentialTypeBuilder{
		t: &models.CredentialType{
			Name:           "completion",
			RetrievalFunc:  strategy.RetrieveCourseCompletions,
			GenerationFunc: strategy.GeneratePDFCredential,
			CustomOptions:  models.Options{"required_completion": 0.9},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func (b *CredentialTypeBuilder) WithName(name string) *CredentialTypeBuilder {
	b.t.Name = name
	return b
}

func (b *CredentialTypeBuilder) WithStrategies(retrieval, generation string) *CredentialTypeBuilder {
	b.t.RetrievalFunc = retrieval
	b.t.GenerationFunc = generation
	return b
}

func (b *CredentialTypeBuilder) WithOptions(opts models.Options) *CredentialTypeBuilder {
	b.t.CustomOptions = opts
	return b
}

func (b *CredentialTypeBuilder) Build() *models.CredentialType {
	return b.t
}

// ConfigurationBuilder provides a fluent interface for building configurations.
type ConfigurationBuilder struct {
	c *models.Configuration
}

// NewConfigurationBuilder defaults to an enabled completion configuration of the demo course.
func NewConfigurationBuilder() *ConfigurationBuilder {
	now := time.Now()
	return &ConfigurationBuilder{
		c: &models.Configuration{
			ID:             models.NewConfigurationID(),
			Resource:       models.Resource{ID: TestIDs.CourseID, Type: models.ResourceTypeCourse},
			CredentialType: "completion",
			CustomOptions:  models.Options{},
			Enabled:        true,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func (b *ConfigurationBuilder) WithID(id models.ConfigurationID) *ConfigurationBuilder {
	b.c.ID = id
	return b
}

func (b *ConfigurationBuilder) WithResource(id string, kind models.ResourceType) *ConfigurationBuilder {
	b.c.Resource = models.Resource{ID: id, Type: kind}
	return b
}

func (b *ConfigurationBuilder) WithCredentialType(name string) *ConfigurationBuilder {
	b.c.CredentialType = name
	return b
}

func (b *ConfigurationBuilder) WithOptions(opts models.Options) *ConfigurationBuilder {
	b.c.CustomOptions = opts
	return b
}

func (b *ConfigurationBuilder) Disabled() *ConfigurationBuilder {
	b.c.Enabled = false
	return b
}

func (b *ConfigurationBuilder) Build() *models.Configuration {
	return b.c
}

// CredentialBuilder provides a fluent interface for building credential records.
type CredentialBuilder struct {
	c *models.Credential
}

// NewCredentialBuilder defaults to an AVAILABLE completion credential of LearnerID1.
func NewCredentialBuilder() *CredentialBuilder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &CredentialBuilder{
		c: &models.Credential{
			ID:                 models.NewCredentialID(),
			LearnerID:          TestIDs.LearnerID1,
			LearnerDisplayName: "Ada Lovelace",
			Resource:           models.Resource{ID: TestIDs.CourseID, Type: models.ResourceTypeCourse},
			CredentialType:     "completion",
			Status:             models.StatusAvailable,
			DownloadURL:        "https://media.example.com/credentials/demo.pdf",
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}
}

func (b *CredentialBuilder) WithID(id models.CredentialID) *CredentialBuilder {
	b.c.ID = id
	return b
}

func (b *CredentialBuilder) ForLearner(id models.LearnerID) *CredentialBuilder {
	b.c.LearnerID = id
	return b
}

func (b *CredentialBuilder) ForResource(id, credentialType string) *CredentialBuilder {
	b.c.Resource.ID = id
	b.c.CredentialType = credentialType
	return b
}

func (b *CredentialBuilder) WithStatus(status models.Status) *CredentialBuilder {
	b.c.Status = status
	if status != models.StatusAvailable {
		b.c.DownloadURL = ""
	}
	return b
}

func (b *CredentialBuilder) Build() *models.Credential {
	return b.c
}
