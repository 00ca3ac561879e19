package handler

import (
	"time"

	"coursecred/internal/credential/models"
)

type ConfigurationResponse struct {
	ID             string         `json:"id"`
	ResourceID     string         `json:"resource_id"`
	ResourceType   string         `json:"resource_type"`
	CredentialType string         `json:"credential_type"`
	CustomOptions  models.Options `json:"custom_options"`
	Enabled        bool           `json:"enabled"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func toConfigurationResponse(c *models.Configuration) ConfigurationResponse {
	opts := c.CustomOptions
	if opts == nil {
		opts = models.Options{}
	}
	return ConfigurationResponse{
		ID:             c.ID.String(),
		ResourceID:     c.Resource.ID,
		ResourceType:   string(c.Resource.Type),
		CredentialType: c.CredentialType,
		CustomOptions:  opts,
		Enabled:        c.Enabled,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type ConfigurationListResponse struct {
	Configurations []ConfigurationResponse `json:"configurations"`
}

type CredentialTypeListResponse struct {
	CredentialTypes []models.CredentialType `json:"credential_types"`
}

type GenerateResponse struct {
	TaskID string `json:"task_id,omitempty"`
	Status string `json:"status"`
}

type RunResponse struct {
	ConfigurationID string             `json:"configuration_id"`
	LearnerIDs      []models.LearnerID `json:"learner_ids"`
}

type AssetResponse struct {
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAssetResponse(a *models.Asset) AssetResponse {
	return AssetResponse{
		Slug:        a.Slug,
		Description: a.Description,
		ContentType: a.ContentType,
		Size:        len(a.Data),
		UpdatedAt:   a.UpdatedAt,
	}
}

type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
}
