package handler

import (
	"strings"

	"coursecred/internal/credential/models"
	"coursecred/pkg/validation"
)

// HTTP request DTOs. They are converted to domain values before reaching
// the service.

type CredentialTypeRequest struct {
	Name           string         `json:"name" validate:"notblank,max=255"`
	RetrievalFunc  string         `json:"retrieval_func" validate:"notblank"`
	GenerationFunc string         `json:"generation_func" validate:"notblank"`
	CustomOptions  models.Options `json:"custom_options"`
}

func (r *CredentialTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.RetrievalFunc = strings.TrimSpace(r.RetrievalFunc)
	r.GenerationFunc = strings.TrimSpace(r.GenerationFunc)
}

func (r *CredentialTypeRequest) Validate() error {
	return validation.Validate(r)
}

func (r *CredentialTypeRequest) toModel() *models.CredentialType {
	return &models.CredentialType{
		Name:           r.Name,
		RetrievalFunc:  r.RetrievalFunc,
		GenerationFunc: r.GenerationFunc,
		CustomOptions:  r.CustomOptions,
	}
}

type ConfigurationRequest struct {
	ResourceID     string         `json:"resource_id" validate:"notblank,max=255"`
	ResourceType   string         `json:"resource_type" validate:"omitempty,oneof=course learning_path"`
	CredentialType string         `json:"credential_type" validate:"notblank"`
	CustomOptions  models.Options `json:"custom_options"`
	Enabled        bool           `json:"enabled"`
}

func (r *ConfigurationRequest) Normalize() {
	r.ResourceID = strings.TrimSpace(r.ResourceID)
	r.ResourceType = strings.TrimSpace(r.ResourceType)
	r.CredentialType = strings.TrimSpace(r.CredentialType)
	if r.ResourceType == "" {
		r.ResourceType = string(models.ResourceTypeCourse)
	}
}

func (r *ConfigurationRequest) Validate() error {
	return validation.Validate(r)
}

func (r *ConfigurationRequest) toModel(id models.ConfigurationID) *models.Configuration {
	return &models.Configuration{
		ID:             id,
		Resource:       models.Resource{ID: r.ResourceID, Type: models.ResourceType(r.ResourceType)},
		CredentialType: r.CredentialType,
		CustomOptions:  r.CustomOptions,
		Enabled:        r.Enabled,
	}
}

type GenerateRequest struct {
	CredentialType string `json:"credential_type" validate:"notblank"`
	LearnerID      int64  `json:"learner_id" validate:"required,gt=0"`
	Force          bool   `json:"force"`
}

func (r *GenerateRequest) Normalize() {
	r.CredentialType = strings.TrimSpace(r.CredentialType)
}

func (r *GenerateRequest) Validate() error {
	return validation.Validate(r)
}

type LearnerGenerateRequest struct {
	CredentialType string `json:"credential_type" validate:"notblank"`
}

func (r *LearnerGenerateRequest) Normalize() {
	r.CredentialType = strings.TrimSpace(r.CredentialType)
}

func (r *LearnerGenerateRequest) Validate() error {
	return validation.Validate(r)
}

type InvalidateRequest struct {
	Reason string `json:"reason" validate:"notblank,max=1000"`
}

func (r *InvalidateRequest) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *InvalidateRequest) Validate() error {
	return validation.Validate(r)
}
