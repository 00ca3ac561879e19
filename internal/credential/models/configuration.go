package models

import (
	"maps"
	"time"
)

// Options is a free-form option mapping as stored on types and configurations.
type Options map[string]any

// CredentialType is a global credential definition: which strategy decides
// eligibility, which strategy renders, and the default options for both.
type CredentialType struct {
	Name           string    `json:"name" yaml:"name"`
	RetrievalFunc  string    `json:"retrieval_func" yaml:"retrieval_func"`
	GenerationFunc string    `json:"generation_func" yaml:"generation_func"`
	CustomOptions  Options   `json:"custom_options" yaml:"custom_options"`
	CreatedAt      time.Time `json:"created_at" yaml:"-"`
	UpdatedAt      time.Time `json:"updated_at" yaml:"-"`
}

// Configuration binds a credential type to a single resource.
type Configuration struct {
	ID             ConfigurationID `json:"id"`
	Resource       Resource        `json:"-"`
	CredentialType string          `json:"credential_type"`
	CustomOptions  Options         `json:"custom_options"`
	Enabled        bool            `json:"enabled"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MergeOptions overlays configuration overrides on the type defaults.
// Configuration keys win. Neither input is mutated.
func MergeOptions(defaults, overrides Options) Options {
	merged := make(Options, len(defaults)+len(overrides))
	maps.Copy(merged, defaults)
	maps.Copy(merged, overrides)
	return merged
}

// EffectiveOptions returns the options a configuration runs with.
func (c *Configuration) EffectiveOptions(t *CredentialType) Options {
	if t == nil {
		return MergeOptions(nil, c.CustomOptions)
	}
	return MergeOptions(t.CustomOptions, c.CustomOptions)
}

// Schedule is the periodic unit of work attached to a configuration.
type Schedule struct {
	Name            string          `json:"name"`
	ConfigurationID ConfigurationID `json:"configuration_id"`
	Task            string          `json:"task"`
	Args            []string        `json:"args"`
	Interval        time.Duration   `json:"interval"`
	Enabled         bool            `json:"enabled"`
	LastRunAt       *time.Time      `json:"last_run_at,omitempty"`
}

// Due reports whether the schedule should fire at now.
func (s *Schedule) Due(now time.Time) bool {
	if !s.Enabled {
		return false
	}
	return s.LastRunAt == nil || !now.Before(s.LastRunAt.Add(s.Interval))
}
