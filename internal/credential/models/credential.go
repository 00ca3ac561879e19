package models

import (
	"time"

	dErrors "coursecred/pkg/domain-errors"
)

// Status is the lifecycle state of a credential record.
type Status string

const (
	StatusGenerating  Status = "generating"
	StatusAvailable   Status = "available"
	StatusError       Status = "error"
	StatusInvalidated Status = "invalidated"
)

// ParseStatus validates a persisted or client supplied status.
func ParseStatus(value string) (Status, error) {
	switch s := Status(value); s {
	case StatusGenerating, StatusAvailable, StatusError, StatusInvalidated:
		return s, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown credential status: "+value)
	}
}

// SuppressesGeneration reports whether a record in this status keeps the
// learner out of the next generation run. Only ERROR lets the learner back in.
func (s Status) SuppressesGeneration() bool {
	return s != StatusError
}

// Credential is the per-(learner, resource, credential type) record.
type Credential struct {
	ID                 CredentialID
	LearnerID          LearnerID
	LearnerDisplayName string
	Resource           Resource
	CredentialType     string
	Status             Status
	DownloadURL        string
	LegacyID           *int64
	GenerationTaskID   string
	InvalidationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NaturalKey identifies the single live record a learner may hold per
// resource and credential type.
type NaturalKey struct {
	LearnerID      LearnerID
	ResourceID     string
	CredentialType string
}

// Key returns the natural key of the record.
func (c *Credential) Key() NaturalKey {
	return NaturalKey{LearnerID: c.LearnerID, ResourceID: c.Resource.ID, CredentialType: c.CredentialType}
}

// Restart moves the record (new or recycled) into GENERATING for a new attempt.
func (c *Credential) Restart(displayName, taskID string, now time.Time) {
	c.LearnerDisplayName = displayName
	c.Status = StatusGenerating
	c.GenerationTaskID = taskID
	c.UpdatedAt = now
}

// Complete records a successful render.
func (c *Credential) Complete(url string, now time.Time) error {
	if c.Status != StatusGenerating {
		return dErrors.New(dErrors.CodeConflict, "credential is not generating")
	}
	c.DownloadURL = url
	c.Status = StatusAvailable
	c.UpdatedAt = now
	return nil
}

// Fail records a failed attempt. It is valid from any state so a stuck
// record can always be released.
func (c *Credential) Fail(now time.Time) {
	c.Status = StatusError
	c.UpdatedAt = now
}

// Invalidate revokes an issued credential.
func (c *Credential) Invalidate(reason string, now time.Time) {
	c.Status = StatusInvalidated
	c.InvalidationReason = reason
	c.UpdatedAt = now
}

// Metadata is the read-only public view of a credential.
type Metadata struct {
	ID                 CredentialID `json:"uuid"`
	LearnerDisplayName string       `json:"user_full_name"`
	LastModified       time.Time    `json:"modified"`
	ResourceID         string       `json:"course_id"`
	Status             Status       `json:"status"`
	InvalidationReason string       `json:"invalidation_reason"`
}

// Metadata projects the record into its public view.
func (c *Credential) Metadata() Metadata {
	return Metadata{
		ID:                 c.ID,
		LearnerDisplayName: c.LearnerDisplayName,
		LastModified:       c.UpdatedAt,
		ResourceID:         c.Resource.ID,
		Status:             c.Status,
		InvalidationReason: c.InvalidationReason,
	}
}

// Summary is the per-type view returned to a learner.
type Summary struct {
	DownloadURL string `json:"download_url"`
	Status      Status `json:"status"`
}
