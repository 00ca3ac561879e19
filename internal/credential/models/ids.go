package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "coursecred/pkg/domain-errors"
)

// CredentialID is the opaque identifier of a credential record. It is minted
// once per natural key and reused across regeneration attempts.
type CredentialID uuid.UUID

// NewCredentialID mints a fresh credential identifier.
func NewCredentialID() CredentialID {
	return CredentialID(uuid.New())
}

// ParseCredentialID validates and parses a credential ID string.
func ParseCredentialID(value string) (CredentialID, error) {
	if strings.TrimSpace(value) == "" {
		return CredentialID{}, dErrors.New(dErrors.CodeInvalidInput, "credential_id is required")
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return CredentialID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid credential_id format")
	}
	return CredentialID(parsed), nil
}

func (id CredentialID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether id has not been assigned.
func (id CredentialID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id CredentialID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *CredentialID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ConfigurationID identifies a credential configuration.
type ConfigurationID uuid.UUID

func NewConfigurationID() ConfigurationID {
	return ConfigurationID(uuid.New())
}

func ParseConfigurationID(value string) (ConfigurationID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return ConfigurationID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid configuration_id format")
	}
	return ConfigurationID(parsed), nil
}

func (id ConfigurationID) String() string { return uuid.UUID(id).String() }

func (id ConfigurationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ConfigurationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// LearnerID is the host platform's numeric user id.
type LearnerID int64

// ParseLearnerID parses a decimal learner id.
func ParseLearnerID(value string) (LearnerID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "learner_id must be a positive integer")
	}
	return LearnerID(n), nil
}

func (id LearnerID) String() string { return strconv.FormatInt(int64(id), 10) }
