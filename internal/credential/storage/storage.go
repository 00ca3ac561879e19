// Package storage persists rendered artifacts and resolves their public URLs.
package storage

import (
	"context"
	"fmt"
	"strings"

	"coursecred/internal/credential/models"
)

// ArtifactDir is the key prefix all credential artifacts are stored under.
const ArtifactDir = "external_certificates"

// ContentTypePDF is the media type of stored artifacts.
const ContentTypePDF = "application/pdf"

// Backend is an object store addressed by relative paths.
type Backend interface {
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	Save(ctx context.Context, path string, data []byte, contentType string) error
	URL(ctx context.Context, path string) (string, error)
}

// ArtifactPath is the deterministic storage path of a credential's artifact.
func ArtifactPath(id models.CredentialID) string {
	return fmt.Sprintf("%s/%s.pdf", ArtifactDir, id)
}

// Publisher writes artifacts to a backend, replacing any earlier artifact of
// the same credential.
type Publisher struct {
	backend      Backend
	customDomain string
}

// NewPublisher builds a publisher. A non-empty customDomain overrides every
// backend URL with "{customDomain}/{id}.pdf".
func NewPublisher(backend Backend, customDomain string) *Publisher {
	return &Publisher{backend: backend, customDomain: strings.TrimRight(customDomain, "/")}
}

// Publish stores data for id and returns the public URL.
func (p *Publisher) Publish(ctx context.Context, id models.CredentialID, data []byte) (string, error) {
	path := ArtifactPath(id)

	exists, err := p.backend.Exists(ctx, path)
	if err != nil {
		return "", fmt.Errorf("check %s: %w", path, err)
	}
	if exists {
		if err := p.backend.Delete(ctx, path); err != nil {
			return "", fmt.Errorf("delete %s: %w", path, err)
		}
	}
	if err := p.backend.Save(ctx, path, data, ContentTypePDF); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	if p.customDomain != "" {
		return fmt.Sprintf("%s/%s.pdf", p.customDomain, id), nil
	}
	return p.backend.URL(ctx, path)
}
