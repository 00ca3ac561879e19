package storage

import (
	"context"
	"fmt"
)

// Type selects the artifact storage backend.
type Type string

const (
	TypeFS  Type = "fs"
	TypeS3  Type = "s3"
	TypeGCS Type = "gcs"
)

// GCSConfig holds configuration for the GCS backend.
type GCSConfig struct {
	Bucket string
	Prefix string
}

// Config selects and configures a backend.
type Config struct {
	Type      Type
	MediaRoot string
	MediaURL  string
	RootURL   string
	S3        S3Config
	GCS       GCSConfig
}

// New builds the configured backend. An empty type selects the filesystem.
func New(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Type {
	case TypeFS, "":
		return NewFileBackend(cfg.MediaRoot, cfg.RootURL, cfg.MediaURL)
	case TypeS3:
		return NewS3Backend(ctx, cfg.S3)
	case TypeGCS:
		return newGCSBackend(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unsupported artifact storage type: %s", cfg.Type)
	}
}
