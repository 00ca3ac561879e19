//go:build gcp

package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"cloud.google.com/go/storage"
)

// GCSBackend stores artifacts in a Google Cloud Storage bucket.
type GCSBackend struct {
	client *storage.Client
	cfg    GCSConfig
}

// newGCSBackend uses application default credentials.
func newGCSBackend(ctx context.Context, cfg GCSConfig) (Backend, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("GCS_BUCKET is required for gcs storage")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSBackend{client: client, cfg: cfg}, nil
}

func (b *GCSBackend) object(path string) *storage.ObjectHandle {
	return b.client.Bucket(b.cfg.Bucket).Object(b.cfg.Prefix + path)
}

func (b *GCSBackend) Exists(ctx context.Context, path string) (bool, error) {
	_, err := b.object(path).Attrs(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("gcs attrs failed for %s: %w", path, err)
}

func (b *GCSBackend) Delete(ctx context.Context, path string) error {
	if err := b.object(path).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete failed for %s: %w", path, err)
	}
	return nil
}

func (b *GCSBackend) Save(ctx context.Context, path string, data []byte, contentType string) error {
	w := b.object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close failed: %w", err)
	}
	return nil
}

func (b *GCSBackend) URL(_ context.Context, path string) (string, error) {
	key := (&url.URL{Path: b.cfg.Prefix + path}).EscapedPath()
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.cfg.Bucket, key), nil
}
