package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores artifacts under a media root on local disk and serves
// them from rootURL + mediaURL.
type FileBackend struct {
	root     string
	rootURL  string
	mediaURL string
}

// NewFileBackend creates the media root if needed.
func NewFileBackend(root, rootURL, mediaURL string) (*FileBackend, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	if mediaURL != "" && !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return &FileBackend{root: root, rootURL: strings.TrimRight(rootURL, "/"), mediaURL: mediaURL}, nil
}

func (b *FileBackend) full(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("path %q escapes media root", path)
	}
	return filepath.Join(b.root, clean), nil
}

func (b *FileBackend) Exists(_ context.Context, path string) (bool, error) {
	full, err := b.full(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (b *FileBackend) Delete(_ context.Context, path string) error {
	full, err := b.full(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Save writes through a temporary file so readers never see a partial artifact.
func (b *FileBackend) Save(_ context.Context, path string, data []byte, _ string) error {
	full, err := b.full(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".artifact-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), full)
}

// URL composes rootURL + mediaURL + path.
func (b *FileBackend) URL(_ context.Context, path string) (string, error) {
	return b.rootURL + b.mediaURL + path, nil
}
