//go:build !gcp

package storage

import (
	"context"
	"errors"
)

func newGCSBackend(context.Context, GCSConfig) (Backend, error) {
	return nil, errors.New("GCS storage is not enabled in this build (use -tags gcp)")
}
