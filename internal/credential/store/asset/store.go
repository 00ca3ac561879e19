// Package asset stores the slug-addressed binaries the renderer reads:
// PDF templates, fonts and images.
package asset

import (
	"fmt"

	"coursecred/internal/credential/models"
	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/platform/sentinel"
)

const defaultContentType = "application/octet-stream"

// notFound is returned for unknown slugs. It carries the asset_not_found code
// and still matches sentinel.ErrNotFound.
func notFound(slug string) error {
	return &dErrors.Error{
		Code:    dErrors.CodeAssetNotFound,
		Message: fmt.Sprintf("asset %q not found", slug),
		Err:     sentinel.ErrNotFound,
	}
}

func prepare(a *models.Asset) (models.Asset, error) {
	if a == nil || a.Slug == "" {
		return models.Asset{}, dErrors.New(dErrors.CodeInvalidInput, "asset slug is required")
	}
	if len(a.Data) == 0 {
		return models.Asset{}, dErrors.New(dErrors.CodeInvalidInput, "asset data is required")
	}
	stored := *a
	stored.Data = append([]byte(nil), a.Data...)
	if stored.ContentType == "" {
		stored.ContentType = defaultContentType
	}
	return stored, nil
}
