package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursecred/internal/credential/models"
)

// PostgresStore persists assets in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, a *models.Asset) error {
	stored, err := prepare(a)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO credential_assets (slug, description, content_type, data, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE SET
			description = EXCLUDED.description,
			content_type = EXCLUDED.content_type,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query, stored.Slug, stored.Description, stored.ContentType, stored.Data, stored.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save asset: %w", err)
	}
	return nil
}

func (s *PostgresStore) AssetBySlug(ctx context.Context, slug string) (*models.Asset, error) {
	query := `SELECT slug, description, content_type, data, updated_at FROM credential_assets WHERE slug = $1`
	var a models.Asset
	err := s.db.QueryRowContext(ctx, query, slug).Scan(&a.Slug, &a.Description, &a.ContentType, &a.Data, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(slug)
		}
		return nil, fmt.Errorf("find asset: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, description, content_type, updated_at FROM credential_assets ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.Slug, &a.Description, &a.ContentType, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, slug string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM credential_assets WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if n == 0 {
		return notFound(slug)
	}
	return nil
}
