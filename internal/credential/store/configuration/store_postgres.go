package configuration

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const configurationColumns = `id, resource_id, resource_type, credential_type, custom_options, enabled, created_at, updated_at`

// PostgresStore persists credential types and configurations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed configuration store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveType(ctx context.Context, t *models.CredentialType) error {
	if t == nil {
		return sentinel.ErrInvalidInput
	}
	options, err := marshalOptions(t.CustomOptions)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO credential_types (name, retrieval_func, generation_func, custom_options, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			retrieval_func = EXCLUDED.retrieval_func,
			generation_func = EXCLUDED.generation_func,
			custom_options = EXCLUDED.custom_options,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query, t.Name, t.RetrievalFunc, t.GenerationFunc, options, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save credential type: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindType(ctx context.Context, name string) (*models.CredentialType, error) {
	query := `SELECT name, retrieval_func, generation_func, custom_options, created_at, updated_at
		FROM credential_types WHERE name = $1`
	t, err := scanType(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find credential type: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) ListTypes(ctx context.Context) ([]models.CredentialType, error) {
	query := `SELECT name, retrieval_func, generation_func, custom_options, created_at, updated_at
		FROM credential_types ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list credential types: %w", err)
	}
	defer rows.Close()

	var out []models.CredentialType
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential type: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credential types: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Configuration) error {
	if c == nil {
		return sentinel.ErrInvalidInput
	}
	options, err := marshalOptions(c.CustomOptions)
	if err != nil {
		return err
	}
	query := `INSERT INTO credential_configurations (` + configurationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = s.db.ExecContext(ctx, query, uuid.UUID(c.ID), c.Resource.ID, string(c.Resource.Type), c.CredentialType,
		options, c.Enabled, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return translateWriteError("create configuration", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.Configuration) error {
	if c == nil {
		return sentinel.ErrInvalidInput
	}
	options, err := marshalOptions(c.CustomOptions)
	if err != nil {
		return err
	}
	query := `
		UPDATE credential_configurations SET
			resource_id = $2,
			resource_type = $3,
			credential_type = $4,
			custom_options = $5,
			enabled = $6,
			updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(c.ID), c.Resource.ID, string(c.Resource.Type), c.CredentialType,
		options, c.Enabled, c.UpdatedAt)
	if err != nil {
		return translateWriteError("update configuration", err)
	}
	return requireAffected(result, "update configuration")
}

func (s *PostgresStore) Delete(ctx context.Context, id models.ConfigurationID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM credential_configurations WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}
	return requireAffected(result, "delete configuration")
}

func (s *PostgresStore) FindByID(ctx context.Context, id models.ConfigurationID) (*models.Configuration, error) {
	query := `SELECT ` + configurationColumns + ` FROM credential_configurations WHERE id = $1`
	c, err := scanConfiguration(s.db.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find configuration: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) FindByResourceAndType(ctx context.Context, resourceID, credentialType string) (*models.Configuration, error) {
	query := `SELECT ` + configurationColumns + ` FROM credential_configurations
		WHERE resource_id = $1 AND credential_type = $2`
	c, err := scanConfiguration(s.db.QueryRowContext(ctx, query, resourceID, credentialType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find configuration by resource: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListByResource(ctx context.Context, resourceID string) ([]models.Configuration, error) {
	query := `SELECT ` + configurationColumns + ` FROM credential_configurations
		WHERE resource_id = $1 ORDER BY credential_type`
	return s.list(ctx, query, resourceID)
}

func (s *PostgresStore) ListEnabled(ctx context.Context) ([]models.Configuration, error) {
	query := `SELECT ` + configurationColumns + ` FROM credential_configurations
		WHERE enabled ORDER BY resource_id, credential_type`
	return s.list(ctx, query)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]models.Configuration, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	defer rows.Close()

	var out []models.Configuration
	for rows.Next() {
		c, err := scanConfiguration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan configuration: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configurations: %w", err)
	}
	return out, nil
}

func marshalOptions(options models.Options) ([]byte, error) {
	if options == nil {
		options = models.Options{}
	}
	b, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("marshal custom options: %w", err)
	}
	return b, nil
}

func unmarshalOptions(b []byte) (models.Options, error) {
	options := models.Options{}
	if len(b) == 0 {
		return options, nil
	}
	if err := json.Unmarshal(b, &options); err != nil {
		return nil, fmt.Errorf("unmarshal custom options: %w", err)
	}
	return options, nil
}

func translateWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		case foreignKeyViolation:
			return fmt.Errorf("%s: unknown credential type: %w", op, sentinel.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireAffected(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type row interface {
	Scan(dest ...any) error
}

func scanType(r row) (*models.CredentialType, error) {
	var t models.CredentialType
	var options []byte
	if err := r.Scan(&t.Name, &t.RetrievalFunc, &t.GenerationFunc, &options, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := unmarshalOptions(options)
	if err != nil {
		return nil, err
	}
	t.CustomOptions = parsed
	return &t, nil
}

func scanConfiguration(r row) (*models.Configuration, error) {
	var (
		c            models.Configuration
		id           uuid.UUID
		resourceType string
		options      []byte
	)
	if err := r.Scan(&id, &c.Resource.ID, &resourceType, &c.CredentialType, &options, &c.Enabled, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ID = models.ConfigurationID(id)
	c.Resource.Type = models.ResourceType(resourceType)
	parsed, err := unmarshalOptions(options)
	if err != nil {
		return nil, err
	}
	c.CustomOptions = parsed
	return &c, nil
}
