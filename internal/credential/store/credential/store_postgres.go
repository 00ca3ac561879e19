package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

const credentialColumns = `id, learner_id, learner_display_name, resource_id, resource_type, credential_type,
	status, download_url, legacy_id, generation_task_id, invalidation_reason, created_at, updated_at`

// PostgresStore persists credential records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credential store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id models.CredentialID) (*models.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE id = $1`
	record, err := scanCredential(s.db.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find credential by id: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) FindByKey(ctx context.Context, key models.NaturalKey) (*models.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials
		WHERE learner_id = $1 AND resource_id = $2 AND credential_type = $3`
	record, err := scanCredential(s.db.QueryRowContext(ctx, query, int64(key.LearnerID), key.ResourceID, key.CredentialType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find credential by key: %w", err)
	}
	return record, nil
}

// Save upserts by natural key. The row takes the writer's id, so concurrent
// writers for the same key resolve to whichever committed last.
func (s *PostgresStore) Save(ctx context.Context, c *models.Credential) error {
	if c == nil {
		return sentinel.ErrInvalidInput
	}
	query := `
		INSERT INTO credentials (` + credentialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (learner_id, resource_id, credential_type) DO UPDATE SET
			id = EXCLUDED.id,
			learner_display_name = EXCLUDED.learner_display_name,
			resource_type = EXCLUDED.resource_type,
			status = EXCLUDED.status,
			download_url = EXCLUDED.download_url,
			legacy_id = EXCLUDED.legacy_id,
			generation_task_id = EXCLUDED.generation_task_id,
			invalidation_reason = EXCLUDED.invalidation_reason,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, credentialArgs(c)...); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// UpsertGenerating inserts candidate or, when the natural key is taken, moves
// the existing row into GENERATING while keeping its id. It runs as a single
// statement.
func (s *PostgresStore) UpsertGenerating(ctx context.Context, candidate *models.Credential) (*models.Credential, error) {
	if candidate == nil {
		return nil, sentinel.ErrInvalidInput
	}
	query := `
		INSERT INTO credentials (` + credentialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (learner_id, resource_id, credential_type) DO UPDATE SET
			learner_display_name = EXCLUDED.learner_display_name,
			status = EXCLUDED.status,
			generation_task_id = EXCLUDED.generation_task_id,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + credentialColumns
	record, err := scanCredential(s.db.QueryRowContext(ctx, query, credentialArgs(candidate)...))
	if err != nil {
		return nil, fmt.Errorf("upsert generating credential: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) ListByLearner(ctx context.Context, resourceID string, learnerID models.LearnerID) ([]models.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials
		WHERE resource_id = $1 AND learner_id = $2
		ORDER BY credential_type`
	rows, err := s.db.QueryContext(ctx, query, resourceID, int64(learnerID))
	if err != nil {
		return nil, fmt.Errorf("list learner credentials: %w", err)
	}
	defer rows.Close()

	var out []models.Credential
	for rows.Next() {
		record, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		out = append(out, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CredentialedLearners(ctx context.Context, resourceID, credentialType string, candidates []models.LearnerID) ([]models.LearnerID, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	ids := make([]int64, len(candidates))
	for i, id := range candidates {
		ids[i] = int64(id)
	}
	query := `
		SELECT learner_id FROM credentials
		WHERE resource_id = $1 AND credential_type = $2
			AND learner_id = ANY($3::bigint[])
			AND status <> 'error'
	`
	rows, err := s.db.QueryContext(ctx, query, resourceID, credentialType, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list credentialed learners: %w", err)
	}
	defer rows.Close()

	var out []models.LearnerID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan learner id: %w", err)
		}
		out = append(out, models.LearnerID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate learner ids: %w", err)
	}
	return out, nil
}

func credentialArgs(c *models.Credential) []any {
	var legacy sql.NullInt64
	if c.LegacyID != nil {
		legacy = sql.NullInt64{Int64: *c.LegacyID, Valid: true}
	}
	return []any{
		uuid.UUID(c.ID),
		int64(c.LearnerID),
		c.LearnerDisplayName,
		c.Resource.ID,
		string(c.Resource.Type),
		c.CredentialType,
		string(c.Status),
		c.DownloadURL,
		legacy,
		c.GenerationTaskID,
		c.InvalidationReason,
		c.CreatedAt,
		c.UpdatedAt,
	}
}

type credentialRow interface {
	Scan(dest ...any) error
}

func scanCredential(row credentialRow) (*models.Credential, error) {
	var (
		record       models.Credential
		id           uuid.UUID
		learnerID    int64
		resourceType string
		status       string
		legacy       sql.NullInt64
	)
	if err := row.Scan(&id, &learnerID, &record.LearnerDisplayName, &record.Resource.ID, &resourceType,
		&record.CredentialType, &status, &record.DownloadURL, &legacy, &record.GenerationTaskID,
		&record.InvalidationReason, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}
	record.ID = models.CredentialID(id)
	record.LearnerID = models.LearnerID(learnerID)
	record.Resource.Type = models.ResourceType(resourceType)
	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("parse credential status: %w", err)
	}
	record.Status = parsed
	if legacy.Valid {
		v := legacy.Int64
		record.LegacyID = &v
	}
	return &record, nil
}
