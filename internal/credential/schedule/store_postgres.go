package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

const scheduleColumns = `configuration_id, name, task, args, interval_seconds, enabled, last_run_at`

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, sc *models.Schedule) error {
	if sc == nil {
		return sentinel.ErrInvalidInput
	}
	args, err := json.Marshal(argsOrEmpty(sc.Args))
	if err != nil {
		return fmt.Errorf("marshal schedule args: %w", err)
	}
	var lastRun sql.NullTime
	if sc.LastRunAt != nil {
		lastRun = sql.NullTime{Time: *sc.LastRunAt, Valid: true}
	}
	query := `
		INSERT INTO credential_schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (configuration_id) DO UPDATE SET
			name = EXCLUDED.name,
			task = EXCLUDED.task,
			args = EXCLUDED.args,
			interval_seconds = EXCLUDED.interval_seconds,
			enabled = EXCLUDED.enabled,
			last_run_at = EXCLUDED.last_run_at
	`
	_, err = s.db.ExecContext(ctx, query, uuid.UUID(sc.ConfigurationID), sc.Name, sc.Task, args,
		int64(sc.Interval/time.Second), sc.Enabled, lastRun)
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByConfiguration(ctx context.Context, id models.ConfigurationID) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM credential_schedules WHERE configuration_id = $1`
	sc, err := scanSchedule(s.db.QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	return sc, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id models.ConfigurationID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM credential_schedules WHERE configuration_id = $1`, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+scheduleColumns+` FROM credential_schedules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var out []models.Schedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		out = append(out, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) MarkRun(ctx context.Context, id models.ConfigurationID, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE credential_schedules SET last_run_at = $2 WHERE configuration_id = $1`, uuid.UUID(id), at)
	if err != nil {
		return fmt.Errorf("mark schedule run: %w", err)
	}
	return requireRow(result)
}

func argsOrEmpty(args []string) []string {
	if args == nil {
		return []string{}
	}
	return args
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type scheduleRow interface {
	Scan(dest ...any) error
}

func scanSchedule(row scheduleRow) (*models.Schedule, error) {
	var (
		sc       models.Schedule
		id       uuid.UUID
		args     []byte
		interval int64
		lastRun  sql.NullTime
	)
	if err := row.Scan(&id, &sc.Name, &sc.Task, &args, &interval, &sc.Enabled, &lastRun); err != nil {
		return nil, err
	}
	sc.ConfigurationID = models.ConfigurationID(id)
	sc.Interval = time.Duration(interval) * time.Second
	if len(args) > 0 {
		if err := json.Unmarshal(args, &sc.Args); err != nil {
			return nil, fmt.Errorf("unmarshal schedule args: %w", err)
		}
	}
	if lastRun.Valid {
		t := lastRun.Time
		sc.LastRunAt = &t
	}
	return &sc, nil
}
