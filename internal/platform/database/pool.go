// Package database opens the PostgreSQL handle shared by the credential
// stores and applies the embedded schema migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"coursecred/internal/platform/config"
)

const (
	pingTimeout = 5 * time.Second
	upSuffix    = ".up.sql"

	createLedger  = `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())`
	selectApplied = `SELECT version FROM schema_migrations`
	insertApplied = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

var errNotConfigured = errors.New("database not configured")

type Pool struct {
	db *sql.DB
}

// New opens and pings cfg.URL. An empty URL yields a nil Pool and no error;
// the in-memory stores are used then.
func New(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Pool{db: db}, nil
}

// FromDB wraps an already opened handle.
func FromDB(db *sql.DB) *Pool {
	return &Pool{db: db}
}

func (p *Pool) DB() *sql.DB {
	return p.db
}

// Migrate applies the *.up.sql files of dir that are not yet recorded in
// schema_migrations, in name order, each in its own transaction.
func (p *Pool) Migrate(ctx context.Context, dir fs.FS) error {
	pending, err := upFiles(dir)
	if err != nil {
		return err
	}
	if _, err := p.db.ExecContext(ctx, createLedger); err != nil {
		return fmt.Errorf("create migration ledger: %w", err)
	}
	applied, err := p.appliedVersions(ctx)
	if err != nil {
		return err
	}
	for _, file := range pending {
		version := strings.TrimSuffix(file, upSuffix)
		if applied[version] {
			continue
		}
		script, err := fs.ReadFile(dir, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if err := p.apply(ctx, version, string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

func upFiles(dir fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(dir, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), upSuffix) {
			files = append(files, path.Base(e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

func (p *Pool) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := p.db.QueryContext(ctx, selectApplied)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func (p *Pool) apply(ctx context.Context, version, script string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertApplied, version); err != nil {
		return err
	}
	return tx.Commit()
}

// Health pings the database. A nil Pool reports it is not configured.
func (p *Pool) Health(ctx context.Context) error {
	if p == nil || p.db == nil {
		return errNotConfigured
	}
	return p.db.PingContext(ctx)
}

func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
