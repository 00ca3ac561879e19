//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"coursecred/internal/platform/database"
	"coursecred/migrations"
)

// credentialTables lists every table the migrations create, children first.
var credentialTables = []string{
	"credentials",
	"credential_schedules",
	"credential_configurations",
	"credential_types",
	"credential_assets",
}

// PostgresContainer is a PostgreSQL instance with the credential schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("coursecred_test"),
		postgres.WithUsername("coursecred"),
		postgres.WithPassword("coursecred"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("postgres dsn: %v", err)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("open postgres: %v", err)
	}
	if err := database.FromDB(db).Migrate(ctx, migrations.FS); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("migrate postgres: %v", err)
	}
	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

// TruncateModuleTables empties every credential table in one statement.
func (p *PostgresContainer) TruncateModuleTables(ctx context.Context) error {
	query := "TRUNCATE TABLE " + strings.Join(credentialTables, ", ") + " CASCADE"
	if _, err := p.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncate credential tables: %w", err)
	}
	return nil
}
