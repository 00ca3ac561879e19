package database

import (
	"context"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecred/internal/platform/config"
)

var migrations = fstest.MapFS{
	"000002_assets.up.sql": {Data: []byte("CREATE TABLE b (id INT)")},
	"000001_init.up.sql":   {Data: []byte("CREATE TABLE a (id INT)")},
	"000001_init.down.sql": {Data: []byte("DROP TABLE a")},
	"README.md":            {Data: []byte("ignored")},
}

func expectLedger(mock sqlmock.Sqlmock, applied ...string) {
	mock.ExpectExec(regexp.QuoteMeta(createLedger)).WillReturnResult(sqlmock.NewResult(0, 0))
	rows := sqlmock.NewRows([]string{"version"})
	for _, v := range applied {
		rows.AddRow(v)
	}
	mock.ExpectQuery(regexp.QuoteMeta(selectApplied)).WillReturnRows(rows)
}

func expectApply(mock sqlmock.Sqlmock, script, version string) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(script)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertApplied)).WithArgs(version).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
}

func TestNewWithoutURL(t *testing.T) {
	pool, err := New(context.Background(), config.DatabaseConfig{})
	require.NoError(t, err)
	assert.Nil(t, pool)
	assert.ErrorIs(t, pool.Health(context.Background()), errNotConfigured)
	assert.NoError(t, pool.Close())
}

func TestMigrate(t *testing.T) {
	t.Run("applies up files in name order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectLedger(mock)
		expectApply(mock, "CREATE TABLE a (id INT)", "000001_init")
		expectApply(mock, "CREATE TABLE b (id INT)", "000002_assets")

		require.NoError(t, FromDB(db).Migrate(context.Background(), migrations))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips recorded versions", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectLedger(mock, "000001_init")
		expectApply(mock, "CREATE TABLE b (id INT)", "000002_assets")

		require.NoError(t, FromDB(db).Migrate(context.Background(), migrations))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and stops on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectLedger(mock)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INT)")).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err = FromDB(db).Migrate(context.Background(), migrations)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "000001_init.up.sql")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
