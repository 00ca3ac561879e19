package configuration

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func completionType() *models.CredentialType {
	return &models.CredentialType{
		Name:           "completion",
		RetrievalFunc:  "retrieve_course_completions",
		GenerationFunc: "generate_pdf_credential",
		CustomOptions:  models.Options{"template": "completion-template"},
	}
}

func newConfiguration(resourceID string) *models.Configuration {
	return &models.Configuration{
		ID:             models.NewConfigurationID(),
		Resource:       models.Resource{ID: resourceID, Type: models.ResourceTypeCourse},
		CredentialType: "completion",
		CustomOptions:  models.Options{"required_completion": 0.8},
		CreatedAt:      fixedNow,
		UpdatedAt:      fixedNow,
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("configuration requires a known type", func(t *testing.T) {
		s := NewInMemoryStore()
		err := s.Create(ctx, newConfiguration("course-1"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("one configuration per resource and type", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.SaveType(ctx, completionType()))
		require.NoError(t, s.Create(ctx, newConfiguration("course-1")))

		err := s.Create(ctx, newConfiguration("course-1"))
		assert.ErrorIs(t, err, sentinel.ErrConflict)
		require.NoError(t, s.Create(ctx, newConfiguration("course-2")))
	})

	t.Run("update moves the resource index", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.SaveType(ctx, completionType()))
		c := newConfiguration("course-1")
		require.NoError(t, s.Create(ctx, c))

		c.Resource.ID = "course-9"
		c.Enabled = true
		require.NoError(t, s.Update(ctx, c))

		_, err := s.FindByResourceAndType(ctx, "course-1", "completion")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		got, err := s.FindByResourceAndType(ctx, "course-9", "completion")
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.True(t, got.Enabled)
	})

	t.Run("update of unknown configuration", func(t *testing.T) {
		s := NewInMemoryStore()
		assert.ErrorIs(t, s.Update(ctx, newConfiguration("course-1")), sentinel.ErrNotFound)
	})

	t.Run("list enabled and by resource", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.SaveType(ctx, completionType()))
		grades := completionType()
		grades.Name = "grades"
		require.NoError(t, s.SaveType(ctx, grades))

		a := newConfiguration("course-1")
		a.Enabled = true
		b := newConfiguration("course-1")
		b.CredentialType = "grades"
		c := newConfiguration("course-2")
		c.Enabled = true
		for _, cfg := range []*models.Configuration{a, b, c} {
			require.NoError(t, s.Create(ctx, cfg))
		}

		enabled, err := s.ListEnabled(ctx)
		require.NoError(t, err)
		require.Len(t, enabled, 2)
		assert.Equal(t, a.ID, enabled[0].ID)
		assert.Equal(t, c.ID, enabled[1].ID)

		byResource, err := s.ListByResource(ctx, "course-1")
		require.NoError(t, err)
		require.Len(t, byResource, 2)
		assert.Equal(t, "completion", byResource[0].CredentialType)
		assert.Equal(t, "grades", byResource[1].CredentialType)
	})

	t.Run("delete", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.SaveType(ctx, completionType()))
		c := newConfiguration("course-1")
		require.NoError(t, s.Create(ctx, c))
		require.NoError(t, s.Delete(ctx, c.ID))
		assert.ErrorIs(t, s.Delete(ctx, c.ID), sentinel.ErrNotFound)
		require.NoError(t, s.Create(ctx, newConfiguration("course-1")))
	})

	t.Run("stored options are detached from the caller", func(t *testing.T) {
		s := NewInMemoryStore()
		ct := completionType()
		require.NoError(t, s.SaveType(ctx, ct))
		ct.CustomOptions["template"] = "changed"

		got, err := s.FindType(ctx, "completion")
		require.NoError(t, err)
		assert.Equal(t, "completion-template", got.CustomOptions["template"])
	})
}

func TestPostgresStore_FindByResourceAndType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)

	id := models.NewConfigurationID()
	rows := sqlmock.NewRows([]string{"id", "resource_id", "resource_type", "credential_type", "custom_options", "enabled", "created_at", "updated_at"}).
		AddRow(id.String(), "course-1", "course", "completion", []byte(`{"required_completion":0.8}`), true, fixedNow, fixedNow)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE resource_id = $1 AND credential_type = $2")).
		WithArgs("course-1", "completion").
		WillReturnRows(rows)

	got, err := s.FindByResourceAndType(context.Background(), "course-1", "completion")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 0.8, got.CustomOptions["required_completion"])
	assert.True(t, got.Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)

	c := newConfiguration("course-1")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO credential_configurations")).
		WithArgs(c.ID.String(), "course-1", "course", "completion", []byte(`{"required_completion":0.8}`), false, fixedNow, fixedNow).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = s.Create(context.Background(), c)
	assert.ErrorIs(t, err, sentinel.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)

	c := newConfiguration("course-1")
	mock.ExpectExec(regexp.QuoteMeta("UPDATE credential_configurations SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.Update(context.Background(), c)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)

	ct := completionType()
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (name) DO UPDATE SET")).
		WithArgs("completion", "retrieve_course_completions", "generate_pdf_credential",
			[]byte(`{"template":"completion-template"}`), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.SaveType(context.Background(), ct))
	assert.NoError(t, mock.ExpectationsWereMet())
}
