package credential

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecred/internal/credential/models"
	"coursecred/pkg/platform/sentinel"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newRecord(learner models.LearnerID, status models.Status) *models.Credential {
	return &models.Credential{
		ID:                 models.NewCredentialID(),
		LearnerID:          learner,
		LearnerDisplayName: "Learner " + learner.String(),
		Resource:           models.Resource{ID: "course-v1:Org+CS101+2025", Type: models.ResourceTypeCourse},
		CredentialType:     "completion",
		Status:             status,
		CreatedAt:          fixedNow,
		UpdatedAt:          fixedNow,
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find by id and key", func(t *testing.T) {
		s := NewInMemoryStore()
		rec := newRecord(7, models.StatusGenerating)
		require.NoError(t, s.Save(ctx, rec))

		byID, err := s.FindByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.LearnerDisplayName, byID.LearnerDisplayName)

		byKey, err := s.FindByKey(ctx, rec.Key())
		require.NoError(t, err)
		assert.Equal(t, rec.ID, byKey.ID)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		s := NewInMemoryStore()
		_, err := s.FindByID(ctx, models.NewCredentialID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = s.FindByKey(ctx, models.NaturalKey{LearnerID: 1, ResourceID: "x", CredentialType: "y"})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("last writer for a key wins", func(t *testing.T) {
		s := NewInMemoryStore()
		first := newRecord(7, models.StatusGenerating)
		second := newRecord(7, models.StatusGenerating)
		require.NoError(t, s.Save(ctx, first))
		require.NoError(t, s.Save(ctx, second))

		got, err := s.FindByKey(ctx, first.Key())
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
		_, err = s.FindByID(ctx, first.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("stored records are copies", func(t *testing.T) {
		s := NewInMemoryStore()
		rec := newRecord(7, models.StatusGenerating)
		require.NoError(t, s.Save(ctx, rec))
		rec.Status = models.StatusAvailable

		got, err := s.FindByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusGenerating, got.Status)
	})

	t.Run("upsert generating keeps the existing id", func(t *testing.T) {
		s := NewInMemoryStore()
		existing := newRecord(7, models.StatusError)
		require.NoError(t, s.Save(ctx, existing))

		candidate := newRecord(7, models.StatusGenerating)
		candidate.LearnerDisplayName = "Renamed"
		candidate.GenerationTaskID = "task-2"
		got, err := s.UpsertGenerating(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, got.ID)
		assert.Equal(t, models.StatusGenerating, got.Status)
		assert.Equal(t, "Renamed", got.LearnerDisplayName)
		assert.Equal(t, "task-2", got.GenerationTaskID)
	})

	t.Run("upsert generating inserts when absent", func(t *testing.T) {
		s := NewInMemoryStore()
		candidate := newRecord(9, models.StatusGenerating)
		got, err := s.UpsertGenerating(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, candidate.ID, got.ID)
	})

	t.Run("credentialed learners skip error records", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Save(ctx, newRecord(1, models.StatusAvailable)))
		require.NoError(t, s.Save(ctx, newRecord(2, models.StatusError)))
		require.NoError(t, s.Save(ctx, newRecord(3, models.StatusInvalidated)))
		require.NoError(t, s.Save(ctx, newRecord(4, models.StatusGenerating)))

		got, err := s.CredentialedLearners(ctx, "course-v1:Org+CS101+2025", "completion", []models.LearnerID{1, 2, 3, 4, 5})
		require.NoError(t, err)
		assert.Equal(t, []models.LearnerID{1, 3, 4}, got)

		other, err := s.CredentialedLearners(ctx, "course-v1:Org+CS101+2025", "grades", []models.LearnerID{1, 2, 3, 4})
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("list by learner is ordered by type", func(t *testing.T) {
		s := NewInMemoryStore()
		b := newRecord(7, models.StatusAvailable)
		b.CredentialType = "grades"
		a := newRecord(7, models.StatusGenerating)
		require.NoError(t, s.Save(ctx, b))
		require.NoError(t, s.Save(ctx, a))
		require.NoError(t, s.Save(ctx, newRecord(8, models.StatusAvailable)))

		got, err := s.ListByLearner(ctx, "course-v1:Org+CS101+2025", 7)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "completion", got[0].CredentialType)
		assert.Equal(t, "grades", got[1].CredentialType)
	})
}

func credentialRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "learner_id", "learner_display_name", "resource_id", "resource_type", "credential_type",
		"status", "download_url", "legacy_id", "generation_task_id", "invalidation_reason", "created_at", "updated_at",
	})
}

func TestPostgresStore_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)
	ctx := context.Background()

	id := models.NewCredentialID()
	mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnRows(credentialRows().AddRow(id.String(), int64(7), "Ada Lovelace", "course-v1:Org+CS101+2025", "course",
			"completion", "available", "https://cdn.example.com/x.pdf", int64(42), "task-1", "", fixedNow, fixedNow))

	got, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, models.LearnerID(7), got.LearnerID)
	assert.Equal(t, models.StatusAvailable, got.Status)
	assert.Equal(t, models.ResourceTypeCourse, got.Resource.Type)
	require.NotNil(t, got.LegacyID)
	assert.Equal(t, int64(42), *got.LegacyID)

	missing := models.NewCredentialID()
	mock.ExpectQuery(regexp.QuoteMeta("FROM credentials WHERE id = $1")).
		WithArgs(missing.String()).
		WillReturnRows(credentialRows())
	_, err = s.FindByID(ctx, missing)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)

	rec := newRecord(7, models.StatusAvailable)
	rec.DownloadURL = "https://cdn.example.com/x.pdf"
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (learner_id, resource_id, credential_type) DO UPDATE SET")).
		WithArgs(rec.ID.String(), int64(7), rec.LearnerDisplayName, rec.Resource.ID, "course", "completion",
			"available", rec.DownloadURL, nil, "", "", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Save(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertGenerating(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)

	candidate := newRecord(7, models.StatusGenerating)
	existingID := models.NewCredentialID()
	mock.ExpectQuery(regexp.QuoteMeta("RETURNING id, learner_id")).
		WithArgs(candidate.ID.String(), int64(7), candidate.LearnerDisplayName, candidate.Resource.ID, "course", "completion",
			"generating", "", nil, "", "", fixedNow, fixedNow).
		WillReturnRows(credentialRows().AddRow(existingID.String(), int64(7), candidate.LearnerDisplayName, candidate.Resource.ID,
			"course", "completion", "generating", "", nil, "", "", fixedNow, fixedNow))

	got, err := s.UpsertGenerating(context.Background(), candidate)
	require.NoError(t, err)
	assert.Equal(t, existingID, got.ID)
	assert.Nil(t, got.LegacyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CredentialedLearners(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("learner_id = ANY($3::bigint[])")).
		WithArgs("course-v1:Org+CS101+2025", "completion", "{3,5,8}").
		WillReturnRows(sqlmock.NewRows([]string{"learner_id"}).AddRow(int64(5)))

	got, err := s.CredentialedLearners(ctx, "course-v1:Org+CS101+2025", "completion", []models.LearnerID{3, 5, 8})
	require.NoError(t, err)
	assert.Equal(t, []models.LearnerID{5}, got)

	none, err := s.CredentialedLearners(ctx, "course-v1:Org+CS101+2025", "completion", nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListByLearner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE resource_id = $1 AND learner_id = $2")).
		WithArgs("course-v1:Org+CS101+2025", int64(7)).
		WillReturnRows(credentialRows().
			AddRow(models.NewCredentialID().String(), int64(7), "Ada", "course-v1:Org+CS101+2025", "course",
				"completion", "available", "u1", nil, "", "", fixedNow, fixedNow).
			AddRow(models.NewCredentialID().String(), int64(7), "Ada", "course-v1:Org+CS101+2025", "course",
				"grades", "error", "", nil, "", "", fixedNow, fixedNow))

	got, err := s.ListByLearner(context.Background(), "course-v1:Org+CS101+2025", 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.StatusError, got[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
