package schedule

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecred/internal/credential/models"
	"coursecred/internal/platform/workqueue"
)

func configuration() *models.Configuration {
	return &models.Configuration{
		ID:             models.NewConfigurationID(),
		Resource:       models.Resource{ID: "course-v1:Org+CS101+2025", Type: models.ResourceTypeCourse},
		CredentialType: "completion",
	}
}

type recordingSubmitter struct {
	mu    sync.Mutex
	tasks []workqueue.Task
	err   error
}

func (r *recordingSubmitter) Submit(_ context.Context, t workqueue.Task) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, t)
	return t.ID, nil
}

func TestProvisioner(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	p := NewProvisioner(store)
	c := configuration()

	s, err := p.Provision(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "completion in course-v1:Org+CS101+2025", s.Name)
	assert.Equal(t, TaskGenerateForConfiguration, s.Task)
	assert.Equal(t, []string{c.ID.String()}, s.Args)
	assert.Equal(t, 240*time.Hour, s.Interval)
	assert.False(t, s.Enabled)

	ran := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.MarkRun(ctx, c.ID, ran))

	c.Enabled = true
	synced, err := p.Sync(ctx, c)
	require.NoError(t, err)
	assert.True(t, synced.Enabled)
	require.NotNil(t, synced.LastRunAt)
	assert.Equal(t, ran, *synced.LastRunAt)

	require.NoError(t, p.Remove(ctx, c.ID))
	require.NoError(t, p.Remove(ctx, c.ID))
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSyncRecreatesMissingSchedule(t *testing.T) {
	store := NewInMemoryStore()
	c := configuration()
	s, err := NewProvisioner(store).Sync(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, s.Interval)
	assert.Equal(t, Name(c), s.Name)
}

func TestRunnerTick(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewInMemoryStore()
	p := NewProvisioner(store)

	disabled := configuration()
	_, err := p.Provision(ctx, disabled)
	require.NoError(t, err)

	enabled := configuration()
	enabled.CredentialType = "grades"
	enabled.Enabled = true
	_, err = p.Sync(ctx, enabled)
	require.NoError(t, err)

	submitter := &recordingSubmitter{}
	clock := now
	r := NewRunner(store, submitter,
		WithClock(func() time.Time { return clock }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	n, err := r.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, submitter.tasks, 1)
	assert.Equal(t, TaskGenerateForConfiguration, submitter.tasks[0].Name)
	assert.Equal(t, []string{enabled.ID.String()}, submitter.tasks[0].Args)

	clock = now.Add(24 * time.Hour)
	n, err = r.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	clock = now.Add(DefaultInterval)
	n, err = r.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunnerTickKeepsFailedSubmissionsDue(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	c := configuration()
	c.Enabled = true
	_, err := NewProvisioner(store).Sync(ctx, c)
	require.NoError(t, err)

	r := NewRunner(store, &recordingSubmitter{err: assert.AnError},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	n, err := r.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	s, err := store.FindByConfiguration(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, s.LastRunAt)
}

func TestPostgresStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewPostgres(db)
	ctx := context.Background()
	id := models.NewConfigurationID()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO credential_schedules")).
		WithArgs(id.String(), "completion in course-1", TaskGenerateForConfiguration, []byte(`["`+id.String()+`"]`),
			int64(864000), false, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.Save(ctx, &models.Schedule{
		ConfigurationID: id,
		Name:            "completion in course-1",
		Task:            TaskGenerateForConfiguration,
		Args:            []string{id.String()},
		Interval:        DefaultInterval,
	}))

	mock.ExpectQuery(regexp.QuoteMeta("FROM credential_schedules WHERE configuration_id = $1")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"configuration_id", "name", "task", "args", "interval_seconds", "enabled", "last_run_at"}).
			AddRow(id.String(), "completion in course-1", TaskGenerateForConfiguration, []byte(`["`+id.String()+`"]`), int64(864000), true, nil))
	got, err := s.FindByConfiguration(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, got.Interval)
	assert.Equal(t, []string{id.String()}, got.Args)
	assert.Nil(t, got.LastRunAt)

	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE credential_schedules SET last_run_at = $2")).
		WithArgs(id.String(), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.MarkRun(ctx, id, at))

	assert.NoError(t, mock.ExpectationsWereMet())
}
