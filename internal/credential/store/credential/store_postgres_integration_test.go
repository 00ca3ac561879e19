//go:build integration

package credential_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"coursecred/internal/credential/models"
	"coursecred/internal/credential/store/credential"
	"coursecred/pkg/platform/sentinel"
	"coursecred/pkg/testutil"
	"coursecred/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *credential.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = credential.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateModuleTables(context.Background()))
}

func (s *PostgresStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	record := testutil.NewCredentialBuilder().Build()
	s.Require().NoError(s.store.Save(ctx, record))

	byID, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.DownloadURL, byID.DownloadURL)
	s.Equal(models.StatusAvailable, byID.Status)

	byKey, err := s.store.FindByKey(ctx, record.Key())
	s.Require().NoError(err)
	s.Equal(record.ID, byKey.ID)

	_, err = s.store.FindByID(ctx, models.NewCredentialID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCredentialedLearnersSkipsErrorRecords() {
	ctx := context.Background()
	course := testutil.TestIDs.CourseID
	s.Require().NoError(s.store.Save(ctx, testutil.NewCredentialBuilder().ForLearner(1).Build()))
	s.Require().NoError(s.store.Save(ctx, testutil.NewCredentialBuilder().ForLearner(2).WithStatus(models.StatusError).Build()))
	s.Require().NoError(s.store.Save(ctx, testutil.NewCredentialBuilder().ForLearner(3).WithStatus(models.StatusInvalidated).Build()))
	s.Require().NoError(s.store.Save(ctx, testutil.NewCredentialBuilder().ForLearner(4).ForResource(course, "grade").Build()))

	ids, err := s.store.CredentialedLearners(ctx, course, "completion", []models.LearnerID{1, 2, 3, 4, 5})
	s.Require().NoError(err)
	s.ElementsMatch([]models.LearnerID{1, 3}, ids)
}

// Concurrent upserts for one natural key converge on a single row and id.
func (s *PostgresStoreSuite) TestConcurrentUpsertGeneratingKeepsOneRow() {
	ctx := context.Background()
	const writers = 10

	ids := make([]models.CredentialID, writers)
	result := testutil.RunConcurrent(writers, func(idx int) error {
		candidate := testutil.NewCredentialBuilder().WithStatus(models.StatusGenerating).Build()
		record, err := s.store.UpsertGenerating(ctx, candidate)
		if err != nil {
			return err
		}
		ids[idx] = record.ID
		return nil
	})
	s.Require().Empty(result.Errors)
	s.Equal(writers, result.Successes)

	for _, id := range ids {
		s.Equal(ids[0], id)
	}
	var rows int
	s.Require().NoError(s.postgres.QueryRow(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&rows))
	s.Equal(1, rows)
}
