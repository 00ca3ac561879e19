//go:build integration

package configuration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"coursecred/internal/credential/store/configuration"
	"coursecred/pkg/platform/sentinel"
	"coursecred/pkg/testutil"
	"coursecred/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *configuration.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = configuration.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateModuleTables(ctx))
	s.Require().NoError(s.store.SaveType(ctx, testutil.NewCredentialTypeBuilder().Build()))
}

func (s *PostgresStoreSuite) TestCreateFindAndList() {
	ctx := context.Background()
	c := testutil.NewConfigurationBuilder().WithOptions(map[string]any{"template": "cs101"}).Build()
	s.Require().NoError(s.store.Create(ctx, c))

	found, err := s.store.FindByResourceAndType(ctx, c.Resource.ID, c.CredentialType)
	s.Require().NoError(err)
	s.Equal(c.ID, found.ID)
	s.Equal("cs101", found.CustomOptions["template"])

	enabled, err := s.store.ListEnabled(ctx)
	s.Require().NoError(err)
	s.Len(enabled, 1)
}

func (s *PostgresStoreSuite) TestConstraintViolations() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, testutil.NewConfigurationBuilder().Build()))

	s.T().Run("duplicate resource and type", func(t *testing.T) {
		err := s.store.Create(ctx, testutil.NewConfigurationBuilder().Build())
		s.ErrorIs(err, sentinel.ErrConflict)
	})
	s.T().Run("unknown credential type", func(t *testing.T) {
		err := s.store.Create(ctx, testutil.NewConfigurationBuilder().WithCredentialType("missing").Build())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
	s.T().Run("update of a missing row", func(t *testing.T) {
		err := s.store.Update(ctx, testutil.NewConfigurationBuilder().Build())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
