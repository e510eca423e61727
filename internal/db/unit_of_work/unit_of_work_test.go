package uow

import (
	"context"
	"testing"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/db"
	dbuser "cvmatch/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
	TOKEN_HASH    = "test-token-hash"
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Date(2024, 3, 15, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool       *pgxpool.Pool
	uow        *PgxUnitOfWork
	users      *dbuser.PgxUserRepository
	sessions   *dbuser.PgxSessionRepository
	resetToken *dbuser.PgxResetTokenRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.uow = NewPgxUnitOfWork(suite.pool)
	suite.users = dbuser.NewPgxRepository(suite.pool)
	suite.sessions = dbuser.NewPgxSessionRepository(suite.pool)
	suite.resetToken = dbuser.NewPgxResetTokenRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCommitMakesChangesVisible() {
	u := s.createUser()
	s.createToken(u.ID)

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)

	err = uow.ResetTokens().DeleteForUser(ctx, u.ID)
	s.Require().Nil(err)
	err = uow.Users().SetPassword(ctx, u.ID, user.PasswordHash("new-password-hash"))
	s.Require().Nil(err)
	err = uow.Sessions().Create(ctx, user.CreateSessionInput{
		UserID:    u.ID,
		Token:     user.SessionToken(SESSION_TOKEN),
		CreatedAt: NOW,
	})
	s.Require().Nil(err)
	err = uow.Commit(ctx)
	s.Require().Nil(err)

	assert := s.Require()
	active, err := s.resetToken.ListActive(ctx, NOW)
	assert.Nil(err)
	assert.Len(active, 0)
	updated, err := s.users.GetByID(ctx, u.ID)
	assert.Nil(err)
	assert.Equal(user.PasswordHash("new-password-hash"), updated.PasswordHash.Value)
	sessionUser, err := s.sessions.GetUserByToken(ctx, user.SessionToken(SESSION_TOKEN))
	assert.Nil(err)
	assert.Equal(u.ID, sessionUser.ID)
}

func (s *testSuite) TestRollbackDiscardsAllChanges() {
	u := s.createUser()
	s.createToken(u.ID)

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	err = uow.ResetTokens().DeleteForUser(ctx, u.ID)
	s.Require().Nil(err)
	err = uow.Users().SetPassword(ctx, u.ID, user.PasswordHash("new-password-hash"))
	s.Require().Nil(err)
	err = uow.Sessions().Create(ctx, user.CreateSessionInput{
		UserID:    u.ID,
		Token:     user.SessionToken(SESSION_TOKEN),
		CreatedAt: NOW,
	})
	s.Require().Nil(err)
	err = uow.Rollback(ctx)
	s.Require().Nil(err)

	assert := s.Require()
	active, err := s.resetToken.ListActive(ctx, NOW)
	assert.Nil(err)
	assert.Len(active, 1)
	unchanged, err := s.users.GetByID(ctx, u.ID)
	assert.Nil(err)
	assert.Equal(user.PasswordHash(PASSWORD_HASH), unchanged.PasswordHash.Value)
	_, err = s.sessions.GetUserByToken(ctx, user.SessionToken(SESSION_TOKEN))
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (s *testSuite) TestChangesInvisibleBeforeCommit() {
	u := s.createUser()
	s.createToken(u.ID)

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)

	err = uow.ResetTokens().DeleteForUser(ctx, u.ID)
	s.Require().Nil(err)

	active, err := s.resetToken.ListActive(ctx, NOW)
	s.Require().Nil(err)
	s.Require().Len(active, 1)
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.users.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
		CreatedAt:    NOW,
	})
	s.Require().Nil(err)
	return u
}

func (s *testSuite) createToken(userID user.ID) {
	s.T().Helper()
	_, err := s.resetToken.Create(context.Background(), user.CreateResetTokenInput{
		TokenHash: user.ResetTokenHash(TOKEN_HASH),
		UserID:    userID,
		ExpiresAt: NOW.Add(30 * time.Minute),
	})
	s.Require().Nil(err)
}
