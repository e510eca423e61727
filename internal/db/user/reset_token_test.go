package user

import (
	"context"
	"testing"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	TOKEN_HASH         = "test-token-hash"
	ANOTHER_TOKEN_HASH = "another-test-token-hash"
)

type resetTokenTestSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	userRepo *PgxUserRepository
	repo     *PgxResetTokenRepository
}

func (suite *resetTokenTestSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.userRepo = NewPgxRepository(suite.pool)
	suite.repo = NewPgxResetTokenRepository(suite.pool)
}

func (suite *resetTokenTestSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *resetTokenTestSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxResetTokenRepository(t *testing.T) {
	suite.Run(t, new(resetTokenTestSuite))
}

func (s *resetTokenTestSuite) TestCreateAndListActive() {
	u := s.createUser("test@test.test")

	token, err := s.repo.Create(context.Background(), user.CreateResetTokenInput{
		TokenHash: TOKEN_HASH,
		UserID:    u.ID,
		ExpiresAt: NOW.Add(30 * time.Minute),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(user.ResetTokenHash(TOKEN_HASH), token.TokenHash)
	assert.Equal(u.ID, token.UserID)

	active, err := s.repo.ListActive(context.Background(), NOW)
	assert.Nil(err)
	assert.Len(active, 1)
	assert.Equal(user.ResetTokenHash(TOKEN_HASH), active[0].TokenHash)
	assert.Equal(u.ID, active[0].UserID)
	assert.True(active[0].ExpiresAt.After(NOW))
}

func (s *resetTokenTestSuite) TestListActiveSkipsExpiredTokens() {
	u := s.createUser("test@test.test")
	s.createToken(u.ID, TOKEN_HASH, NOW.Add(-time.Minute))
	s.createToken(u.ID, ANOTHER_TOKEN_HASH, NOW.Add(time.Minute))

	active, err := s.repo.ListActive(context.Background(), NOW)

	assert := s.Require()
	assert.Nil(err)
	assert.Len(active, 1)
	assert.Equal(user.ResetTokenHash(ANOTHER_TOKEN_HASH), active[0].TokenHash)
}

func (s *resetTokenTestSuite) TestTokenExpiringExactlyNowIsNotActive() {
	u := s.createUser("test@test.test")
	s.createToken(u.ID, TOKEN_HASH, NOW)

	active, err := s.repo.ListActive(context.Background(), NOW)

	assert := s.Require()
	assert.Nil(err)
	assert.Len(active, 0)
}

func (s *resetTokenTestSuite) TestDeleteForUser() {
	u := s.createUser("test@test.test")
	other := s.createUser("other@test.test")
	s.createToken(u.ID, TOKEN_HASH, NOW.Add(time.Minute))
	s.createToken(other.ID, ANOTHER_TOKEN_HASH, NOW.Add(time.Minute))

	err := s.repo.DeleteForUser(context.Background(), u.ID)

	assert := s.Require()
	assert.Nil(err)
	active, err := s.repo.ListActive(context.Background(), NOW)
	assert.Nil(err)
	assert.Len(active, 1)
	assert.Equal(other.ID, active[0].UserID)
}

func (s *resetTokenTestSuite) TestDeleteForUserWithoutTokensSucceeds() {
	u := s.createUser("test@test.test")

	err := s.repo.DeleteForUser(context.Background(), u.ID)

	s.Require().Nil(err)
}

func (s *resetTokenTestSuite) createUser(email string) user.User {
	s.T().Helper()
	u, err := s.userRepo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(email),
		PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
		CreatedAt:    NOW,
	})
	s.Require().Nil(err)
	return u
}

func (s *resetTokenTestSuite) createToken(userID user.ID, hash string, expiresAt time.Time) {
	s.T().Helper()
	_, err := s.repo.Create(context.Background(), user.CreateResetTokenInput{
		TokenHash: user.ResetTokenHash(hash),
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
	s.Require().Nil(err)
}
