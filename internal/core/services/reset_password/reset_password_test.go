package resetpassword

import (
	"context"
	"errors"
	"testing"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/logging"
	uow "cvmatch/internal/core/domain/unit_of_work"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	RAW_TOKEN     = "test-raw-reset-token"
	NEW_PASSWORD  = "new-test-password"
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger                *logging.FakeLogger
	UnitOfWork            *uow.FakeUnitOfWork
	UserRepository        *user.FakeUserRepository
	SessionRepository     *user.FakeSessionRepository
	ResetTokenRepository  *user.FakeResetTokenRepository
	TokenHasher           *user.FakeResetTokenHasher
	PasswordHasher        *user.FakePasswordHasher
	SessionTokenGenerator *user.FakeSessionTokenGenerator
	Service               services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.UserRepository = suite.UnitOfWork.Context.UserRepository
	suite.SessionRepository = suite.UnitOfWork.Context.SessionRepository
	suite.ResetTokenRepository = suite.UnitOfWork.Context.ResetTokenRepository
	suite.TokenHasher = user.NewFakeResetTokenHasher()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.SessionTokenGenerator = user.NewFakeSessionTokenGenerator(SESSION_TOKEN)
	suite.Service = New(
		suite.Logger,
		suite.ResetTokenRepository,
		suite.TokenHasher,
		suite.PasswordHasher,
		suite.SessionTokenGenerator,
		suite.UnitOfWork,
		func() time.Time { return NOW },
	)
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()
	s.createToken(u.ID, RAW_TOKEN, NOW.Add(time.Minute))

	result, err := s.Service.Run(
		context.Background(),
		Input{Token: user.RawResetToken(RAW_TOKEN), NewPassword: user.RawPassword(NEW_PASSWORD)},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(user.SessionToken(SESSION_TOKEN), result.SessionToken)

	updated, err := s.UserRepository.GetByID(context.Background(), u.ID)
	assert.Nil(err)
	assert.True(s.PasswordHasher.ValidatePassword(user.RawPassword(NEW_PASSWORD), updated.PasswordHash.Value))

	sessionUser, err := s.SessionRepository.GetUserByToken(context.Background(), user.SessionToken(SESSION_TOKEN))
	assert.Nil(err)
	assert.Equal(u.ID, sessionUser.ID)

	assert.Len(s.ResetTokenRepository.TokensForUser(u.ID), 0)
	assert.True(s.UnitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestInvalidToken() {
	u := s.createUser()
	s.createToken(u.ID, RAW_TOKEN, NOW.Add(time.Minute))

	_, err := s.Service.Run(
		context.Background(),
		Input{Token: user.RawResetToken("unknown-token"), NewPassword: user.RawPassword(NEW_PASSWORD)},
	)

	assert := s.Require()
	assert.True(errors.Is(err, user.ErrInvalidResetToken))
	assert.Len(s.ResetTokenRepository.TokensForUser(u.ID), 1)
	assert.Equal(0, s.SessionRepository.SessionCount())
}

func (s *testSuite) TestExpiredToken() {
	u := s.createUser()
	s.createToken(u.ID, RAW_TOKEN, NOW.Add(-time.Minute))

	_, err := s.Service.Run(
		context.Background(),
		Input{Token: user.RawResetToken(RAW_TOKEN), NewPassword: user.RawPassword(NEW_PASSWORD)},
	)

	assert := s.Require()
	assert.True(errors.Is(err, user.ErrInvalidResetToken))
	assert.Equal(0, s.SessionRepository.SessionCount())
}

func (s *testSuite) TestTokenConsumedOnlyOnce() {
	u := s.createUser()
	s.createToken(u.ID, RAW_TOKEN, NOW.Add(time.Minute))

	input := Input{Token: user.RawResetToken(RAW_TOKEN), NewPassword: user.RawPassword(NEW_PASSWORD)}
	_, err := s.Service.Run(context.Background(), input)
	s.Require().Nil(err)

	_, err = s.Service.Run(context.Background(), input)
	s.Require().True(errors.Is(err, user.ErrInvalidResetToken))
}

func (s *testSuite) TestConsumingEitherTokenInvalidatesAll() {
	u := s.createUser()
	s.createToken(u.ID, RAW_TOKEN, NOW.Add(time.Minute))
	s.createToken(u.ID, "another-raw-token", NOW.Add(time.Minute))

	_, err := s.Service.Run(
		context.Background(),
		Input{Token: user.RawResetToken("another-raw-token"), NewPassword: user.RawPassword(NEW_PASSWORD)},
	)
	s.Require().Nil(err)
	s.Require().Len(s.ResetTokenRepository.TokensForUser(u.ID), 0)

	_, err = s.Service.Run(
		context.Background(),
		Input{Token: user.RawResetToken(RAW_TOKEN), NewPassword: user.RawPassword(NEW_PASSWORD)},
	)
	s.Require().True(errors.Is(err, user.ErrInvalidResetToken))
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	passwordHash, err := s.PasswordHasher.HashPassword(user.RawPassword("old-password"))
	if err != nil {
		s.FailNow(err.Error())
	}
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: c.NewOptional(passwordHash, true),
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}

func (s *testSuite) createToken(userID user.ID, rawToken string, expiresAt time.Time) {
	s.T().Helper()
	tokenHash, err := s.TokenHasher.HashToken(user.RawResetToken(rawToken))
	if err != nil {
		s.FailNow(err.Error())
	}
	_, err = s.ResetTokenRepository.Create(
		context.Background(),
		user.CreateResetTokenInput{
			TokenHash: tokenHash,
			UserID:    userID,
			ExpiresAt: expiresAt,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
}
