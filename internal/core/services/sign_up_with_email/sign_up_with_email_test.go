package signupwithemail

import (
	"context"
	"errors"
	"testing"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD      = "test-password"
	FULL_NAME     = "Test Person"
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger                *logging.FakeLogger
	UserRepository        *user.FakeUserRepository
	SessionRepository     *user.FakeSessionRepository
	PasswordHasher        *user.FakePasswordHasher
	SessionTokenGenerator *user.FakeSessionTokenGenerator
	Service               services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.SessionTokenGenerator = user.NewFakeSessionTokenGenerator(SESSION_TOKEN)
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.SessionRepository,
		suite.PasswordHasher,
		suite.SessionTokenGenerator,
		func() time.Time { return NOW },
	)
}

func TestSignUpWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	result, err := s.Service.Run(
		context.Background(),
		Input{
			Email:    c.NewEmail(EMAIL),
			Password: user.RawPassword(PASSWORD),
			FullName: c.NewOptional(FULL_NAME, true),
		},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(c.NewEmail(EMAIL), result.User.Email)
	assert.Equal(user.SessionToken(SESSION_TOKEN), result.Token)
	assert.True(result.User.PasswordHash.IsPresent)
	assert.True(
		s.PasswordHasher.ValidatePassword(user.RawPassword(PASSWORD), result.User.PasswordHash.Value),
	)

	sessionUser, err := s.SessionRepository.GetUserByToken(
		context.Background(),
		user.SessionToken(SESSION_TOKEN),
	)
	assert.Nil(err)
	assert.Equal(result.User.ID, sessionUser.ID)
}

func (s *testSuite) TestPasswordNeverStoredRaw() {
	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Password: user.RawPassword(PASSWORD)},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.NotEqual(user.PasswordHash(PASSWORD), result.User.PasswordHash.Value)
}

func (s *testSuite) TestEmailAlreadyExists() {
	input := Input{Email: c.NewEmail(EMAIL), Password: user.RawPassword(PASSWORD)}
	_, err := s.Service.Run(context.Background(), input)
	s.Require().Nil(err)

	_, err = s.Service.Run(context.Background(), input)
	s.Require().True(errors.Is(err, user.ErrEmailAlreadyExists))
	s.Require().Equal(1, s.SessionRepository.SessionCount())
}
