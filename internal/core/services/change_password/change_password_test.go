package changepassword

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
	EMAIL            = "test@test.test"
	CURRENT_PASSWORD = "current-test-password"
	NEW_PASSWORD     = "new-test-password"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
	)
}

func TestChangePasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{
			CurrentPassword: user.RawPassword(CURRENT_PASSWORD),
			NewPassword:     user.RawPassword(NEW_PASSWORD),
			User:            u,
		},
	)

	assert := s.Require()
	assert.Nil(err)
	updated, err := s.UserRepository.GetByID(context.Background(), u.ID)
	assert.Nil(err)
	assert.True(s.PasswordHasher.ValidatePassword(user.RawPassword(NEW_PASSWORD), updated.PasswordHash.Value))
}

func (s *testSuite) TestInvalidCurrentPassword() {
	u := s.createUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{
			CurrentPassword: user.RawPassword("wrong-password"),
			NewPassword:     user.RawPassword(NEW_PASSWORD),
			User:            u,
		},
	)

	assert := s.Require()
	assert.True(errors.Is(err, user.ErrInvalidCredentials))
	unchanged, err := s.UserRepository.GetByID(context.Background(), u.ID)
	assert.Nil(err)
	assert.True(
		s.PasswordHasher.ValidatePassword(user.RawPassword(CURRENT_PASSWORD), unchanged.PasswordHash.Value),
	)
}

func (s *testSuite) TestUserWithoutPassword() {
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{Email: c.NewEmail(EMAIL), CreatedAt: NOW},
	)
	s.Require().Nil(err)

	_, err = s.Service.Run(
		context.Background(),
		Input{
			CurrentPassword: user.RawPassword(CURRENT_PASSWORD),
			NewPassword:     user.RawPassword(NEW_PASSWORD),
			User:            u,
		},
	)
	s.Require().True(errors.Is(err, user.ErrInvalidCredentials))
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	passwordHash, err := s.PasswordHasher.HashPassword(user.RawPassword(CURRENT_PASSWORD))
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
