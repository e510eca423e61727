package sendpasswordresettoken

import (
	"context"
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
	PASSWORD_HASH = "test-password-hash"
	RAW_TOKEN     = "test-raw-reset-token"
	VALID_FOR     = 30 * time.Minute
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger               *logging.FakeLogger
	UnitOfWork           *uow.FakeUnitOfWork
	UserRepository       *user.FakeUserRepository
	ResetTokenRepository *user.FakeResetTokenRepository
	TokenGenerator       *user.FakeResetTokenGenerator
	TokenHasher          *user.FakeResetTokenHasher
	TokenSender          *user.FakeResetTokenSender
	Service              services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.UserRepository = suite.UnitOfWork.Context.UserRepository
	suite.ResetTokenRepository = suite.UnitOfWork.Context.ResetTokenRepository
	suite.TokenGenerator = user.NewFakeResetTokenGenerator(RAW_TOKEN)
	suite.TokenHasher = user.NewFakeResetTokenHasher()
	suite.TokenSender = user.NewFakeResetTokenSender()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.UnitOfWork,
		suite.TokenGenerator,
		suite.TokenHasher,
		suite.TokenSender,
		VALID_FOR,
		func() time.Time { return NOW },
	)
}

func TestSendPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestTokenCreatedAndSent() {
	u := s.createUser()

	result, err := s.Service.Run(context.Background(), Input{Email: u.Email})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(user.RawResetToken(RAW_TOKEN), result.Token)

	tokens := s.ResetTokenRepository.TokensForUser(u.ID)
	assert.Len(tokens, 1)
	assert.True(s.TokenHasher.ValidateToken(user.RawResetToken(RAW_TOKEN), tokens[0].TokenHash))
	assert.Equal(NOW.Add(VALID_FOR), tokens[0].ExpiresAt)

	assert.Equal(1, s.TokenSender.SentCount())
	assert.Equal(user.RawResetToken(RAW_TOKEN), s.TokenSender.Sent[0].Token)
	assert.True(s.UnitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestRawTokenNeverStored() {
	u := s.createUser()

	_, err := s.Service.Run(context.Background(), Input{Email: u.Email})

	assert := s.Require()
	assert.Nil(err)
	for _, t := range s.ResetTokenRepository.TokensForUser(u.ID) {
		assert.NotEqual(string(t.TokenHash), RAW_TOKEN)
	}
}

func (s *testSuite) TestSuccessForUnknownEmail() {
	s.createUser()

	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail("unknown@test.test")},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(user.RawResetToken(""), result.Token)
	assert.Len(s.ResetTokenRepository.Tokens, 0)
	assert.Equal(0, s.TokenSender.SentCount())
}

func (s *testSuite) TestSuccessForUserWithoutPassword() {
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:     c.NewEmail(EMAIL),
			CreatedAt: NOW,
		},
	)
	s.Require().Nil(err)

	_, err = s.Service.Run(context.Background(), Input{Email: u.Email})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.ResetTokenRepository.Tokens, 0)
	assert.Equal(0, s.TokenSender.SentCount())
}

func (s *testSuite) TestSuccessEvenIfSendingFails() {
	u := s.createUser()
	s.TokenSender.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{Email: u.Email})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.ResetTokenRepository.TokensForUser(u.ID), 1)
}

func (s *testSuite) TestConsecutiveRequestsKeepSingleToken() {
	u := s.createUser()

	for i := 0; i < 3; i++ {
		_, err := s.Service.Run(context.Background(), Input{Email: u.Email})
		s.Require().Nil(err)
	}

	s.Require().Len(s.ResetTokenRepository.TokensForUser(u.ID), 1)
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}
