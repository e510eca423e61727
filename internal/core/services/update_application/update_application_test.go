package updateapplication

import (
	"context"
	"errors"
	"testing"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	OWNER_ID = user.ID(1)
	OTHER_ID = user.ID(2)
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger                *logging.FakeLogger
	ApplicationRepository *job.FakeApplicationRepository
	Service               services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.ApplicationRepository = job.NewFakeApplicationRepository()
	suite.Service = New(
		suite.Logger,
		suite.ApplicationRepository,
		func() time.Time { return NOW },
	)
}

func TestUpdateApplicationService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestUpdateStatus() {
	a := s.createApplication(OWNER_ID)

	result, err := s.Service.Run(
		context.Background(),
		Input{
			ApplicationID: a.ID,
			Status:        c.NewOptional(job.StatusInterviewing, true),
			User:          user.User{ID: OWNER_ID},
		},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(job.StatusInterviewing, result.Application.Status)
}

func (s *testSuite) TestInvalidStatus() {
	a := s.createApplication(OWNER_ID)

	_, err := s.Service.Run(
		context.Background(),
		Input{
			ApplicationID: a.ID,
			Status:        c.NewOptional(job.ApplicationStatus("bogus"), true),
			User:          user.User{ID: OWNER_ID},
		},
	)

	s.Require().True(errors.Is(err, job.ErrInvalidApplicationStatus))
}

func (s *testSuite) TestAnotherUsersApplicationLooksMissing() {
	a := s.createApplication(OWNER_ID)

	_, err := s.Service.Run(
		context.Background(),
		Input{
			ApplicationID: a.ID,
			Status:        c.NewOptional(job.StatusInterviewing, true),
			User:          user.User{ID: OTHER_ID},
		},
	)

	s.Require().True(errors.Is(err, job.ErrApplicationDoesNotExist))
}

func (s *testSuite) TestApplicationDoesNotExist() {
	_, err := s.Service.Run(
		context.Background(),
		Input{ApplicationID: job.ApplicationID(42), User: user.User{ID: OWNER_ID}},
	)

	s.Require().True(errors.Is(err, job.ErrApplicationDoesNotExist))
}

func (s *testSuite) createApplication(userID user.ID) job.Application {
	s.T().Helper()
	a, err := s.ApplicationRepository.Create(
		context.Background(),
		job.CreateApplicationInput{
			UserID:    userID,
			JobID:     job.ID(1),
			Status:    job.StatusApplied,
			CreatedAt: NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return a
}
