package getcv

import (
	"context"
	"errors"
	"testing"
	"time"

	"cvmatch/internal/core/domain/cv"
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
	Logger       *logging.FakeLogger
	CVRepository *cv.FakeRepository
	Service      services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.CVRepository = cv.NewFakeRepository()
	suite.Service = New(suite.Logger, suite.CVRepository)
}

func TestGetCVService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	rec := s.createCV(OWNER_ID)

	result, err := s.Service.Run(
		context.Background(),
		Input{CVID: rec.ID, User: user.User{ID: OWNER_ID}},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(rec.ID, result.CV.ID)
}

func (s *testSuite) TestCVDoesNotExist() {
	_, err := s.Service.Run(
		context.Background(),
		Input{CVID: cv.ID(42), User: user.User{ID: OWNER_ID}},
	)

	s.Require().True(errors.Is(err, cv.ErrCVDoesNotExist))
}

func (s *testSuite) TestAnotherUsersCVLooksMissing() {
	rec := s.createCV(OWNER_ID)

	_, err := s.Service.Run(
		context.Background(),
		Input{CVID: rec.ID, User: user.User{ID: OTHER_ID}},
	)

	s.Require().True(errors.Is(err, cv.ErrCVDoesNotExist))
}

func (s *testSuite) createCV(userID user.ID) cv.CV {
	s.T().Helper()
	rec, err := s.CVRepository.Create(
		context.Background(),
		cv.CreateInput{
			UserID:      userID,
			FileName:    "cv.pdf",
			FileKey:     "cvs/test-file-key",
			ContentType: "application/pdf",
			Status:      cv.StatusUploaded,
			CreatedAt:   NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return rec
}
