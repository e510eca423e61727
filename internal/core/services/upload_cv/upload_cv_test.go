package uploadcv

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
	FILE_NAME = "cv.pdf"
	FILE_KEY  = "cvs/test-file-key"
	USER_ID   = user.ID(1)
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger           *logging.FakeLogger
	CVRepository     *cv.FakeRepository
	FileStorage      *cv.FakeFileStorage
	FileKeyGenerator *cv.FakeFileKeyGenerator
	Scheduler        *cv.FakeAnalysisScheduler
	Service          services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.CVRepository = cv.NewFakeRepository()
	suite.FileStorage = cv.NewFakeFileStorage()
	suite.FileKeyGenerator = cv.NewFakeFileKeyGenerator(FILE_KEY)
	suite.Scheduler = cv.NewFakeAnalysisScheduler()
	suite.Service = New(
		suite.Logger,
		suite.CVRepository,
		suite.FileStorage,
		suite.FileKeyGenerator,
		suite.Scheduler,
		func() time.Time { return NOW },
	)
}

func TestUploadCVService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	data := []byte("%PDF-1.4 test data")

	result, err := s.Service.Run(
		context.Background(),
		Input{
			FileName:    FILE_NAME,
			ContentType: "application/pdf",
			Data:        data,
			User:        user.User{ID: USER_ID},
		},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(USER_ID, result.CV.UserID)
	assert.Equal(FILE_NAME, result.CV.FileName)
	assert.Equal(FILE_KEY, result.CV.FileKey)
	assert.Equal(cv.StatusUploaded, result.CV.Status)

	stored, err := s.FileStorage.Download(context.Background(), FILE_KEY)
	assert.Nil(err)
	assert.Equal(data, stored)

	assert.Len(s.Scheduler.Scheduled, 1)
	assert.Equal(result.CV.ID, s.Scheduler.Scheduled[0].ID)
}

func (s *testSuite) TestUnsupportedContentType() {
	_, err := s.Service.Run(
		context.Background(),
		Input{
			FileName:    "cv.png",
			ContentType: "image/png",
			Data:        []byte("not a cv"),
			User:        user.User{ID: USER_ID},
		},
	)

	assert := s.Require()
	assert.True(errors.Is(err, cv.ErrUnsupportedFileType))
	assert.Len(s.CVRepository.CVs, 0)
	assert.Len(s.FileStorage.Files, 0)
}

func (s *testSuite) TestStorageFailure() {
	s.FileStorage.ReturnError = true

	_, err := s.Service.Run(
		context.Background(),
		Input{
			FileName:    FILE_NAME,
			ContentType: "application/pdf",
			Data:        []byte("data"),
			User:        user.User{ID: USER_ID},
		},
	)

	assert := s.Require()
	assert.NotNil(err)
	assert.Len(s.CVRepository.CVs, 0)
	assert.Len(s.Scheduler.Scheduled, 0)
}
