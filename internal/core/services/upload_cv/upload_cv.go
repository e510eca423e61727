package uploadcv

import (
	"context"
	"errors"
	"time"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	"cvmatch/internal/core/services/auth"
)

var supportedContentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

type Input struct {
	FileName    string
	ContentType string
	Data        []byte
	User        user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	CV cv.CV
}

type service struct {
	log              logging.Logger
	cvRepository     cv.Repository
	fileStorage      cv.FileStorage
	fileKeyGenerator cv.FileKeyGenerator
	scheduler        cv.AnalysisScheduler
	now              func() time.Time
}

func New(
	log logging.Logger,
	cvRepository cv.Repository,
	fileStorage cv.FileStorage,
	fileKeyGenerator cv.FileKeyGenerator,
	scheduler cv.AnalysisScheduler,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cvRepository == nil {
		panic(e.NewNilArgumentError("cvRepository"))
	}
	if fileStorage == nil {
		panic(e.NewNilArgumentError("fileStorage"))
	}
	if fileKeyGenerator == nil {
		panic(e.NewNilArgumentError("fileKeyGenerator"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:              log,
		cvRepository:     cvRepository,
		fileStorage:      fileStorage,
		fileKeyGenerator: fileKeyGenerator,
		scheduler:        scheduler,
		now:              now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !supportedContentTypes[input.ContentType] {
		return result, cv.ErrUnsupportedFileType
	}

	fileKey := s.fileKeyGenerator.GenerateFileKey()
	if err := s.fileStorage.Upload(ctx, fileKey, input.ContentType, input.Data); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not upload CV file.",
			logging.Entry("userID", input.User.ID),
			logging.Entry("fileKey", fileKey),
			logging.Entry("err", err),
		)
		return result, err
	}

	createdCV, err := s.cvRepository.Create(ctx, cv.CreateInput{
		UserID:      input.User.ID,
		FileName:    input.FileName,
		FileKey:     fileKey,
		ContentType: input.ContentType,
		Status:      cv.StatusUploaded,
		CreatedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not create CV record.",
			logging.Entry("userID", input.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.scheduler.ScheduleAnalysis(ctx, createdCV); err != nil {
		s.log.Error(
			ctx,
			"Could not schedule CV analysis.",
			logging.Entry("cvID", createdCV.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"CV uploaded, analysis scheduled.",
		logging.Entry("cvID", createdCV.ID),
		logging.Entry("userID", input.User.ID),
	)
	return Result{CV: createdCV}, nil
}
