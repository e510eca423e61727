package applytojob

import (
	"context"
	"errors"
	"time"

	c "cvmatch/internal/core/domain/common"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	"cvmatch/internal/core/services/auth"
)

type Input struct {
	JobID job.ID
	Note  c.Optional[string]
	User  user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Application job.Application
}

type service struct {
	log                   logging.Logger
	jobRepository         job.JobRepository
	applicationRepository job.ApplicationRepository
	now                   func() time.Time
}

func New(
	log logging.Logger,
	jobRepository job.JobRepository,
	applicationRepository job.ApplicationRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if jobRepository == nil {
		panic(e.NewNilArgumentError("jobRepository"))
	}
	if applicationRepository == nil {
		panic(e.NewNilArgumentError("applicationRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		jobRepository:         jobRepository,
		applicationRepository: applicationRepository,
		now:                   now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if _, err := s.jobRepository.GetByID(ctx, input.JobID); err != nil {
		if errors.Is(err, job.ErrJobDoesNotExist) || errors.Is(err, context.Canceled) {
			return result, err
		}
		logging.Error(ctx, s.log, err, logging.Entry("jobID", input.JobID))
		return result, err
	}

	application, err := s.applicationRepository.Create(ctx, job.CreateApplicationInput{
		UserID:    input.User.ID,
		JobID:     input.JobID,
		Status:    job.StatusApplied,
		Note:      input.Note,
		CreatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, job.ErrApplicationAlreadyExists) || errors.Is(err, context.Canceled) {
			return result, err
		}
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("jobID", input.JobID),
			logging.Entry("userID", input.User.ID),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Job application created.",
		logging.Entry("applicationID", application.ID),
		logging.Entry("jobID", input.JobID),
		logging.Entry("userID", input.User.ID),
	)
	return Result{Application: application}, nil
}
