package savejob

import (
	"context"
	"errors"
	"time"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	"cvmatch/internal/core/services/auth"
)

type Input struct {
	JobID job.ID
	User  user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log                logging.Logger
	jobRepository      job.JobRepository
	savedJobRepository job.SavedJobRepository
	now                func() time.Time
}

func New(
	log logging.Logger,
	jobRepository job.JobRepository,
	savedJobRepository job.SavedJobRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if jobRepository == nil {
		panic(e.NewNilArgumentError("jobRepository"))
	}
	if savedJobRepository == nil {
		panic(e.NewNilArgumentError("savedJobRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		jobRepository:      jobRepository,
		savedJobRepository: savedJobRepository,
		now:                now,
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

	if err := s.savedJobRepository.Save(ctx, input.User.ID, input.JobID, s.now()); err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("jobID", input.JobID),
			logging.Entry("userID", input.User.ID),
		)
		return result, err
	}
	return result, nil
}
