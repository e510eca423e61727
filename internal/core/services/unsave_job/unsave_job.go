package unsavejob

import (
	"context"

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
	savedJobRepository job.SavedJobRepository
}

func New(log logging.Logger, savedJobRepository job.SavedJobRepository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if savedJobRepository == nil {
		panic(e.NewNilArgumentError("savedJobRepository"))
	}
	return &service{log: log, savedJobRepository: savedJobRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.savedJobRepository.Unsave(ctx, input.User.ID, input.JobID); err != nil {
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
