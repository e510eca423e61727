package listsavedjobs

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
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Jobs []job.Job
}

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
	jobs, err := s.savedJobRepository.ListByUser(ctx, input.User.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	return Result{Jobs: jobs}, nil
}
