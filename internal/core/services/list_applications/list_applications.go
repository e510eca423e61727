package listapplications

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
	Applications []job.Application
}

type service struct {
	log                   logging.Logger
	applicationRepository job.ApplicationRepository
}

func New(log logging.Logger, applicationRepository job.ApplicationRepository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if applicationRepository == nil {
		panic(e.NewNilArgumentError("applicationRepository"))
	}
	return &service{log: log, applicationRepository: applicationRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	applications, err := s.applicationRepository.ListByUser(ctx, input.User.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	return Result{Applications: applications}, nil
}
