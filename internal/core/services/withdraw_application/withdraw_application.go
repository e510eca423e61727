package withdrawapplication

import (
	"context"
	"errors"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	"cvmatch/internal/core/services/auth"
)

type Input struct {
	ApplicationID job.ApplicationID
	User          user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

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
	application, err := s.applicationRepository.GetByID(ctx, input.ApplicationID)
	if err != nil {
		if errors.Is(err, job.ErrApplicationDoesNotExist) || errors.Is(err, context.Canceled) {
			return result, err
		}
		logging.Error(ctx, s.log, err, logging.Entry("applicationID", input.ApplicationID))
		return result, err
	}
	if application.UserID != input.User.ID {
		return result, job.ErrApplicationDoesNotExist
	}

	if err := s.applicationRepository.Delete(ctx, application.ID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("applicationID", application.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Job application withdrawn.",
		logging.Entry("applicationID", application.ID),
		logging.Entry("userID", input.User.ID),
	)
	return result, nil
}
