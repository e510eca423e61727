package updateapplication

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
	ApplicationID job.ApplicationID
	Status        c.Optional[job.ApplicationStatus]
	Note          c.Optional[string]
	User          user.User
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
	applicationRepository job.ApplicationRepository
	now                   func() time.Time
}

func New(
	log logging.Logger,
	applicationRepository job.ApplicationRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if applicationRepository == nil {
		panic(e.NewNilArgumentError("applicationRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, applicationRepository: applicationRepository, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Status.IsPresent && !input.Status.Value.IsValid() {
		return result, job.ErrInvalidApplicationStatus
	}

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

	updated, err := s.applicationRepository.Update(ctx, job.UpdateApplicationInput{
		ID:        application.ID,
		Status:    input.Status,
		Note:      input.Note,
		UpdatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, job.ErrApplicationDoesNotExist) || errors.Is(err, context.Canceled) {
			return result, err
		}
		logging.Error(ctx, s.log, err, logging.Entry("applicationID", input.ApplicationID))
		return result, err
	}
	return Result{Application: updated}, nil
}
