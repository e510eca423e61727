package getcv

import (
	"context"
	"errors"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	"cvmatch/internal/core/services/auth"
)

type Input struct {
	CVID cv.ID
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	CV cv.CV
}

type service struct {
	log          logging.Logger
	cvRepository cv.Repository
}

func New(log logging.Logger, cvRepository cv.Repository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cvRepository == nil {
		panic(e.NewNilArgumentError("cvRepository"))
	}
	return &service{log: log, cvRepository: cvRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	record, err := s.cvRepository.GetByID(ctx, input.CVID)
	if err != nil {
		if errors.Is(err, cv.ErrCVDoesNotExist) || errors.Is(err, context.Canceled) {
			return result, err
		}
		logging.Error(ctx, s.log, err, logging.Entry("cvID", input.CVID))
		return result, err
	}
	// Another user's CV must be indistinguishable from a missing one.
	if record.UserID != input.User.ID {
		return result, cv.ErrCVDoesNotExist
	}
	return Result{CV: record}, nil
}
