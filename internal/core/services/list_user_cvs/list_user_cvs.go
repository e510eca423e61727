package listusercvs

import (
	"context"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
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
	CVs []cv.CV
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
	cvs, err := s.cvRepository.ListByUser(ctx, input.User.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	return Result{CVs: cvs}, nil
}
