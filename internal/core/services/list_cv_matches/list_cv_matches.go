package listcvmatches

import (
	"context"
	"errors"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
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
	Matches []job.MatchWithJob
}

type service struct {
	log             logging.Logger
	cvRepository    cv.Repository
	matchRepository job.MatchRepository
}

func New(
	log logging.Logger,
	cvRepository cv.Repository,
	matchRepository job.MatchRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cvRepository == nil {
		panic(e.NewNilArgumentError("cvRepository"))
	}
	if matchRepository == nil {
		panic(e.NewNilArgumentError("matchRepository"))
	}
	return &service{log: log, cvRepository: cvRepository, matchRepository: matchRepository}
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
	if record.UserID != input.User.ID {
		return result, cv.ErrCVDoesNotExist
	}

	matches, err := s.matchRepository.ListByCV(ctx, record.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("cvID", record.ID))
		return result, err
	}
	return Result{Matches: matches}, nil
}
