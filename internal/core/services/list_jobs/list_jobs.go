package listjobs

import (
	"context"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/services"
)

type Input struct{}

type Result struct {
	Jobs []job.Job
}

type service struct {
	log           logging.Logger
	jobRepository job.JobRepository
}

func New(log logging.Logger, jobRepository job.JobRepository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if jobRepository == nil {
		panic(e.NewNilArgumentError("jobRepository"))
	}
	return &service{log: log, jobRepository: jobRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	jobs, err := s.jobRepository.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	return Result{Jobs: jobs}, nil
}
