package createjob

import (
	"context"
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
	Title       string
	Company     string
	Location    c.Optional[string]
	Description string
	URL         c.Optional[string]
	User        user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Job job.Job
}

type service struct {
	log           logging.Logger
	jobRepository job.JobRepository
	now           func() time.Time
}

func New(
	log logging.Logger,
	jobRepository job.JobRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if jobRepository == nil {
		panic(e.NewNilArgumentError("jobRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, jobRepository: jobRepository, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	created, err := s.jobRepository.Create(ctx, job.CreateJobInput{
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		Description: input.Description,
		URL:         input.URL,
		CreatedAt:   s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("title", input.Title))
		return result, err
	}

	s.log.Info(
		ctx,
		"Job created.",
		logging.Entry("jobID", created.ID),
		logging.Entry("userID", input.User.ID),
	)
	return Result{Job: created}, nil
}
