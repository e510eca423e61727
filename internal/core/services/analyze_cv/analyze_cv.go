package analyzecv

import (
	"context"
	"errors"
	"strings"
	"time"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/services"
)

type Input struct {
	CVID cv.ID
}

type Result struct {
	CV      cv.CV
	Matches []job.Match
}

type service struct {
	log             logging.Logger
	cvRepository    cv.Repository
	jobRepository   job.JobRepository
	matchRepository job.MatchRepository
	fileStorage     cv.FileStorage
	extractor       cv.TextExtractor
	analyzer        cv.ProfileAnalyzer
	publisher       cv.AnalyzedEventPublisher
	now             func() time.Time
}

func New(
	log logging.Logger,
	cvRepository cv.Repository,
	jobRepository job.JobRepository,
	matchRepository job.MatchRepository,
	fileStorage cv.FileStorage,
	extractor cv.TextExtractor,
	analyzer cv.ProfileAnalyzer,
	publisher cv.AnalyzedEventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cvRepository == nil {
		panic(e.NewNilArgumentError("cvRepository"))
	}
	if jobRepository == nil {
		panic(e.NewNilArgumentError("jobRepository"))
	}
	if matchRepository == nil {
		panic(e.NewNilArgumentError("matchRepository"))
	}
	if fileStorage == nil {
		panic(e.NewNilArgumentError("fileStorage"))
	}
	if extractor == nil {
		panic(e.NewNilArgumentError("extractor"))
	}
	if analyzer == nil {
		panic(e.NewNilArgumentError("analyzer"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		cvRepository:    cvRepository,
		jobRepository:   jobRepository,
		matchRepository: matchRepository,
		fileStorage:     fileStorage,
		extractor:       extractor,
		analyzer:        analyzer,
		publisher:       publisher,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	record, err := s.cvRepository.GetByID(ctx, input.CVID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not load CV for analysis.",
			logging.Entry("cvID", input.CVID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.cvRepository.SetStatus(ctx, record.ID, cv.StatusProcessing); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("cvID", record.ID))
		return result, err
	}

	analyzed, matches, err := s.analyze(ctx, record)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"CV analysis failed.",
			logging.Entry("cvID", record.ID),
			logging.Entry("err", err),
		)
		if stErr := s.cvRepository.SetStatus(ctx, record.ID, cv.StatusFailed); stErr != nil {
			logging.Error(ctx, s.log, stErr, logging.Entry("cvID", record.ID))
		}
		return result, err
	}

	if err := s.publisher.PublishAnalyzed(ctx, analyzed); err != nil {
		// The analysis result is already durable, so a notification
		// failure must not flip the CV back to failed.
		s.log.Error(
			ctx,
			"Could not publish CV analyzed event.",
			logging.Entry("cvID", analyzed.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"CV analyzed.",
		logging.Entry("cvID", analyzed.ID),
		logging.Entry("userID", analyzed.UserID),
		logging.Entry("matchCount", len(matches)),
	)
	return Result{CV: analyzed, Matches: matches}, nil
}

func (s *service) analyze(ctx context.Context, record cv.CV) (cv.CV, []job.Match, error) {
	data, err := s.fileStorage.Download(ctx, record.FileKey)
	if err != nil {
		return cv.CV{}, nil, err
	}

	text, err := s.extractor.ExtractText(record.ContentType, data)
	if err != nil {
		return cv.CV{}, nil, err
	}

	profile, err := s.analyzer.AnalyzeProfile(ctx, text)
	if err != nil {
		return cv.CV{}, nil, err
	}

	analyzedAt := s.now()
	if err := s.cvRepository.SetProfile(ctx, record.ID, profile, analyzedAt); err != nil {
		return cv.CV{}, nil, err
	}

	matches, err := s.scoreJobs(ctx, record.ID, text, profile)
	if err != nil {
		return cv.CV{}, nil, err
	}
	if err := s.matchRepository.ReplaceForCV(ctx, record.ID, matches); err != nil {
		return cv.CV{}, nil, err
	}

	analyzed, err := s.cvRepository.GetByID(ctx, record.ID)
	if err != nil {
		return cv.CV{}, nil, err
	}
	return analyzed, matches, nil
}

func (s *service) scoreJobs(ctx context.Context, cvID cv.ID, text string, profile cv.Profile) ([]job.Match, error) {
	jobs, err := s.jobRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	// Extracted skills carry more signal than raw CV text alone, so they
	// join the keyword set before scoring.
	cvKeywords := job.ExtractKeywords(text + " " + strings.Join(profile.Skills, " "))

	matches := make([]job.Match, 0, len(jobs))
	for _, j := range jobs {
		jobText := strings.Join([]string{j.Title, j.Company, j.Description}, " ")
		score, matching, missing := job.ScoreMatch(cvKeywords, jobText)
		matches = append(matches, job.Match{
			CVID:     cvID,
			JobID:    j.ID,
			Score:    score,
			Matching: matching,
			Missing:  missing,
		})
	}
	return matches, nil
}
