package cv

import (
	"context"
	"fmt"
	"sync"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/user"
)

type FakeRepository struct {
	CVs         []CV
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{CVs: make([]CV, 0, 10)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (rec CV, err error) {
	if r.ReturnError {
		return rec, fmt.Errorf("could not create cv for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, existing := range r.CVs {
		maxID = existing.ID
	}
	rec = CV{
		ID:          maxID + 1,
		UserID:      input.UserID,
		FileName:    input.FileName,
		FileKey:     input.FileKey,
		ContentType: input.ContentType,
		Status:      input.Status,
		CreatedAt:   input.CreatedAt,
	}
	r.CVs = append(r.CVs, rec)
	return rec, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (rec CV, err error) {
	if r.ReturnError {
		return rec, fmt.Errorf("could not get cv %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.CVs {
		if existing.ID == id {
			return existing, nil
		}
	}
	return rec, ErrCVDoesNotExist
}

func (r *FakeRepository) ListByUser(ctx context.Context, userID user.ID) ([]CV, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list cvs for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	cvs := make([]CV, 0)
	for _, existing := range r.CVs {
		if existing.UserID == userID {
			cvs = append(cvs, existing)
		}
	}
	return cvs, nil
}

func (r *FakeRepository) SetStatus(ctx context.Context, id ID, status Status) error {
	if r.ReturnError {
		return fmt.Errorf("could not set status for cv %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.CVs {
		if r.CVs[ix].ID == id {
			r.CVs[ix].Status = status
			return nil
		}
	}
	return ErrCVDoesNotExist
}

func (r *FakeRepository) SetProfile(ctx context.Context, id ID, profile Profile, analyzedAt time.Time) error {
	if r.ReturnError {
		return fmt.Errorf("could not set profile for cv %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.CVs {
		if r.CVs[ix].ID == id {
			r.CVs[ix].Profile = c.NewOptional(profile, true)
			r.CVs[ix].Status = StatusAnalyzed
			r.CVs[ix].AnalyzedAt = c.NewOptional(analyzedAt, true)
			return nil
		}
	}
	return ErrCVDoesNotExist
}

type FakeFileStorage struct {
	Files       map[string][]byte
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeFileStorage() *FakeFileStorage {
	return &FakeFileStorage{Files: make(map[string][]byte)}
}

func (s *FakeFileStorage) Upload(ctx context.Context, key string, contentType string, data []byte) error {
	if s.ReturnError {
		return fmt.Errorf("could not upload file %s", key)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Files[key] = data
	return nil
}

func (s *FakeFileStorage) Download(ctx context.Context, key string) ([]byte, error) {
	if s.ReturnError {
		return nil, fmt.Errorf("could not download file %s", key)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	data, ok := s.Files[key]
	if !ok {
		return nil, fmt.Errorf("file %s does not exist", key)
	}
	return data, nil
}

type FakeFileKeyGenerator struct {
	Key string
}

func NewFakeFileKeyGenerator(key string) *FakeFileKeyGenerator {
	return &FakeFileKeyGenerator{Key: key}
}

func (g *FakeFileKeyGenerator) GenerateFileKey() string {
	return g.Key
}

type FakeTextExtractor struct {
	Text        string
	ReturnError bool
}

func NewFakeTextExtractor(text string) *FakeTextExtractor {
	return &FakeTextExtractor{Text: text}
}

func (e *FakeTextExtractor) ExtractText(contentType string, data []byte) (string, error) {
	if e.ReturnError {
		return "", ErrUnsupportedFileType
	}
	return e.Text, nil
}

type FakeProfileAnalyzer struct {
	Profile     Profile
	ReturnError bool
}

func NewFakeProfileAnalyzer(profile Profile) *FakeProfileAnalyzer {
	return &FakeProfileAnalyzer{Profile: profile}
}

func (a *FakeProfileAnalyzer) AnalyzeProfile(ctx context.Context, text string) (Profile, error) {
	if a.ReturnError {
		return Profile{}, fmt.Errorf("could not analyze profile")
	}
	return a.Profile, nil
}

type FakeAnalysisScheduler struct {
	Scheduled   []CV
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeAnalysisScheduler() *FakeAnalysisScheduler {
	return &FakeAnalysisScheduler{}
}

func (s *FakeAnalysisScheduler) ScheduleAnalysis(ctx context.Context, rec CV) error {
	if s.ReturnError {
		return fmt.Errorf("could not schedule analysis for cv %d", rec.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Scheduled = append(s.Scheduled, rec)
	return nil
}

type FakeAnalyzedEventPublisher struct {
	Published   []CV
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeAnalyzedEventPublisher() *FakeAnalyzedEventPublisher {
	return &FakeAnalyzedEventPublisher{}
}

func (p *FakeAnalyzedEventPublisher) PublishAnalyzed(ctx context.Context, rec CV) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish analyzed event for cv %d", rec.ID)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, rec)
	return nil
}
