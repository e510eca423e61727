package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/cv"
	"cvmatch/internal/core/domain/user"
)

type FakeJobRepository struct {
	Jobs        []Job
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeJobRepository() *FakeJobRepository {
	return &FakeJobRepository{Jobs: make([]Job, 0, 10)}
}

func (r *FakeJobRepository) Create(ctx context.Context, input CreateJobInput) (j Job, err error) {
	if r.ReturnError {
		return j, fmt.Errorf("could not create job %q", input.Title)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, existing := range r.Jobs {
		maxID = existing.ID
	}
	j = Job{
		ID:          maxID + 1,
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		Description: input.Description,
		URL:         input.URL,
		CreatedAt:   input.CreatedAt,
	}
	r.Jobs = append(r.Jobs, j)
	return j, nil
}

func (r *FakeJobRepository) GetByID(ctx context.Context, id ID) (j Job, err error) {
	if r.ReturnError {
		return j, fmt.Errorf("could not get job %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Jobs {
		if existing.ID == id {
			return existing, nil
		}
	}
	return j, ErrJobDoesNotExist
}

func (r *FakeJobRepository) List(ctx context.Context) ([]Job, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list jobs")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	jobs := make([]Job, len(r.Jobs))
	copy(jobs, r.Jobs)
	return jobs, nil
}

type savedKey struct {
	userID user.ID
	jobID  ID
}

type FakeSavedJobRepository struct {
	JobRepository *FakeJobRepository
	Saved         map[savedKey]time.Time
	ReturnError   bool
	lock          sync.Mutex
}

func NewFakeSavedJobRepository(jobRepository *FakeJobRepository) *FakeSavedJobRepository {
	return &FakeSavedJobRepository{
		JobRepository: jobRepository,
		Saved:         make(map[savedKey]time.Time),
	}
}

func (r *FakeSavedJobRepository) Save(ctx context.Context, userID user.ID, jobID ID, at time.Time) error {
	if r.ReturnError {
		return fmt.Errorf("could not save job %d", jobID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	key := savedKey{userID: userID, jobID: jobID}
	if _, ok := r.Saved[key]; !ok {
		r.Saved[key] = at
	}
	return nil
}

func (r *FakeSavedJobRepository) Unsave(ctx context.Context, userID user.ID, jobID ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not unsave job %d", jobID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.Saved, savedKey{userID: userID, jobID: jobID})
	return nil
}

func (r *FakeSavedJobRepository) ListByUser(ctx context.Context, userID user.ID) ([]Job, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list saved jobs for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	jobs := make([]Job, 0)
	for key := range r.Saved {
		if key.userID != userID {
			continue
		}
		j, err := r.JobRepository.GetByID(ctx, key.jobID)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (r *FakeSavedJobRepository) IsSaved(userID user.ID, jobID ID) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	_, ok := r.Saved[savedKey{userID: userID, jobID: jobID}]
	return ok
}

type FakeApplicationRepository struct {
	Applications []Application
	ReturnError  bool
	lock         sync.Mutex
}

func NewFakeApplicationRepository() *FakeApplicationRepository {
	return &FakeApplicationRepository{Applications: make([]Application, 0, 10)}
}

func (r *FakeApplicationRepository) Create(ctx context.Context, input CreateApplicationInput) (a Application, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not create application for job %d", input.JobID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ApplicationID(0)
	for _, existing := range r.Applications {
		if existing.UserID == input.UserID && existing.JobID == input.JobID {
			return a, ErrApplicationAlreadyExists
		}
		maxID = existing.ID
	}
	a = Application{
		ID:        maxID + 1,
		UserID:    input.UserID,
		JobID:     input.JobID,
		Status:    input.Status,
		Note:      input.Note,
		CreatedAt: input.CreatedAt,
		UpdatedAt: input.CreatedAt,
	}
	r.Applications = append(r.Applications, a)
	return a, nil
}

func (r *FakeApplicationRepository) GetByID(ctx context.Context, id ApplicationID) (a Application, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not get application %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Applications {
		if existing.ID == id {
			return existing, nil
		}
	}
	return a, ErrApplicationDoesNotExist
}

func (r *FakeApplicationRepository) ListByUser(ctx context.Context, userID user.ID) ([]Application, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list applications for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	applications := make([]Application, 0)
	for _, existing := range r.Applications {
		if existing.UserID == userID {
			applications = append(applications, existing)
		}
	}
	return applications, nil
}

func (r *FakeApplicationRepository) Update(ctx context.Context, input UpdateApplicationInput) (a Application, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not update application %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Applications {
		if r.Applications[ix].ID != input.ID {
			continue
		}
		if input.Status.IsPresent {
			r.Applications[ix].Status = input.Status.Value
		}
		if input.Note.IsPresent {
			r.Applications[ix].Note = c.NewOptional(input.Note.Value, true)
		}
		r.Applications[ix].UpdatedAt = input.UpdatedAt
		return r.Applications[ix], nil
	}
	return a, ErrApplicationDoesNotExist
}

func (r *FakeApplicationRepository) Delete(ctx context.Context, id ApplicationID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete application %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Applications {
		if r.Applications[ix].ID == id {
			r.Applications = append(r.Applications[:ix], r.Applications[ix+1:]...)
			return nil
		}
	}
	return ErrApplicationDoesNotExist
}

type FakeMatchRepository struct {
	JobRepository *FakeJobRepository
	Matches       map[cv.ID][]Match
	ReturnError   bool
	lock          sync.Mutex
}

func NewFakeMatchRepository(jobRepository *FakeJobRepository) *FakeMatchRepository {
	return &FakeMatchRepository{
		JobRepository: jobRepository,
		Matches:       make(map[cv.ID][]Match),
	}
}

func (r *FakeMatchRepository) ReplaceForCV(ctx context.Context, cvID cv.ID, matches []Match) error {
	if r.ReturnError {
		return fmt.Errorf("could not replace matches for cv %d", cvID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Matches[cvID] = matches
	return nil
}

func (r *FakeMatchRepository) ListByCV(ctx context.Context, cvID cv.ID) ([]MatchWithJob, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list matches for cv %d", cvID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]MatchWithJob, 0, len(r.Matches[cvID]))
	for _, m := range r.Matches[cvID] {
		j, err := r.JobRepository.GetByID(ctx, m.JobID)
		if err != nil {
			return nil, err
		}
		result = append(result, MatchWithJob{Match: m, Job: j})
	}
	return result, nil
}
