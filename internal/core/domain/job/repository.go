package job

import (
	"context"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/cv"
	"cvmatch/internal/core/domain/user"
)

type CreateJobInput struct {
	Title       string
	Company     string
	Location    c.Optional[string]
	Description string
	URL         c.Optional[string]
	CreatedAt   time.Time
}

type JobRepository interface {
	Create(ctx context.Context, input CreateJobInput) (Job, error)
	GetByID(ctx context.Context, id ID) (Job, error)
	List(ctx context.Context) ([]Job, error)
}

type SavedJobRepository interface {
	// Save is idempotent: saving an already saved job is not an error.
	Save(ctx context.Context, userID user.ID, jobID ID, at time.Time) error
	Unsave(ctx context.Context, userID user.ID, jobID ID) error
	ListByUser(ctx context.Context, userID user.ID) ([]Job, error)
}

type CreateApplicationInput struct {
	UserID    user.ID
	JobID     ID
	Status    ApplicationStatus
	Note      c.Optional[string]
	CreatedAt time.Time
}

type UpdateApplicationInput struct {
	ID        ApplicationID
	Status    c.Optional[ApplicationStatus]
	Note      c.Optional[string]
	UpdatedAt time.Time
}

type ApplicationRepository interface {
	Create(ctx context.Context, input CreateApplicationInput) (Application, error)
	GetByID(ctx context.Context, id ApplicationID) (Application, error)
	ListByUser(ctx context.Context, userID user.ID) ([]Application, error)
	Update(ctx context.Context, input UpdateApplicationInput) (Application, error)
	Delete(ctx context.Context, id ApplicationID) error
}

type MatchRepository interface {
	// ReplaceForCV atomically swaps all stored matches for a CV.
	ReplaceForCV(ctx context.Context, cvID cv.ID, matches []Match) error
	ListByCV(ctx context.Context, cvID cv.ID) ([]MatchWithJob, error)
}
