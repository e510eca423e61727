package job

import (
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/cv"
	"cvmatch/internal/core/domain/user"
)

type ID int64

type Job struct {
	ID          ID
	Title       string
	Company     string
	Location    c.Optional[string]
	Description string
	URL         c.Optional[string]
	CreatedAt   time.Time
}

type SavedJob struct {
	UserID    user.ID
	JobID     ID
	CreatedAt time.Time
}

type ApplicationID int64

type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffered      ApplicationStatus = "offered"
	StatusRejected     ApplicationStatus = "rejected"
	StatusWithdrawn    ApplicationStatus = "withdrawn"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffered, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

type Application struct {
	ID        ApplicationID
	UserID    user.ID
	JobID     ID
	Status    ApplicationStatus
	Note      c.Optional[string]
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Match is one CV-to-job score with the keyword evidence behind it.
type Match struct {
	CVID     cv.ID
	JobID    ID
	Score    float64
	Matching []string
	Missing  []string
}

type MatchWithJob struct {
	Match
	Job Job
}
