package cv

import (
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/user"
)

type ID int64

type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusAnalyzed   Status = "analyzed"
	StatusFailed     Status = "failed"
)

// Profile is the structured summary extracted from the CV text.
type Profile struct {
	Headline        string
	Summary         string
	YearsExperience uint32
	Skills          []string
}

type CV struct {
	ID          ID
	UserID      user.ID
	FileName    string
	FileKey     string
	ContentType string
	Status      Status
	Profile     c.Optional[Profile]
	CreatedAt   time.Time
	AnalyzedAt  c.Optional[time.Time]
}
