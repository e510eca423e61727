package response

import (
	"time"

	"cvmatch/internal/core/domain/cv"
)

type Profile struct {
	Headline        string   `json:"headline"`
	Summary         string   `json:"summary"`
	YearsExperience uint32   `json:"years_experience"`
	Skills          []string `json:"skills"`
}

type CV struct {
	ID          int64      `json:"id"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	Status      string     `json:"status"`
	Profile     *Profile   `json:"profile,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	AnalyzedAt  *time.Time `json:"analyzed_at,omitempty"`
}

func (c *CV) FromDomainCV(dc cv.CV) {
	c.ID = int64(dc.ID)
	c.FileName = dc.FileName
	c.ContentType = dc.ContentType
	c.Status = string(dc.Status)
	if dc.Profile.IsPresent {
		skills := dc.Profile.Value.Skills
		if skills == nil {
			skills = []string{}
		}
		c.Profile = &Profile{
			Headline:        dc.Profile.Value.Headline,
			Summary:         dc.Profile.Value.Summary,
			YearsExperience: dc.Profile.Value.YearsExperience,
			Skills:          skills,
		}
	}
	c.CreatedAt = dc.CreatedAt
	if dc.AnalyzedAt.IsPresent {
		c.AnalyzedAt = &dc.AnalyzedAt.Value
	}
}
