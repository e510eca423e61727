package response

import (
	"time"

	"cvmatch/internal/core/domain/job"
)

type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    *string   `json:"location,omitempty"`
	Description string    `json:"description"`
	URL         *string   `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (j *Job) FromDomainJob(dj job.Job) {
	j.ID = int64(dj.ID)
	j.Title = dj.Title
	j.Company = dj.Company
	if dj.Location.IsPresent {
		location := dj.Location.Value
		j.Location = &location
	}
	j.Description = dj.Description
	if dj.URL.IsPresent {
		url := dj.URL.Value
		j.URL = &url
	}
	j.CreatedAt = dj.CreatedAt
}

type Application struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	Status    string    `json:"status"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Application) FromDomainApplication(da job.Application) {
	a.ID = int64(da.ID)
	a.JobID = int64(da.JobID)
	a.Status = string(da.Status)
	if da.Note.IsPresent {
		note := da.Note.Value
		a.Note = &note
	}
	a.CreatedAt = da.CreatedAt
	a.UpdatedAt = da.UpdatedAt
}

type Match struct {
	JobID    int64    `json:"job_id"`
	Score    float64  `json:"score"`
	Matching []string `json:"matching_skills"`
	Missing  []string `json:"missing_skills"`
	Job      Job      `json:"job"`
}

func (m *Match) FromDomainMatch(dm job.MatchWithJob) {
	m.JobID = int64(dm.JobID)
	m.Score = dm.Score
	m.Matching = dm.Matching
	if m.Matching == nil {
		m.Matching = []string{}
	}
	m.Missing = dm.Missing
	if m.Missing == nil {
		m.Missing = []string{}
	}
	m.Job.FromDomainJob(dm.Job)
}
