package job

import (
	"context"
	"time"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PgxMatchRepository struct {
	pool *pgxpool.Pool
}

// NewPgxMatchRepository takes the pool rather than DBTX because ReplaceForCV
// opens its own transaction.
func NewPgxMatchRepository(pool *pgxpool.Pool) *PgxMatchRepository {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	return &PgxMatchRepository{pool: pool}
}

func (r *PgxMatchRepository) ReplaceForCV(ctx context.Context, cvID cv.ID, matches []job.Match) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cv_match WHERE cv_id = $1`, int64(cvID)); err != nil {
		return err
	}
	for _, m := range matches {
		matching := &pgtype.TextArray{}
		if err := matching.Set(m.Matching); err != nil {
			return err
		}
		missing := &pgtype.TextArray{}
		if err := missing.Set(m.Missing); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO cv_match (cv_id, job_id, score, matching, missing)
			 VALUES ($1, $2, $3, $4, $5)`,
			int64(cvID),
			int64(m.JobID),
			m.Score,
			matching,
			missing,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PgxMatchRepository) ListByCV(ctx context.Context, cvID cv.ID) ([]job.MatchWithJob, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT m.cv_id, m.job_id, m.score, m.matching, m.missing,
		        j.id, j.title, j.company, j.location, j.description, j.url, j.created_at
		 FROM cv_match m JOIN job j ON j.id = m.job_id
		 WHERE m.cv_id = $1
		 ORDER BY m.score DESC, j.id`,
		int64(cvID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]job.MatchWithJob, 0)
	for rows.Next() {
		m, err := scanMatchWithJob(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func scanMatchWithJob(rows pgx.Rows) (m job.MatchWithJob, err error) {
	var (
		cvID      int64
		jobID     int64
		score     float64
		matching  pgtype.TextArray
		missing   pgtype.TextArray
		id        int64
		title     string
		company   string
		location  pgtype.Text
		desc      string
		url       pgtype.Text
		createdAt time.Time
	)
	err = rows.Scan(
		&cvID, &jobID, &score, &matching, &missing,
		&id, &title, &company, &location, &desc, &url, &createdAt,
	)
	if err != nil {
		return m, err
	}

	var matchingList, missingList []string
	if matching.Status == pgtype.Present {
		if err := matching.AssignTo(&matchingList); err != nil {
			return m, err
		}
	}
	if missing.Status == pgtype.Present {
		if err := missing.AssignTo(&missingList); err != nil {
			return m, err
		}
	}

	m = job.MatchWithJob{
		Match: job.Match{
			CVID:     cv.ID(cvID),
			JobID:    job.ID(jobID),
			Score:    score,
			Matching: matchingList,
			Missing:  missingList,
		},
		Job: decodeJoinedJob(id, title, company, location, desc, url, createdAt),
	}
	return m, nil
}

func decodeJoinedJob(
	id int64,
	title string,
	company string,
	location pgtype.Text,
	description string,
	url pgtype.Text,
	createdAt time.Time,
) job.Job {
	j := job.Job{
		ID:          job.ID(id),
		Title:       title,
		Company:     company,
		Description: description,
		CreatedAt:   createdAt,
	}
	if location.Status == pgtype.Present {
		j.Location.Value = location.String
		j.Location.IsPresent = true
	}
	if url.Status == pgtype.Present {
		j.URL.Value = url.String
		j.URL.IsPresent = true
	}
	return j
}
