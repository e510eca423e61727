package job

import (
	"context"
	"time"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/db"
)

type PgxSavedJobRepository struct {
	db db.DBTX
}

func NewPgxSavedJobRepository(db db.DBTX) *PgxSavedJobRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxSavedJobRepository{db: db}
}

func (r *PgxSavedJobRepository) Save(ctx context.Context, userID user.ID, jobID job.ID, at time.Time) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO saved_job (user_id, job_id, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, job_id) DO NOTHING`,
		int64(userID),
		int64(jobID),
		at,
	)
	return err
}

func (r *PgxSavedJobRepository) Unsave(ctx context.Context, userID user.ID, jobID job.ID) error {
	_, err := r.db.Exec(
		ctx,
		`DELETE FROM saved_job WHERE user_id = $1 AND job_id = $2`,
		int64(userID),
		int64(jobID),
	)
	return err
}

func (r *PgxSavedJobRepository) ListByUser(ctx context.Context, userID user.ID) ([]job.Job, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT j.id, j.title, j.company, j.location, j.description, j.url, j.created_at
		 FROM saved_job s JOIN job j ON j.id = s.job_id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC`,
		int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}
