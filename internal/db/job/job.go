package job

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "cvmatch/internal/core/domain/common"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/db"

	"github.com/jackc/pgx/v4"
)

type PgxJobRepository struct {
	db db.DBTX
}

func NewPgxJobRepository(db db.DBTX) *PgxJobRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxJobRepository{db: db}
}

const jobColumns = `id, title, company, location, description, url, created_at`

func (r *PgxJobRepository) Create(ctx context.Context, input job.CreateJobInput) (created job.Job, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO job (title, company, location, description, url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+jobColumns,
		input.Title,
		input.Company,
		encodeOptionalString(input.Location),
		input.Description,
		encodeOptionalString(input.URL),
		input.CreatedAt,
	)
	return scanJob(row)
}

func (r *PgxJobRepository) GetByID(ctx context.Context, id job.ID) (found job.Job, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job WHERE id = $1`, int64(id))
	found, err = scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return found, job.ErrJobDoesNotExist
	}
	return found, err
}

func (r *PgxJobRepository) List(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM job ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func encodeOptionalString(s c.Optional[string]) sql.NullString {
	return sql.NullString{String: s.Value, Valid: s.IsPresent}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanJob(row scannable) (item job.Job, err error) {
	var (
		id          int64
		title       string
		company     string
		location    sql.NullString
		description string
		url         sql.NullString
		createdAt   time.Time
	)
	if err = row.Scan(&id, &title, &company, &location, &description, &url, &createdAt); err != nil {
		return item, err
	}
	return job.Job{
		ID:          job.ID(id),
		Title:       title,
		Company:     company,
		Location:    c.NewOptional(location.String, location.Valid),
		Description: description,
		URL:         c.NewOptional(url.String, url.Valid),
		CreatedAt:   createdAt,
	}, nil
}

func scanJobs(rows pgx.Rows) ([]job.Job, error) {
	jobs := make([]job.Job, 0)
	for rows.Next() {
		item, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, item)
	}
	return jobs, rows.Err()
}
