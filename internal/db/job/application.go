package job

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "cvmatch/internal/core/domain/common"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const applicationUserJobConstraintName = "application_user_job_idx"

type PgxApplicationRepository struct {
	db db.DBTX
}

func NewPgxApplicationRepository(db db.DBTX) *PgxApplicationRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, job_id, status, note, created_at, updated_at`

func (r *PgxApplicationRepository) Create(
	ctx context.Context,
	input job.CreateApplicationInput,
) (a job.Application, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO application (user_id, job_id, status, note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 RETURNING `+applicationColumns,
		int64(input.UserID),
		int64(input.JobID),
		string(input.Status),
		encodeOptionalString(input.Note),
		input.CreatedAt,
	)
	a, err = scanApplication(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == db.PgUniqueConstraintErrCode && pgErr.ConstraintName == applicationUserJobConstraintName {
			return a, job.ErrApplicationAlreadyExists
		}
	}
	return a, err
}

func (r *PgxApplicationRepository) GetByID(
	ctx context.Context,
	id job.ApplicationID,
) (a job.Application, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM application WHERE id = $1`, int64(id))
	a, err = scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, job.ErrApplicationDoesNotExist
	}
	return a, err
}

func (r *PgxApplicationRepository) ListByUser(ctx context.Context, userID user.ID) ([]job.Application, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+applicationColumns+` FROM application
		 WHERE user_id = $1
		 ORDER BY updated_at DESC, id DESC`,
		int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := make([]job.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

func (r *PgxApplicationRepository) Update(
	ctx context.Context,
	input job.UpdateApplicationInput,
) (a job.Application, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE application
		 SET status = CASE WHEN $2 THEN $3 ELSE status END,
		     note = CASE WHEN $4 THEN $5 ELSE note END,
		     updated_at = $6
		 WHERE id = $1
		 RETURNING `+applicationColumns,
		int64(input.ID),
		input.Status.IsPresent,
		string(input.Status.Value),
		input.Note.IsPresent,
		encodeOptionalString(input.Note),
		input.UpdatedAt,
	)
	a, err = scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, job.ErrApplicationDoesNotExist
	}
	return a, err
}

func (r *PgxApplicationRepository) Delete(ctx context.Context, id job.ApplicationID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM application WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrApplicationDoesNotExist
	}
	return nil
}

func scanApplication(row scannable) (a job.Application, err error) {
	var (
		id        int64
		userID    int64
		jobID     int64
		status    string
		note      sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	if err = row.Scan(&id, &userID, &jobID, &status, &note, &createdAt, &updatedAt); err != nil {
		return a, err
	}
	return job.Application{
		ID:        job.ApplicationID(id),
		UserID:    user.ID(userID),
		JobID:     job.ID(jobID),
		Status:    job.ApplicationStatus(status),
		Note:      c.NewOptional(note.String, note.Valid),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
