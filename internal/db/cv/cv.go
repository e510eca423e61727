package cv

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "cvmatch/internal/core/domain/common"
	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/db"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

type PgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRepository{db: db}
}

const cvColumns = `id, user_id, file_name, file_key, content_type, status,
	headline, summary, years_experience, skills, created_at, analyzed_at`

func (r *PgxRepository) Create(ctx context.Context, input cv.CreateInput) (created cv.CV, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO cv (user_id, file_name, file_key, content_type, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+cvColumns,
		int64(input.UserID),
		input.FileName,
		input.FileKey,
		input.ContentType,
		string(input.Status),
		input.CreatedAt,
	)
	return scanCV(row)
}

func (r *PgxRepository) GetByID(ctx context.Context, id cv.ID) (found cv.CV, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+cvColumns+` FROM cv WHERE id = $1`, int64(id))
	found, err = scanCV(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return found, cv.ErrCVDoesNotExist
	}
	return found, err
}

func (r *PgxRepository) ListByUser(ctx context.Context, userID user.ID) ([]cv.CV, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+cvColumns+` FROM cv WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cvs := make([]cv.CV, 0)
	for rows.Next() {
		item, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		cvs = append(cvs, item)
	}
	return cvs, rows.Err()
}

func (r *PgxRepository) SetStatus(ctx context.Context, id cv.ID, status cv.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE cv SET status = $1 WHERE id = $2`, string(status), int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cv.ErrCVDoesNotExist
	}
	return nil
}

func (r *PgxRepository) SetProfile(
	ctx context.Context,
	id cv.ID,
	profile cv.Profile,
	analyzedAt time.Time,
) error {
	skills := &pgtype.TextArray{}
	if err := skills.Set(profile.Skills); err != nil {
		return err
	}
	tag, err := r.db.Exec(
		ctx,
		`UPDATE cv
		 SET status = $1, headline = $2, summary = $3, years_experience = $4, skills = $5, analyzed_at = $6
		 WHERE id = $7`,
		string(cv.StatusAnalyzed),
		profile.Headline,
		profile.Summary,
		int64(profile.YearsExperience),
		skills,
		analyzedAt,
		int64(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cv.ErrCVDoesNotExist
	}
	return nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanCV(row scannable) (item cv.CV, err error) {
	var (
		id              int64
		userID          int64
		fileName        string
		fileKey         string
		contentType     string
		status          string
		headline        sql.NullString
		summary         sql.NullString
		yearsExperience sql.NullInt64
		skills          pgtype.TextArray
		createdAt       time.Time
		analyzedAt      sql.NullTime
	)
	err = row.Scan(
		&id, &userID, &fileName, &fileKey, &contentType, &status,
		&headline, &summary, &yearsExperience, &skills, &createdAt, &analyzedAt,
	)
	if err != nil {
		return item, err
	}

	item = cv.CV{
		ID:          cv.ID(id),
		UserID:      user.ID(userID),
		FileName:    fileName,
		FileKey:     fileKey,
		ContentType: contentType,
		Status:      cv.Status(status),
		CreatedAt:   createdAt,
		AnalyzedAt:  c.NewOptional(analyzedAt.Time, analyzedAt.Valid),
	}
	if headline.Valid {
		var skillList []string
		if skills.Status == pgtype.Present {
			if err := skills.AssignTo(&skillList); err != nil {
				return item, err
			}
		}
		item.Profile = c.NewOptional(cv.Profile{
			Headline:        headline.String,
			Summary:         summary.String,
			YearsExperience: uint32(yearsExperience.Int64),
			Skills:          skillList,
		}, true)
	}
	return item, nil
}
