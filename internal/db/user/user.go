package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "cvmatch/internal/core/domain/common"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const emailConstraintName = "user_email_idx"

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

const userColumns = `id, email, password_hash, full_name, created_at, last_login_at`

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, password_hash, full_name, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		string(input.Email),
		encodePasswordHash(input.PasswordHash),
		encodeOptionalString(input.FullName),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == db.PgUniqueConstraintErrCode && pgErr.ConstraintName == emailConstraintName {
			return u, user.ErrEmailAlreadyExists
		}
	}
	return u, err
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $1 WHERE id = $2`,
		string(password),
		int64(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetLastLoginAt(ctx context.Context, id user.ID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE "user" SET last_login_at = $1 WHERE id = $2`, at, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func encodePasswordHash(ph c.Optional[user.PasswordHash]) sql.NullString {
	return sql.NullString{String: string(ph.Value), Valid: ph.IsPresent}
}

func encodeOptionalString(s c.Optional[string]) sql.NullString {
	return sql.NullString{String: s.Value, Valid: s.IsPresent}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		email        string
		passwordHash sql.NullString
		fullName     sql.NullString
		createdAt    time.Time
		lastLoginAt  sql.NullTime
	)
	if err = row.Scan(&id, &email, &passwordHash, &fullName, &createdAt, &lastLoginAt); err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Email:        c.Email(email),
		PasswordHash: c.NewOptional(user.PasswordHash(passwordHash.String), passwordHash.Valid),
		FullName:     c.NewOptional(fullName.String, fullName.Valid),
		CreatedAt:    createdAt,
		LastLoginAt:  c.NewOptional(lastLoginAt.Time, lastLoginAt.Valid),
	}, nil
}
