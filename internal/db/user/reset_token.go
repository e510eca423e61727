package user

import (
	"context"
	"time"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/db"
)

type PgxResetTokenRepository struct {
	db db.DBTX
}

func NewPgxResetTokenRepository(db db.DBTX) *PgxResetTokenRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxResetTokenRepository{db: db}
}

func (r *PgxResetTokenRepository) Create(
	ctx context.Context,
	input user.CreateResetTokenInput,
) (token user.ResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO password_reset_token (token_hash, user_id, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING token_hash, user_id, expires_at`,
		string(input.TokenHash),
		int64(input.UserID),
		input.ExpiresAt,
	)
	return scanResetToken(row)
}

func (r *PgxResetTokenRepository) ListActive(ctx context.Context, now time.Time) ([]user.ResetToken, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT token_hash, user_id, expires_at
		 FROM password_reset_token
		 WHERE expires_at > $1`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := make([]user.ResetToken, 0)
	for rows.Next() {
		token, err := scanResetToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *PgxResetTokenRepository) DeleteForUser(ctx context.Context, userID user.ID) error {
	_, err := r.db.Exec(
		ctx,
		`DELETE FROM password_reset_token WHERE user_id = $1`,
		int64(userID),
	)
	return err
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanResetToken(row scannable) (token user.ResetToken, err error) {
	var (
		tokenHash string
		userID    int64
		expiresAt time.Time
	)
	if err = row.Scan(&tokenHash, &userID, &expiresAt); err != nil {
		return token, err
	}
	return user.ResetToken{
		TokenHash: user.ResetTokenHash(tokenHash),
		UserID:    user.ID(userID),
		ExpiresAt: expiresAt,
	}, nil
}
