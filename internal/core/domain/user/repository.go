package user

import (
	"context"
	"time"

	c "cvmatch/internal/core/domain/common"
)

type CreateUserInput struct {
	Email        c.Email
	PasswordHash c.Optional[PasswordHash]
	FullName     c.Optional[string]
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	SetLastLoginAt(ctx context.Context, id ID, at time.Time) error
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
}
