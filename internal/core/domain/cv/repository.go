package cv

import (
	"context"
	"time"

	"cvmatch/internal/core/domain/user"
)

type CreateInput struct {
	UserID      user.ID
	FileName    string
	FileKey     string
	ContentType string
	Status      Status
	CreatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (CV, error)
	GetByID(ctx context.Context, id ID) (CV, error)
	ListByUser(ctx context.Context, userID user.ID) ([]CV, error)
	SetStatus(ctx context.Context, id ID, status Status) error
	SetProfile(ctx context.Context, id ID, profile Profile, analyzedAt time.Time) error
}
