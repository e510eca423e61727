package user

import (
	"context"
	"time"
)

// RawResetToken is the unhashed single-use secret delivered to the user by
// email. It exists only in memory, never in the database.
type RawResetToken string

func (t RawResetToken) String() string {
	return "***"
}

// ResetTokenHash is the only persisted form of a reset token.
type ResetTokenHash string

type ResetToken struct {
	TokenHash ResetTokenHash
	UserID    ID
	ExpiresAt time.Time
}

func (t *ResetToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

type CreateResetTokenInput struct {
	TokenHash ResetTokenHash
	UserID    ID
	ExpiresAt time.Time
}

type ResetTokenRepository interface {
	Create(ctx context.Context, input CreateResetTokenInput) (ResetToken, error)
	// ListActive returns tokens with expiry strictly in the future. Expired
	// rows stay in the store until DeleteForUser removes them.
	ListActive(ctx context.Context, now time.Time) ([]ResetToken, error)
	DeleteForUser(ctx context.Context, userID ID) error
}

type ResetTokenGenerator interface {
	GenerateResetToken() RawResetToken
}

// ResetTokenHasher produces an irreversible salted hash of a raw token.
// Validation must use the hash algorithm's own verify primitive, not a plain
// string comparison.
type ResetTokenHasher interface {
	HashToken(token RawResetToken) (ResetTokenHash, error)
	ValidateToken(token RawResetToken, hash ResetTokenHash) bool
}

type PasswordResetTokenSender interface {
	SendResetToken(ctx context.Context, u User, token RawResetToken) error
}
