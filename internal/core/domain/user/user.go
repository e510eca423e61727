package user

import (
	c "cvmatch/internal/core/domain/common"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

type User struct {
	ID           ID
	Email        c.Email
	PasswordHash c.Optional[PasswordHash]
	FullName     c.Optional[string]
	CreatedAt    time.Time
	LastLoginAt  c.Optional[time.Time]
}

// HasPassword reports whether the user owns a password credential. Accounts
// created through an external identity provider have none and cannot go
// through the password reset flow.
func (u *User) HasPassword() bool {
	return u.PasswordHash.IsPresent
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type SessionTokenGenerator interface {
	GenerateToken() SessionToken
}
