package user

import "errors"

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionDoesNotExist = errors.New("session does not exist")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
)
