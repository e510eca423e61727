package job

import "errors"

var (
	ErrJobDoesNotExist          = errors.New("job does not exist")
	ErrApplicationDoesNotExist  = errors.New("application does not exist")
	ErrApplicationAlreadyExists = errors.New("application already exists")
	ErrInvalidApplicationStatus = errors.New("invalid application status")
	ErrApplicationAccessDenied  = errors.New("application belongs to another user")
)
