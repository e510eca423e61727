package cv

import "errors"

var (
	ErrCVDoesNotExist      = errors.New("cv does not exist")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
