package attendance

import "errors"

var (
	ErrSessionNotFound   = errors.New("attendance session not found")
	ErrInvalidStatus     = errors.New("invalid attendance status")
	ErrUnknownEmployee   = errors.New("one or more employees do not exist")
	ErrDuplicateEmployee = errors.New("employee listed in more than one status")
)
