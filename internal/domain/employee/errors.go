package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrNIPExists          = errors.New("nip already registered")
	ErrUnitNotFound       = errors.New("unit not found")
	ErrEmployeeHasEntries = errors.New("employee still has attendance entries")
)
