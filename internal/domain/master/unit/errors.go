package unit

import "errors"

var (
	ErrUnitNotFound = errors.New("unit not found")
)
