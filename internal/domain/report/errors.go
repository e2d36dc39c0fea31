package report

import "errors"

var (
	ErrUnknownView = errors.New("unknown report view")
)
