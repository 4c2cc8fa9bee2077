package processor

import "errors"

var (
	ErrUnknownSpec = errors.New("unknown thumbnail spec")
	ErrNoSpecs     = errors.New("no thumbnail specs configured")
)
