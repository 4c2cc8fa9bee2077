package image

import "errors"

var (
	ErrInvalidFileFormat = errors.New("invalid file format")
	ErrFileTooLarge      = errors.New("file too large")
	ErrNotAnImage        = errors.New("file must be an image")
)
