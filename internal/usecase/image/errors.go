package image

import "errors"

var (
	ErrInvalidFileFormat = errors.New("invalid file format")
	ErrFileTooLarge      = errors.New("file too large")
	ErrImageNotFound     = errors.New("image not found")
	ErrThumbnailNotFound = errors.New("thumbnail not found")
	ErrUnknownSpec       = errors.New("unknown thumbnail spec")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrStorageError      = errors.New("storage error")
	ErrMessageQueueError = errors.New("message queue error")
)
