package raster

import "errors"

var (
	ErrBackendUnavailable = errors.New("raster backend is not available in this build")
	ErrUnsupportedBackend = errors.New("unsupported raster backend")
	ErrUnsupportedFormat  = errors.New("unsupported image format")
	ErrDecode             = errors.New("failed to decode image")
	ErrEncode             = errors.New("failed to encode image")
	ErrInvalidColor       = errors.New("invalid color")
)
