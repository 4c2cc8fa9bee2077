// Package raster executes thumbnail layouts against a pluggable pixel backend.
//
// A Backend wraps one image library behind the capabilities the compositor
// needs: decode, resample, canvas allocation and fill, rectangle copy, overlay
// composition and encode. Backends are selected by name at construction time,
// so nothing above this package branches on library identity.
package raster

import (
	"image"
	"image/color"
	"io"

	"image-thumbnailer/internal/thumbnail"
)

// Backend is a raster library adapter.
//
// Operations that produce an image may either draw into the image they are
// given and return it, or return a new image; callers always use the returned
// value. Resample always returns a newly allocated image, so a decoded source
// can be shared read-only between concurrent jobs.
type Backend interface {
	Name() string
	Decode(r io.Reader) (image.Image, Format, error)
	Resample(src image.Image, size thumbnail.Dimensions) image.Image
	NewCanvas(size thumbnail.Dimensions) image.Image
	Fill(canvas image.Image, c color.Color) image.Image
	CopyRect(dst, src image.Image, from image.Rectangle, to image.Point) image.Image
	CompositeOverlay(dst, overlay image.Image, at image.Point, opacity float64) image.Image
	Encode(w io.Writer, img image.Image, format Format, quality int) error
}
