package thumbnail

import (
	"fmt"
	"image"
)

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

func (d Dimensions) Point() image.Point {
	return image.Pt(d.Width, d.Height)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// DimensionsOf returns the size of r.
func DimensionsOf(r image.Rectangle) Dimensions {
	return Dimensions{Width: r.Dx(), Height: r.Dy()}
}

// ByWidth scales original to the given width keeping its aspect ratio.
// A width larger than the original returns the original untouched.
func ByWidth(original Dimensions, width int) Dimensions {
	if original.Empty() || width <= 0 {
		return Dimensions{}
	}
	if width > original.Width {
		return original
	}
	return Dimensions{Width: width, Height: scale(width, original.Height, original.Width)}
}

// ByHeight scales original to the given height keeping its aspect ratio.
// A height larger than the original returns the original untouched.
func ByHeight(original Dimensions, height int) Dimensions {
	if original.Empty() || height <= 0 {
		return Dimensions{}
	}
	if height > original.Height {
		return original
	}
	return Dimensions{Width: scale(height, original.Width, original.Height), Height: height}
}

// ByShorterSide maps the shorter side of original onto its target, so the other
// side ends up at least as long as its own target.
func ByShorterSide(original Dimensions, width, height int) Dimensions {
	if original.Width < original.Height {
		return ByWidth(original, width)
	}
	return ByHeight(original, height)
}

// ByLongerSide maps the longer side of original onto its target, so the other
// side ends up no longer than its own target.
func ByLongerSide(original Dimensions, width, height int) Dimensions {
	if original.Width > original.Height {
		return ByWidth(original, width)
	}
	return ByHeight(original, height)
}

// scale returns target*num/den truncated, never less than one pixel.
func scale(target, num, den int) int {
	v := int(int64(target) * int64(num) / int64(den))
	if v < 1 {
		return 1
	}
	return v
}
