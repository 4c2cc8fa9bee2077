package thumbnail

import "image"

// Anchor is a watermark position on a 3x3 grid, numbered row-major from 1
// (top-left) to 9 (bottom-right). Zero means no watermark.
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorTopLeft
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorCenter
	AnchorRight
	AnchorBottomLeft
	AnchorBottom
	AnchorBottomRight
)

func (a Anchor) Valid() bool {
	return a >= AnchorTopLeft && a <= AnchorBottomRight
}

// ThumbnailSpec is a named thumbnail built once from configuration and reused
// for every processed image.
type ThumbnailSpec struct {
	Name            string
	Rule            LayoutRule
	Watermark       Anchor
	WatermarkOffset image.Point
	// Format overrides the output format; empty keeps the source format.
	Format string
}

func (s ThumbnailSpec) HasWatermark() bool {
	return s.Watermark.Valid()
}

func (s ThumbnailSpec) Plan(original Dimensions) CanvasPlan {
	return s.Rule.Resolve(original)
}

// WatermarkAt places an overlay of the given size on a canvas produced by plan.
// The plan's padding offsets keep the watermark on the visible image rather than
// on the letterbox.
func (s ThumbnailSpec) WatermarkAt(plan CanvasPlan, overlay Dimensions) image.Point {
	offset := image.Pt(plan.OffsetX, plan.OffsetY).Add(s.WatermarkOffset)
	return Position(plan.Canvas, overlay, offset, s.Watermark)
}
