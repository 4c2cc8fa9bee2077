package thumbnail

import "image"

// Position returns the top-left corner of an overlay placed on canvas at anchor.
// Edge anchors keep offset.X / offset.Y away from their edges; centred axes
// ignore the offset. Unknown anchors fall back to the top-left corner.
func Position(canvas, overlay Dimensions, offset image.Point, anchor Anchor) image.Point {
	left := offset.X
	centreX := canvas.Width/2 - overlay.Width/2
	right := canvas.Width - overlay.Width - offset.X

	top := offset.Y
	centreY := canvas.Height/2 - overlay.Height/2
	bottom := canvas.Height - overlay.Height - offset.Y

	switch anchor {
	case AnchorTopLeft:
		return image.Pt(left, top)
	case AnchorTop:
		return image.Pt(centreX, top)
	case AnchorTopRight:
		return image.Pt(right, top)
	case AnchorLeft:
		return image.Pt(left, centreY)
	case AnchorCenter:
		return image.Pt(centreX, centreY)
	case AnchorRight:
		return image.Pt(right, centreY)
	case AnchorBottomLeft:
		return image.Pt(left, bottom)
	case AnchorBottom:
		return image.Pt(centreX, bottom)
	case AnchorBottomRight:
		return image.Pt(right, bottom)
	default:
		return image.Pt(left, top)
	}
}
