package thumbnail

import "image"

// Layout is the copy a raster backend performs for a CanvasPlan: resample the
// source to Resample, allocate Canvas, optionally flood-fill it, then copy the
// Source rectangle of the resampled buffer to Dest on the canvas.
type Layout struct {
	Canvas   Dimensions      `json:"canvas"`
	Resample Dimensions      `json:"resample"`
	Source   image.Rectangle `json:"source"`
	Dest     image.Point     `json:"dest"`
	// Uncovered reports canvas pixels that the copy leaves untouched and
	// that only a background fill will set.
	Uncovered bool `json:"uncovered"`
}

func (p CanvasPlan) Layout() Layout {
	w := min(p.Resample.Width-p.CropX, p.Canvas.Width-p.OffsetX)
	h := min(p.Resample.Height-p.CropY, p.Canvas.Height-p.OffsetY)
	w, h = max(w, 0), max(h, 0)

	return Layout{
		Canvas:    p.Canvas,
		Resample:  p.Resample,
		Source:    image.Rect(p.CropX, p.CropY, p.CropX+w, p.CropY+h),
		Dest:      image.Pt(p.OffsetX, p.OffsetY),
		Uncovered: w < p.Canvas.Width || h < p.Canvas.Height,
	}
}

// DestRect is the canvas area covered by the copied pixels.
func (l Layout) DestRect() image.Rectangle {
	return image.Rectangle{Min: l.Dest, Max: l.Dest.Add(l.Source.Size())}
}
