package raster

import (
	"image"
	"image/color"

	"image-thumbnailer/internal/thumbnail"
)

// Compositor turns a decoded source and a thumbnail spec into a finished
// thumbnail using one backend. It holds no per-image state.
type Compositor struct {
	backend    Backend
	background color.Color
	overlay    *Overlay
}

// NewCompositor returns a compositor. A nil background leaves padding
// transparent; a nil overlay disables watermarks.
func NewCompositor(backend Backend, background color.Color, overlay *Overlay) *Compositor {
	return &Compositor{
		backend:    backend,
		background: background,
		overlay:    overlay,
	}
}

func (c *Compositor) Backend() Backend {
	return c.backend
}

// Render resolves spec against src and returns the composited thumbnail with
// the plan that produced it.
func (c *Compositor) Render(src image.Image, spec thumbnail.ThumbnailSpec) (image.Image, thumbnail.CanvasPlan) {
	plan := spec.Plan(thumbnail.DimensionsOf(src.Bounds()))
	img := c.Compose(src, plan)

	if c.overlay != nil && spec.HasWatermark() {
		at := spec.WatermarkAt(plan, c.overlay.Size())
		img = c.backend.CompositeOverlay(img, c.overlay.Image, at, c.overlay.Opacity)
	}
	return img, plan
}

// Compose performs the resample, fill and copy described by plan.
func (c *Compositor) Compose(src image.Image, plan thumbnail.CanvasPlan) image.Image {
	layout := plan.Layout()
	resampled := c.backend.Resample(src, layout.Resample)

	if c.background == nil && fillsCanvas(layout) {
		return resampled
	}

	canvas := c.backend.NewCanvas(layout.Canvas)
	if c.background != nil {
		canvas = c.backend.Fill(canvas, c.background)
	}
	return c.backend.CopyRect(canvas, resampled, layout.Source, layout.Dest)
}

// fillsCanvas reports a layout whose resample is the canvas as is.
func fillsCanvas(l thumbnail.Layout) bool {
	return l.Canvas == l.Resample &&
		l.Dest == (image.Point{}) &&
		l.Source == image.Rectangle{Max: l.Resample.Point()}
}
