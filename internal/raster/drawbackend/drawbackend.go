// Package drawbackend is the raw-pixel raster backend built on golang.org/x/image/draw.
package drawbackend

import (
	"image"
	"image/color"
	"io"

	"image-thumbnailer/internal/raster"
	"image-thumbnailer/internal/thumbnail"

	xdraw "golang.org/x/image/draw"
)

func init() {
	raster.Register(func() raster.Backend { return New(xdraw.BiLinear) }, "draw", "gd")
}

type Backend struct {
	scaler xdraw.Scaler
}

func New(scaler xdraw.Scaler) *Backend {
	return &Backend{scaler: scaler}
}

func (b *Backend) Name() string {
	return "draw"
}

func (b *Backend) Decode(r io.Reader) (image.Image, raster.Format, error) {
	return raster.DecodeImage(r)
}

func (b *Backend) Resample(src image.Image, size thumbnail.Dimensions) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	b.scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func (b *Backend) NewCanvas(size thumbnail.Dimensions) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
}

func (b *Backend) Fill(canvas image.Image, c color.Color) image.Image {
	dst := drawable(canvas)
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
	return dst
}

func (b *Backend) CopyRect(dst, src image.Image, from image.Rectangle, to image.Point) image.Image {
	canvas := drawable(dst)
	from = from.Add(src.Bounds().Min)
	r := image.Rectangle{Min: to, Max: to.Add(from.Size())}.Add(canvas.Bounds().Min)
	xdraw.Draw(canvas, r, src, from.Min, xdraw.Over)
	return canvas
}

func (b *Backend) CompositeOverlay(dst, overlay image.Image, at image.Point, opacity float64) image.Image {
	canvas := drawable(dst)
	r := image.Rectangle{Min: at, Max: at.Add(overlay.Bounds().Size())}.Add(canvas.Bounds().Min)

	if opacity >= 1 {
		xdraw.Draw(canvas, r, overlay, overlay.Bounds().Min, xdraw.Over)
		return canvas
	}

	mask := image.NewUniform(color.Alpha{A: uint8(opacity * 255)})
	xdraw.DrawMask(canvas, r, overlay, overlay.Bounds().Min, mask, image.Point{}, xdraw.Over)
	return canvas
}

func (b *Backend) Encode(w io.Writer, img image.Image, format raster.Format, quality int) error {
	return raster.EncodeImage(w, img, format, quality)
}

func drawable(img image.Image) xdraw.Image {
	if d, ok := img.(xdraw.Image); ok {
		return d
	}
	dst := image.NewNRGBA(img.Bounds())
	xdraw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, xdraw.Src)
	return dst
}
