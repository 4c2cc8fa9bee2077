// Package bildbackend is a raster backend built on github.com/anthonynsimon/bild.
package bildbackend

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"image-thumbnailer/internal/raster"
	"image-thumbnailer/internal/thumbnail"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/paint"
	"github.com/anthonynsimon/bild/transform"
)

func init() {
	raster.Register(func() raster.Backend { return New(transform.Lanczos) }, "bild")
}

type Backend struct {
	filter transform.ResampleFilter
}

func New(filter transform.ResampleFilter) *Backend {
	return &Backend{filter: filter}
}

func (b *Backend) Name() string {
	return "bild"
}

func (b *Backend) Decode(r io.Reader) (image.Image, raster.Format, error) {
	return raster.DecodeImage(r)
}

func (b *Backend) Resample(src image.Image, size thumbnail.Dimensions) image.Image {
	return transform.Resize(src, size.Width, size.Height, b.filter)
}

func (b *Backend) NewCanvas(size thumbnail.Dimensions) image.Image {
	return image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
}

// Fill flood-fills from the top-left pixel, like a paint bucket on a fresh canvas.
func (b *Backend) Fill(canvas image.Image, c color.Color) image.Image {
	return paint.FloodFill(canvas, image.Point{}, c, 255)
}

func (b *Backend) CopyRect(dst, src image.Image, from image.Rectangle, to image.Point) image.Image {
	part := transform.Crop(src, from.Add(src.Bounds().Min))
	out := clone.AsShallowRGBA(dst)
	r := image.Rectangle{Min: to, Max: to.Add(part.Bounds().Size())}.Add(out.Bounds().Min)
	draw.Draw(out, r, part, part.Bounds().Min, draw.Over)
	return out
}

func (b *Backend) CompositeOverlay(dst, overlay image.Image, at image.Point, opacity float64) image.Image {
	out := clone.AsShallowRGBA(dst)
	r := image.Rectangle{Min: at, Max: at.Add(overlay.Bounds().Size())}.Add(out.Bounds().Min)
	mask := image.NewUniform(color.Alpha{A: uint8(min(opacity, 1) * 255)})
	draw.DrawMask(out, r, overlay, overlay.Bounds().Min, mask, image.Point{}, draw.Over)
	return out
}

func (b *Backend) Encode(w io.Writer, img image.Image, format raster.Format, quality int) error {
	var encoder imgio.Encoder

	switch format.Output() {
	case raster.FormatJPEG:
		if quality <= 0 {
			quality = raster.DefaultQuality
		}
		encoder = imgio.JPEGEncoder(quality)
	case raster.FormatPNG:
		encoder = imgio.PNGEncoder()
	case raster.FormatBMP:
		encoder = imgio.BMPEncoder()
	default:
		return raster.EncodeImage(w, img, format, quality)
	}

	if err := encoder(w, img); err != nil {
		return fmt.Errorf("%w: %v", raster.ErrEncode, err)
	}
	return nil
}
