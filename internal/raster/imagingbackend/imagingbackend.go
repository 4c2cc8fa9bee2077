// Package imagingbackend is the handle-style raster backend built on
// github.com/disintegration/imaging. Every operation returns a new image.
package imagingbackend

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"image-thumbnailer/internal/raster"
	"image-thumbnailer/internal/thumbnail"

	"github.com/disintegration/imaging"
)

func init() {
	raster.Register(func() raster.Backend { return New(imaging.Lanczos) }, "imaging", "imagick")
}

type Backend struct {
	filter imaging.ResampleFilter
}

func New(filter imaging.ResampleFilter) *Backend {
	return &Backend{filter: filter}
}

func (b *Backend) Name() string {
	return "imaging"
}

// Decode applies EXIF orientation, which the raw-pixel backend does not.
func (b *Backend) Decode(r io.Reader) (image.Image, raster.Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", raster.ErrDecode, err)
	}

	format, _, err := raster.DecodeConfig(data)
	if err != nil {
		return nil, "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", raster.ErrDecode, err)
	}
	return img, format, nil
}

func (b *Backend) Resample(src image.Image, size thumbnail.Dimensions) image.Image {
	return imaging.Resize(src, size.Width, size.Height, b.filter)
}

func (b *Backend) NewCanvas(size thumbnail.Dimensions) image.Image {
	return imaging.New(size.Width, size.Height, color.NRGBA{})
}

func (b *Backend) Fill(canvas image.Image, c color.Color) image.Image {
	bounds := canvas.Bounds()
	return imaging.New(bounds.Dx(), bounds.Dy(), c)
}

func (b *Backend) CopyRect(dst, src image.Image, from image.Rectangle, to image.Point) image.Image {
	part := imaging.Crop(src, from.Add(src.Bounds().Min))
	return imaging.Overlay(dst, part, to.Add(dst.Bounds().Min), 1)
}

func (b *Backend) CompositeOverlay(dst, overlay image.Image, at image.Point, opacity float64) image.Image {
	return imaging.Overlay(dst, overlay, at.Add(dst.Bounds().Min), opacity)
}

func (b *Backend) Encode(w io.Writer, img image.Image, format raster.Format, quality int) error {
	var f imaging.Format

	switch format.Output() {
	case raster.FormatJPEG:
		f = imaging.JPEG
	case raster.FormatPNG:
		f = imaging.PNG
	case raster.FormatGIF:
		f = imaging.GIF
	case raster.FormatBMP:
		f = imaging.BMP
	case raster.FormatTIFF:
		f = imaging.TIFF
	default:
		return fmt.Errorf("%w: %q", raster.ErrUnsupportedFormat, format)
	}

	if quality <= 0 {
		quality = raster.DefaultQuality
	}

	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("%w: %v", raster.ErrEncode, err)
	}
	return nil
}
