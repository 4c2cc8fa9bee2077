package raster

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"image-thumbnailer/internal/thumbnail"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const DefaultFontSize = 36

// Overlay is a decoded watermark composited onto thumbnails. It is read-only
// once built and may be shared between jobs.
type Overlay struct {
	Image   image.Image
	Opacity float64
}

func (o *Overlay) Size() thumbnail.Dimensions {
	return thumbnail.DimensionsOf(o.Image.Bounds())
}

// LoadOverlay decodes a watermark image file with the given backend.
func LoadOverlay(b Backend, path string, opacity float64) (*Overlay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open watermark: %w", err)
	}
	defer f.Close()

	img, _, err := b.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode watermark %s: %w", path, err)
	}

	return &Overlay{Image: img, Opacity: normalizeOpacity(opacity)}, nil
}

// TextOverlay renders text in Go Regular onto a transparent image just large
// enough to hold it.
func TextOverlay(text string, fontSize float64, c color.Color, opacity float64) (*Overlay, error) {
	if text == "" {
		return nil, fmt.Errorf("watermark text is empty")
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if c == nil {
		c = color.White
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("watermark text %q has no visible extent", text)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))
	ctx.SetHinting(font.HintingFull)

	if _, err := ctx.DrawString(text, freetype.Pt(0, metrics.Ascent.Ceil())); err != nil {
		return nil, fmt.Errorf("failed to draw watermark text: %w", err)
	}

	return &Overlay{Image: dst, Opacity: normalizeOpacity(opacity)}, nil
}

func normalizeOpacity(opacity float64) float64 {
	if opacity <= 0 || opacity > 1 {
		return 1
	}
	return opacity
}
