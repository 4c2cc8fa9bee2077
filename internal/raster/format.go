package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"image-thumbnailer/internal/thumbnail"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatWebP Format = "webp"
)

const DefaultQuality = 100

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpg", "jpeg", "pjpeg", "pjpg":
		return FormatJPEG, nil
	case "png", "x-png":
		return FormatPNG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Output is the format a thumbnail of this source format is written in.
// WebP has no encoder here and is written as PNG.
func (f Format) Output() Format {
	if f == FormatWebP {
		return FormatPNG
	}
	return f
}

func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatWebP:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// DecodeImage decodes any registered format and reports which one it was.
func DecodeImage(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	format, err := ParseFormat(name)
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

// DecodeConfig sniffs the format of data without decoding pixels.
func DecodeConfig(data []byte) (Format, thumbnail.Dimensions, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", thumbnail.Dimensions{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	format, err := ParseFormat(name)
	if err != nil {
		return "", thumbnail.Dimensions{}, err
	}
	return format, thumbnail.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

// EncodeImage writes img with the standard and x/image encoders.
func EncodeImage(w io.Writer, img image.Image, format Format, quality int) error {
	var err error

	switch format.Output() {
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(quality)})
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

func clampQuality(q int) int {
	if q <= 0 {
		return DefaultQuality
	}
	return min(q, 100)
}
