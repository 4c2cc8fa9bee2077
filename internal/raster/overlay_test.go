package raster_test

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"image-thumbnailer/internal/raster"
	"image-thumbnailer/internal/raster/drawbackend"
	"image-thumbnailer/internal/thumbnail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xdraw "golang.org/x/image/draw"
)

func TestTextOverlay(t *testing.T) {
	o, err := raster.TextOverlay("(c) example", 24, color.White, 0.4)
	require.NoError(t, err)

	size := o.Size()
	assert.Greater(t, size.Width, size.Height)
	assert.Positive(t, size.Height)
	assert.Equal(t, 0.4, o.Opacity)

	_, err = raster.TextOverlay("", 24, color.White, 1)
	assert.Error(t, err)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mark.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solid(30, 12, green)))
	require.NoError(t, f.Close())

	o, err := raster.LoadOverlay(drawbackend.New(xdraw.BiLinear), path, 0)
	require.NoError(t, err)
	assert.Equal(t, thumbnail.Dimensions{Width: 30, Height: 12}, o.Size())
	assert.Equal(t, 1.0, o.Opacity)

	_, err = raster.LoadOverlay(drawbackend.New(xdraw.BiLinear), filepath.Join(t.TempDir(), "missing.png"), 1)
	assert.Error(t, err)
}
