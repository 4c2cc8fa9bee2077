package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"image-thumbnailer/internal/thumbnail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

const testConfig = `
thumbnails:
  backend: imaging
  background: "#000000"
  specs:
    boxed:
      fit: [100, 100, true]
    cropped:
      fit: [100, 100]
    small:
      width: 50
      format: png
`

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	l := zlog.Logger
	var out bytes.Buffer
	return New(&out, &l), &out, path
}

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		in      string
		want    thumbnail.Dimensions
		wantErr bool
	}{
		{in: "1920x1080", want: thumbnail.Dimensions{Width: 1920, Height: 1080}},
		{in: " 640X480 ", want: thumbnail.Dimensions{Width: 640, Height: 480}},
		{in: "1920", wantErr: true},
		{in: "0x10", wantErr: true},
		{in: "10x-1", wantErr: true},
		{in: "axb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDimensions(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecsCommand(t *testing.T) {
	c, out, path := newTestCLI(t)

	require.NoError(t, c.Execute(context.Background(), []string{"specs", "--config", path, "--json"}))

	var rows []specRow
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, specRow{Name: "boxed", Rule: "fit(100,100,contain)", Watermark: "-"}, rows[0])
	assert.Equal(t, "png", rows[2].Format)
}

func TestPlanCommand(t *testing.T) {
	c, out, path := newTestCLI(t)

	err := c.Execute(context.Background(), []string{"plan", "1000x500", "--config", path, "--json", "--spec", "boxed,cropped"})
	require.NoError(t, err)

	var rows []planRow
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 2)

	boxed := rows[0].Plan
	assert.Equal(t, thumbnail.Dimensions{Width: 100, Height: 50}, boxed.Resample)
	assert.Equal(t, thumbnail.Dimensions{Width: 100, Height: 100}, boxed.Canvas)
	assert.Equal(t, 25, boxed.OffsetY)
	assert.True(t, rows[0].Layout.Uncovered)

	cropped := rows[1].Plan
	assert.Equal(t, thumbnail.Dimensions{Width: 200, Height: 100}, cropped.Resample)
	assert.Equal(t, 50, cropped.CropX)
	assert.False(t, rows[1].Layout.Uncovered)
}

func TestPlanCommandErrors(t *testing.T) {
	c, _, path := newTestCLI(t)

	assert.Error(t, c.Execute(context.Background(), []string{"plan", "big", "--config", path}))
	assert.Error(t, c.Execute(context.Background(), []string{"plan", "10x10", "--config", path, "--spec", "nope"}))
}

func TestRenderCommand(t *testing.T) {
	c, out, path := newTestCLI(t)

	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			src.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}

	input := filepath.Join(t.TempDir(), "photo.png")
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	outDir := t.TempDir()
	err = c.Execute(context.Background(), []string{"render", input, "--config", path, "--out", outDir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "thumbnails", "photo", "boxed.png"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(100, 100), img.Bounds().Size())

	_, err = os.Stat(filepath.Join(outDir, "thumbnails", "photo", "small.png"))
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "cropped")
}

func TestBackendOverride(t *testing.T) {
	c, _, path := newTestCLI(t)

	c.configPath, c.backend = path, "bild"
	cfg, err := c.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "bild", cfg.Thumbnails.Backend)
}
