package thumbnail

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		original   Dimensions
		box        Dimensions
		keepAspect bool
		want       CanvasPlan
	}{
		{
			name:     "cover landscape into square",
			original: dims(1920, 1080),
			box:      dims(500, 500),
			want:     CanvasPlan{Resample: dims(888, 500), Canvas: dims(500, 500), CropX: 194},
		},
		{
			name:       "contain landscape into square",
			original:   dims(1920, 1080),
			box:        dims(500, 500),
			keepAspect: true,
			want:       CanvasPlan{Resample: dims(500, 281), Canvas: dims(500, 499), OffsetY: 109},
		},
		{
			name:     "cover falls back to longer side",
			original: dims(1000, 500),
			box:      dims(300, 50),
			want:     CanvasPlan{Resample: dims(300, 150), Canvas: dims(300, 50), CropY: 50},
		},
		{
			name:       "contain falls back to shorter side",
			original:   dims(1000, 500),
			box:        dims(100, 10),
			keepAspect: true,
			want:       CanvasPlan{Resample: dims(20, 10), Canvas: dims(100, 10), OffsetX: 40},
		},
		{
			name:       "contain square source uses smaller box side",
			original:   dims(800, 800),
			box:        dims(300, 200),
			keepAspect: true,
			want:       CanvasPlan{Resample: dims(200, 200), Canvas: dims(300, 200), OffsetX: 50},
		},
		{
			name:     "cover square source uses larger box side",
			original: dims(800, 800),
			box:      dims(300, 200),
			want:     CanvasPlan{Resample: dims(300, 300), Canvas: dims(300, 200), CropY: 50},
		},
		{
			name:     "small source is padded, never enlarged",
			original: dims(100, 50),
			box:      dims(500, 500),
			want:     CanvasPlan{Resample: dims(100, 50), Canvas: dims(500, 500), OffsetX: 200, OffsetY: 225},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.original, tt.box.Width, tt.box.Height, tt.keepAspect)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSquare(t *testing.T) {
	t.Run("cover", func(t *testing.T) {
		got := Square(dims(800, 600), 400, false)
		assert.Equal(t, CanvasPlan{Resample: dims(533, 400), Canvas: dims(401, 400), CropX: 66}, got)

		l := got.Layout()
		assert.Equal(t, 401, l.Source.Dx())
		assert.Equal(t, 400, l.Source.Dy())
		assert.False(t, l.Uncovered)
	})

	t.Run("contain", func(t *testing.T) {
		got := Square(dims(800, 600), 400, true)
		assert.Equal(t, CanvasPlan{Resample: dims(400, 300), Canvas: dims(400, 400), OffsetY: 50}, got)
	})

	t.Run("portrait cover", func(t *testing.T) {
		got := Square(dims(600, 900), 300, false)
		assert.Equal(t, CanvasPlan{Resample: dims(300, 450), Canvas: dims(300, 300), CropY: 75}, got)
	})

	t.Run("small source contain is centred", func(t *testing.T) {
		got := Square(dims(50, 20), 100, true)
		assert.Equal(t, CanvasPlan{Resample: dims(50, 20), Canvas: dims(100, 100), OffsetX: 25, OffsetY: 40}, got)
	})
}

func TestSquareIdempotentOnSquareInput(t *testing.T) {
	for _, n := range []int{1, 2, 99, 100, 640, 1001} {
		for _, keep := range []bool{true, false} {
			got := Square(dims(n, n), n, keep)
			assert.Equal(t, CanvasPlan{Resample: dims(n, n), Canvas: dims(n, n)}, got, "n=%d keep=%v", n, keep)
		}
	}
}

func TestOddDifferenceKeepsPaddingSymmetric(t *testing.T) {
	contain := Fit(dims(1920, 1080), 500, 500, true)
	assert.Equal(t, dims(500, 499), contain.Canvas)

	l := contain.Layout()
	top := l.Dest.Y
	bottom := l.Canvas.Height - l.DestRect().Max.Y
	assert.Equal(t, 109, top)
	assert.Equal(t, top, bottom)
	assert.True(t, l.Uncovered)

	cover := Square(dims(800, 600), 400, false)
	assert.Equal(t, dims(401, 400), cover.Canvas)
	assert.Equal(t, cover.Canvas, DimensionsOf(cover.Layout().Source))
}

func TestPlanOffsetsAndCropsAreExclusivePerAxis(t *testing.T) {
	for _, o := range grid() {
		for _, box := range boxes() {
			for _, keep := range []bool{true, false} {
				for _, p := range []CanvasPlan{
					Fit(o, box.Width, box.Height, keep),
					Square(o, box.Width, keep),
				} {
					assert.False(t, p.OffsetX > 0 && p.CropX > 0, "x axis of %+v", p)
					assert.False(t, p.OffsetY > 0 && p.CropY > 0, "y axis of %+v", p)
					assert.True(t, p.OffsetX >= 0 && p.OffsetY >= 0 && p.CropX >= 0 && p.CropY >= 0)
				}
			}
		}
	}
}

func TestContainNeverExceedsTheBox(t *testing.T) {
	for _, o := range grid() {
		for _, box := range boxes() {
			p := Fit(o, box.Width, box.Height, true)
			name := fmt.Sprintf("fit(%v, %v, contain)", o, box)

			require.LessOrEqual(t, p.Resample.Width, box.Width, name)
			require.LessOrEqual(t, p.Resample.Height, box.Height, name)
			assert.Zero(t, p.CropX, name)
			assert.Zero(t, p.CropY, name)
			assert.LessOrEqual(t, p.Canvas.Width, box.Width, name)
			assert.LessOrEqual(t, p.Canvas.Height, box.Height, name)
			assertCanvasWithinOnePixel(t, p, box, name)
		}
	}
}

func TestCoverFillsTheBox(t *testing.T) {
	for _, o := range grid() {
		for _, box := range boxes() {
			if o.Width < box.Width || o.Height < box.Height {
				continue
			}
			p := Fit(o, box.Width, box.Height, false)
			name := fmt.Sprintf("fit(%v, %v, cover)", o, box)

			require.GreaterOrEqual(t, p.Resample.Width, box.Width, name)
			require.GreaterOrEqual(t, p.Resample.Height, box.Height, name)
			assert.Zero(t, p.OffsetX, name)
			assert.Zero(t, p.OffsetY, name)
			assert.GreaterOrEqual(t, p.Canvas.Width, box.Width, name)
			assert.GreaterOrEqual(t, p.Canvas.Height, box.Height, name)
			assertCanvasWithinOnePixel(t, p, box, name)

			l := p.Layout()
			assert.False(t, l.Uncovered, name)
			assert.Equal(t, p.Canvas, DimensionsOf(l.Source), name)
		}
	}
}

func TestNearSquareAspectRatios(t *testing.T) {
	sources := []Dimensions{
		dims(1000, 1001), dims(1001, 1000),
		dims(1000, 1010), dims(1010, 1000),
		dims(999, 1000), dims(1000, 999),
	}
	for _, o := range sources {
		for _, box := range []Dimensions{dims(100, 100), dims(100, 99), dims(99, 100), dims(300, 200), dims(200, 300)} {
			contain := Fit(o, box.Width, box.Height, true)
			assert.LessOrEqual(t, contain.Resample.Width, box.Width, "contain %v in %v", o, box)
			assert.LessOrEqual(t, contain.Resample.Height, box.Height, "contain %v in %v", o, box)

			cover := Fit(o, box.Width, box.Height, false)
			assert.GreaterOrEqual(t, cover.Resample.Width, box.Width, "cover %v in %v", o, box)
			assert.GreaterOrEqual(t, cover.Resample.Height, box.Height, "cover %v in %v", o, box)
			assert.False(t, cover.Layout().Uncovered, "cover %v in %v", o, box)
		}
	}
}

func assertCanvasWithinOnePixel(t *testing.T, p CanvasPlan, box Dimensions, name string) {
	t.Helper()
	assert.Equal(t, p.Extent(), p.Canvas, name)
	assert.InDelta(t, box.Width, p.Canvas.Width, 1, name)
	assert.InDelta(t, box.Height, p.Canvas.Height, 1, name)
}

func boxes() []Dimensions {
	return []Dimensions{
		dims(1, 1), dims(50, 50), dims(99, 100), dims(100, 99),
		dims(200, 100), dims(100, 200), dims(300, 50), dims(500, 500),
	}
}
