package thumbnail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dims(w, h int) Dimensions {
	return Dimensions{Width: w, Height: h}
}

func TestByWidth(t *testing.T) {
	tests := []struct {
		name     string
		original Dimensions
		width    int
		want     Dimensions
	}{
		{"downscale landscape", dims(1000, 500), 200, dims(200, 100)},
		{"no upscale", dims(1000, 500), 1500, dims(1000, 500)},
		{"same width", dims(1000, 500), 1000, dims(1000, 500)},
		{"truncates", dims(1920, 1080), 500, dims(500, 281)},
		{"portrait", dims(600, 900), 300, dims(300, 450)},
		{"clamps to one pixel", dims(1000, 1), 10, dims(10, 1)},
		{"zero target", dims(1000, 500), 0, Dimensions{}},
		{"empty original", Dimensions{}, 100, Dimensions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ByWidth(tt.original, tt.width))
		})
	}
}

func TestByHeight(t *testing.T) {
	tests := []struct {
		name     string
		original Dimensions
		height   int
		want     Dimensions
	}{
		{"downscale landscape", dims(1920, 1080), 500, dims(888, 500)},
		{"no upscale", dims(1000, 500), 501, dims(1000, 500)},
		{"portrait", dims(600, 900), 300, dims(200, 300)},
		{"zero target", dims(1000, 500), 0, Dimensions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ByHeight(tt.original, tt.height))
		})
	}
}

func TestByShorterSide(t *testing.T) {
	// landscape: height is the shorter side
	assert.Equal(t, dims(400, 200), ByShorterSide(dims(1000, 500), 300, 200))
	// portrait: width is the shorter side
	assert.Equal(t, dims(300, 600), ByShorterSide(dims(500, 1000), 300, 200))
	// square resolves by height
	assert.Equal(t, dims(250, 250), ByShorterSide(dims(500, 500), 100, 250))
}

func TestByLongerSide(t *testing.T) {
	assert.Equal(t, dims(300, 150), ByLongerSide(dims(1000, 500), 300, 200))
	assert.Equal(t, dims(100, 200), ByLongerSide(dims(500, 1000), 300, 200))
	assert.Equal(t, dims(250, 250), ByLongerSide(dims(500, 500), 100, 250))
}

func TestNoUpscaleInvariant(t *testing.T) {
	for _, o := range grid() {
		for _, target := range []int{o.Width + 1, o.Width * 2, o.Height + 1, 10000} {
			if target > o.Width {
				assert.Equal(t, o, ByWidth(o, target), "ByWidth(%v, %d)", o, target)
			}
			if target > o.Height {
				assert.Equal(t, o, ByHeight(o, target), "ByHeight(%v, %d)", o, target)
			}
		}
	}
}

func TestAspectPreservationTruncates(t *testing.T) {
	for _, o := range grid() {
		for _, nw := range []int{1, 7, 50, 99, 100, 333, 640} {
			if nw > o.Width {
				continue
			}
			want := nw * o.Height / o.Width
			if want == 0 {
				continue
			}
			got := ByWidth(o, nw)
			assert.Equal(t, nw, got.Width)
			assert.Equal(t, want, got.Height, "ByWidth(%v, %d)", o, nw)
		}
	}
}

func grid() []Dimensions {
	sides := []int{1, 2, 3, 7, 99, 100, 101, 333, 640, 1000, 1001, 1080, 1920}
	var out []Dimensions
	for _, w := range sides {
		for _, h := range sides {
			out = append(out, dims(w, h))
		}
	}
	return out
}
