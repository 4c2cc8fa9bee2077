package thumbnail

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	t.Run("plain rule copies the whole resample", func(t *testing.T) {
		l := ByWidthRule{Width: 200}.Resolve(dims(1000, 500)).Layout()

		assert.Equal(t, dims(200, 100), l.Canvas)
		assert.Equal(t, image.Rect(0, 0, 200, 100), l.Source)
		assert.Equal(t, image.Point{}, l.Dest)
		assert.False(t, l.Uncovered)
	})

	t.Run("padding shifts the destination", func(t *testing.T) {
		l := Fit(dims(1920, 1080), 500, 500, true).Layout()

		assert.Equal(t, dims(500, 499), l.Canvas)
		assert.Equal(t, image.Rect(0, 0, 500, 281), l.Source)
		assert.Equal(t, image.Pt(0, 109), l.Dest)
		assert.Equal(t, image.Rect(0, 109, 500, 390), l.DestRect())
		assert.True(t, l.Uncovered)
	})

	t.Run("cropping shifts the source origin", func(t *testing.T) {
		l := Fit(dims(1920, 1080), 500, 500, false).Layout()

		assert.Equal(t, dims(888, 500), l.Resample)
		assert.Equal(t, image.Rect(194, 0, 694, 500), l.Source)
		assert.Equal(t, image.Point{}, l.Dest)
		assert.False(t, l.Uncovered)
	})

	t.Run("destination never leaves the canvas", func(t *testing.T) {
		for _, o := range grid() {
			for _, box := range boxes() {
				for _, keep := range []bool{true, false} {
					l := Fit(o, box.Width, box.Height, keep).Layout()
					canvas := image.Rectangle{Max: l.Canvas.Point()}
					resample := image.Rectangle{Max: l.Resample.Point()}

					assert.True(t, l.DestRect().In(canvas), "%v into %v", o, box)
					assert.True(t, l.Source.In(resample), "%v into %v", o, box)
				}
			}
		}
	})
}
