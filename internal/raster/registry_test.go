package raster_test

import (
	"testing"

	"image-thumbnailer/internal/raster"
	_ "image-thumbnailer/internal/raster/all"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    string
		err     error
	}{
		{name: "raw pixel", backend: "draw", want: "draw"},
		{name: "gd alias", backend: "gd", want: "draw"},
		{name: "imaging", backend: "imaging", want: "imaging"},
		{name: "imagick alias", backend: "Imagick", want: "imaging"},
		{name: "bild", backend: " bild ", want: "bild"},
		{name: "known but not linked", backend: "vips", err: raster.ErrBackendUnavailable},
		{name: "unknown", backend: "photoshop", err: raster.ErrUnsupportedBackend},
		{name: "empty", backend: "", err: raster.ErrUnsupportedBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := raster.New(tt.backend)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Name())
		})
	}
}

func TestAvailable(t *testing.T) {
	names := raster.Available()

	assert.Subset(t, names, []string{"bild", "draw", "gd", "imagick", "imaging"})
	assert.NotContains(t, names, "vips")
	assert.IsNonDecreasing(t, names)
}

func TestRegisterTwicePanics(t *testing.T) {
	assert.Panics(t, func() {
		raster.Register(func() raster.Backend { return nil }, "draw")
	})
}
