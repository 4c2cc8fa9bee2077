package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"image-thumbnailer/internal/thumbnail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
kafka:
  brokers: [kafka-1:9092, kafka-2:9092]
thumbnails:
  backend: imagick
  quality: 80
  specs:
    small:
      width: 100
    card:
      fit: [600, 400, true]
      watermark: 9
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "thumbnail-tasks", cfg.Kafka.TasksTopic)
	assert.Equal(t, "8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "imagick", cfg.Thumbnails.Backend)
	assert.Equal(t, 80, cfg.Thumbnails.Quality)
	assert.Equal(t, 0.5, cfg.Thumbnails.Watermark.Opacity)
	assert.False(t, cfg.Thumbnails.Watermark.Enabled())

	specs, err := cfg.ThumbnailSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "card", specs[0].Name)
	assert.Equal(t, thumbnail.FitRule{Width: 600, Height: 400, KeepAspect: true}, specs[0].Rule)
	assert.Equal(t, thumbnail.AnchorBottomRight, specs[0].Watermark)
	assert.Equal(t, thumbnail.ByWidthRule{Width: 100}, specs[1].Rule)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("THUMBNAILS_BACKEND", "bild")
	t.Setenv("WORKER_CONCURRENCY", "9")

	cfg, err := Load(writeConfig(t, "worker:\n  concurrency: 2\n"))
	require.NoError(t, err)

	assert.Equal(t, "bild", cfg.Thumbnails.Backend)
	assert.Equal(t, 9, cfg.Worker.Concurrency)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gd", cfg.Thumbnails.Backend)
	assert.Equal(t, 100, cfg.Thumbnails.Quality)
	assert.Equal(t, 4, cfg.Worker.Concurrency)

	strategy := cfg.DefaultRetryStrategy()
	assert.Equal(t, 3, strategy.Attempts)
	assert.Equal(t, 500*time.Millisecond, strategy.Delay)
	assert.Equal(t, 2.0, strategy.Backoff)
}

func TestThumbnailSpecsFailFast(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
thumbnails:
  specs:
    broken:
      watermark: 3
`))
	require.NoError(t, err)

	_, err = cfg.ThumbnailSpecs()
	var cfgErr *thumbnail.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "broken", cfgErr.Spec)
}
