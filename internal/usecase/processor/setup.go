package processor

import (
	"fmt"

	"image-thumbnailer/internal/config"
	"image-thumbnailer/internal/raster"
	_ "image-thumbnailer/internal/raster/all"
	"image-thumbnailer/internal/thumbnail"

	"github.com/wb-go/wbf/zlog"
)

// NewCompositor builds the raster backend, background and watermark overlay
// named in cfg. Unknown or unlinked backends fail here, before any image is
// processed.
func NewCompositor(cfg config.Thumbnails) (*raster.Compositor, error) {
	backend, err := raster.New(cfg.Backend)
	if err != nil {
		return nil, err
	}

	background, err := raster.ParseColor(cfg.Background, cfg.BackgroundOpacity)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	overlay, err := newOverlay(backend, cfg.Watermark)
	if err != nil {
		return nil, err
	}

	return raster.NewCompositor(backend, background, overlay), nil
}

func newOverlay(backend raster.Backend, cfg config.Watermark) (*raster.Overlay, error) {
	switch {
	case cfg.Path != "":
		return raster.LoadOverlay(backend, cfg.Path, cfg.Opacity)
	case cfg.Text != "":
		c, err := raster.ParseColor(cfg.Color, 1)
		if err != nil {
			return nil, fmt.Errorf("watermark color: %w", err)
		}
		return raster.TextOverlay(cfg.Text, cfg.FontSize, c, cfg.Opacity)
	default:
		return nil, nil
	}
}

// NewFromConfig wires a processor from the thumbnails section.
func NewFromConfig(cfg config.Thumbnails, fileRepo fileRepository, logger *zlog.Zerolog) (*ImageProcessor, error) {
	specs, err := thumbnail.ParseSpecs(cfg.Specs)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, ErrNoSpecs
	}

	compositor, err := NewCompositor(cfg)
	if err != nil {
		return nil, err
	}

	for _, spec := range specs {
		if spec.HasWatermark() && !cfg.Watermark.Enabled() {
			logger.Warn().Str("spec", spec.Name).Msg("Spec asks for a watermark but none is configured")
		}
	}

	logger.Info().
		Str("backend", compositor.Backend().Name()).
		Int("specs", len(specs)).
		Bool("watermark", cfg.Watermark.Enabled()).
		Msg("Thumbnail processor configured")

	return NewImageProcessor(compositor, specs, cfg.Quality, cfg.Concurrency, fileRepo, logger), nil
}
