package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"image-thumbnailer/internal/domain"
	"image-thumbnailer/internal/raster"
	"image-thumbnailer/internal/thumbnail"

	"github.com/wb-go/wbf/zlog"
	"golang.org/x/sync/errgroup"
)

// Rendered is one encoded thumbnail.
type Rendered struct {
	Spec   string
	Plan   thumbnail.CanvasPlan
	Format raster.Format
	Size   thumbnail.Dimensions
	Data   []byte
}

type ImageProcessor struct {
	compositor *raster.Compositor
	specs      []thumbnail.ThumbnailSpec
	quality    int
	limit      int
	fileRepo   fileRepository
	logger     *zlog.Zerolog
}

// NewImageProcessor returns a generator rendering specs with compositor.
// limit bounds the specs rendered at once for a single image; zero or less
// renders every spec concurrently.
func NewImageProcessor(compositor *raster.Compositor, specs []thumbnail.ThumbnailSpec, quality, limit int, fileRepo fileRepository, logger *zlog.Zerolog) *ImageProcessor {
	if quality <= 0 {
		quality = raster.DefaultQuality
	}
	return &ImageProcessor{
		compositor: compositor,
		specs:      specs,
		quality:    quality,
		limit:      limit,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

func (p *ImageProcessor) Specs() []thumbnail.ThumbnailSpec {
	return p.specs
}

func (p *ImageProcessor) Spec(name string) (thumbnail.ThumbnailSpec, bool) {
	for _, spec := range p.specs {
		if spec.Name == name {
			return spec, true
		}
	}
	return thumbnail.ThumbnailSpec{}, false
}

func (p *ImageProcessor) Decode(data []byte) (image.Image, raster.Format, error) {
	return p.compositor.Backend().Decode(bytes.NewReader(data))
}

// Render composites and encodes one spec. src is only read, so Render may be
// called concurrently with the same source.
func (p *ImageProcessor) Render(src image.Image, format raster.Format, spec thumbnail.ThumbnailSpec) (*Rendered, error) {
	out, err := outputFormat(format, spec)
	if err != nil {
		return nil, err
	}

	img, plan := p.compositor.Render(src, spec)

	var buf bytes.Buffer
	if err := p.compositor.Backend().Encode(&buf, img, out, p.quality); err != nil {
		return nil, fmt.Errorf("spec %s: %w", spec.Name, err)
	}

	return &Rendered{
		Spec:   spec.Name,
		Plan:   plan,
		Format: out,
		Size:   thumbnail.DimensionsOf(img.Bounds()),
		Data:   buf.Bytes(),
	}, nil
}

// Process decodes the original once and stores a thumbnail for every spec the
// task asks for. The returned result is never nil.
func (p *ImageProcessor) Process(ctx context.Context, task *domain.ThumbnailTask, originalData []byte) (*domain.ThumbnailResult, error) {
	result := &domain.ThumbnailResult{
		TaskID:  task.ID,
		ImageID: task.ImageID,
		Status:  domain.StatusCompleted,
	}

	specs, err := p.selectSpecs(task.Specs)
	if err != nil {
		return failed(result, err), err
	}

	img, format, err := p.Decode(originalData)
	if err != nil {
		p.logger.Error().Err(err).Str("image_id", task.ImageID).Msg("Failed to decode image")
		err = fmt.Errorf("failed to decode image: %w", err)
		return failed(result, err), err
	}

	p.logger.Info().
		Str("image_id", task.ImageID).
		Str("original_format", string(format)).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Str("backend", p.compositor.Backend().Name()).
		Int("specs", len(specs)).
		Msg("Starting thumbnail generation")

	thumbs := make([]domain.Thumbnail, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	if p.limit > 0 {
		g.SetLimit(p.limit)
	}

	for i, spec := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			thumb, err := p.generate(gctx, task.ImageID, img, format, spec)
			if err != nil {
				p.logger.Error().
					Err(err).
					Str("image_id", task.ImageID).
					Str("spec", spec.Name).
					Msg("Thumbnail failed")
				return fmt.Errorf("spec %s failed: %w", spec.Name, err)
			}
			thumbs[i] = thumb
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return failed(result, err), err
	}

	result.Thumbnails = thumbs

	p.logger.Info().
		Str("image_id", task.ImageID).
		Str("status", string(result.Status)).
		Int("thumbnails", len(thumbs)).
		Msg("Thumbnail generation completed")

	return result, nil
}

func (p *ImageProcessor) generate(ctx context.Context, imageID string, img image.Image, format raster.Format, spec thumbnail.ThumbnailSpec) (domain.Thumbnail, error) {
	rendered, err := p.Render(img, format, spec)
	if err != nil {
		return domain.Thumbnail{}, err
	}

	path := domain.ThumbnailPath(imageID, spec.Name, rendered.Format.Extension())
	contentType := rendered.Format.ContentType()

	if err := p.fileRepo.Save(ctx, path, rendered.Data, contentType); err != nil {
		return domain.Thumbnail{}, fmt.Errorf("failed to save thumbnail: %w", err)
	}

	p.logger.Debug().
		Str("image_id", imageID).
		Str("spec", spec.Name).
		Str("rule", spec.Rule.String()).
		Str("path", path).
		Int("width", rendered.Size.Width).
		Int("height", rendered.Size.Height).
		Int("size", len(rendered.Data)).
		Msg("Thumbnail saved")

	return domain.Thumbnail{
		Spec:        spec.Name,
		Path:        path,
		Format:      string(rendered.Format),
		ContentType: contentType,
		Width:       rendered.Size.Width,
		Height:      rendered.Size.Height,
		Size:        int64(len(rendered.Data)),
	}, nil
}

func (p *ImageProcessor) selectSpecs(names []string) ([]thumbnail.ThumbnailSpec, error) {
	if len(p.specs) == 0 {
		return nil, ErrNoSpecs
	}
	if len(names) == 0 {
		return p.specs, nil
	}

	specs := make([]thumbnail.ThumbnailSpec, 0, len(names))
	for _, name := range names {
		spec, ok := p.Spec(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSpec, name)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func outputFormat(source raster.Format, spec thumbnail.ThumbnailSpec) (raster.Format, error) {
	if spec.Format == "" {
		return source.Output(), nil
	}
	f, err := raster.ParseFormat(spec.Format)
	if err != nil {
		return "", fmt.Errorf("spec %s: %w", spec.Name, err)
	}
	return f.Output(), nil
}

func failed(result *domain.ThumbnailResult, err error) *domain.ThumbnailResult {
	result.Status = domain.StatusFailed
	result.Error = err.Error()
	return result
}
