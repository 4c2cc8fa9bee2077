package image

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"image-thumbnailer/internal/domain"
	"image-thumbnailer/internal/raster"
	repoImage "image-thumbnailer/internal/repository/image"
	"image-thumbnailer/internal/thumbnail"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// PlanPreview is the geometry one spec would produce for an original size.
type PlanPreview struct {
	Spec      string               `json:"spec"`
	Rule      string               `json:"rule"`
	Plan      thumbnail.CanvasPlan `json:"plan"`
	Layout    thumbnail.Layout     `json:"layout"`
	Watermark thumbnail.Anchor     `json:"watermark,omitempty"`
	Format    string               `json:"format,omitempty"`
}

type ImageUsecase struct {
	fileRepo fileRepository
	producer taskProducer
	specs    []thumbnail.ThumbnailSpec
	logger   *zlog.Zerolog
	retries  retry.Strategy

	mu       sync.RWMutex
	statuses map[string]*domain.ThumbnailResult
}

func NewImageUsecase(fileRepo fileRepository, producer taskProducer, specs []thumbnail.ThumbnailSpec, logger *zlog.Zerolog, retries retry.Strategy) *ImageUsecase {
	return &ImageUsecase{
		fileRepo: fileRepo,
		producer: producer,
		specs:    specs,
		logger:   logger,
		retries:  retries,
		statuses: make(map[string]*domain.ThumbnailResult),
	}
}

func (i *ImageUsecase) Specs() []thumbnail.ThumbnailSpec {
	return i.specs
}

func (i *ImageUsecase) spec(name string) (thumbnail.ThumbnailSpec, bool) {
	for _, spec := range i.specs {
		if spec.Name == name {
			return spec, true
		}
	}
	return thumbnail.ThumbnailSpec{}, false
}

// UploadImage stores the original and queues a thumbnail task for it. specs
// restricts the task to the named specs; empty means all of them.
func (i *ImageUsecase) UploadImage(ctx context.Context, data []byte, filename, contentType string, specs []string) (*domain.Image, error) {
	format, size, err := raster.DecodeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileFormat, err)
	}

	for _, name := range specs {
		if _, ok := i.spec(name); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSpec, name)
		}
	}

	imageID := uuid.New().String()
	originalPath := domain.OriginalPath(imageID, format.Extension())

	if err := i.fileRepo.Save(ctx, originalPath, data, format.ContentType()); err != nil {
		i.logger.Error().Err(err).Str("filename", filename).Msg("Failed to save original image")
		return nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}

	img := &domain.Image{
		ID:               imageID,
		OriginalFilename: filename,
		OriginalSize:     int64(len(data)),
		MimeType:         contentType,
		Format:           string(format),
		Width:            size.Width,
		Height:           size.Height,
		Status:           domain.StatusUploaded,
		OriginalPath:     originalPath,
		CreatedAt:        time.Now(),
	}

	task := &domain.ThumbnailTask{
		ID:           uuid.New().String(),
		ImageID:      imageID,
		OriginalPath: originalPath,
		Specs:        specs,
	}

	value, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := i.producer.Send(ctx, i.retries, []byte(imageID), value); err != nil {
		i.logger.Error().Err(err).Str("image_id", imageID).Msg("Failed to send task to Kafka")
		if delErr := i.fileRepo.DeleteObject(ctx, originalPath); delErr != nil {
			i.logger.Error().Err(delErr).Str("path", originalPath).Msg("Failed to remove orphaned original")
		}
		return nil, fmt.Errorf("%w: %v", ErrMessageQueueError, err)
	}

	img.Status = domain.StatusProcessing
	i.setStatus(&domain.ThumbnailResult{TaskID: task.ID, ImageID: imageID, Status: domain.StatusProcessing})

	i.logger.Info().
		Str("image_id", imageID).
		Str("filename", filename).
		Str("format", string(format)).
		Int("width", size.Width).
		Int("height", size.Height).
		Msg("Image uploaded and queued for thumbnails")
	return img, nil
}

func (i *ImageUsecase) GetImage(ctx context.Context, id string) (*domain.ImageState, error) {
	original, err := i.findOriginal(ctx, id)
	if err != nil {
		return nil, err
	}

	thumbs, err := i.fileRepo.List(ctx, domain.ThumbnailPrefix(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}

	state := &domain.ImageState{
		ID:         id,
		Status:     domain.StatusProcessing,
		Original:   original,
		Thumbnails: thumbs,
	}

	if result, ok := i.status(id); ok {
		state.Status = result.Status
		state.Error = result.Error
	} else if len(thumbs) > 0 {
		state.Status = domain.StatusCompleted
	}
	return state, nil
}

func (i *ImageUsecase) GetThumbnail(ctx context.Context, id, specName string) (domain.Object, io.ReadCloser, error) {
	if _, ok := i.spec(specName); !ok {
		return domain.Object{}, nil, fmt.Errorf("%w: %s", ErrUnknownSpec, specName)
	}

	obj, err := i.fileRepo.Find(ctx, domain.ThumbnailPrefix(id)+specName+".")
	if err != nil {
		if errors.Is(err, repoImage.ErrFileNotFound) {
			return domain.Object{}, nil, ErrThumbnailNotFound
		}
		return domain.Object{}, nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}

	reader, err := i.fileRepo.GetObject(ctx, obj.Path)
	if err != nil {
		if errors.Is(err, repoImage.ErrFileNotFound) {
			return domain.Object{}, nil, ErrThumbnailNotFound
		}
		return domain.Object{}, nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}
	return obj, reader, nil
}

func (i *ImageUsecase) DeleteImage(ctx context.Context, id string) error {
	original, err := i.findOriginal(ctx, id)
	if err != nil {
		return err
	}

	if err := i.fileRepo.DeleteObject(ctx, original.Path); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageError, err)
	}

	prefix := domain.ThumbnailPrefix(id)
	if err := i.fileRepo.DeleteObjectsWithPrefix(ctx, prefix); err != nil {
		i.logger.Error().Err(err).Str("prefix", prefix).Msg("Failed to delete thumbnails")
	}

	i.setStatus(&domain.ThumbnailResult{ImageID: id, Status: domain.StatusDeleted})

	i.logger.Info().Str("image_id", id).Msg("Image deleted successfully")
	return nil
}

// PreviewPlans resolves the named specs, or all of them, against an original
// size without touching any pixels.
func (i *ImageUsecase) PreviewPlans(original thumbnail.Dimensions, names []string) ([]PlanPreview, error) {
	if original.Width <= 0 || original.Height <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDimensions, original)
	}

	specs := i.specs
	if len(names) > 0 {
		specs = make([]thumbnail.ThumbnailSpec, 0, len(names))
		for _, name := range names {
			spec, ok := i.spec(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownSpec, name)
			}
			specs = append(specs, spec)
		}
	}

	previews := make([]PlanPreview, 0, len(specs))
	for _, spec := range specs {
		plan := spec.Plan(original)
		previews = append(previews, PlanPreview{
			Spec:      spec.Name,
			Rule:      spec.Rule.String(),
			Plan:      plan,
			Layout:    plan.Layout(),
			Watermark: spec.Watermark,
			Format:    spec.Format,
		})
	}
	return previews, nil
}

// SaveProcessingResult records a result published by a worker.
func (i *ImageUsecase) SaveProcessingResult(ctx context.Context, result *domain.ThumbnailResult) error {
	if result.ImageID == "" {
		return fmt.Errorf("result without image id")
	}

	i.setStatus(result)

	i.logger.Info().
		Str("image_id", result.ImageID).
		Str("status", string(result.Status)).
		Int("thumbnails", len(result.Thumbnails)).
		Msg("Processing result saved")
	return nil
}

func (i *ImageUsecase) findOriginal(ctx context.Context, id string) (domain.Object, error) {
	obj, err := i.fileRepo.Find(ctx, domain.PathPrefixOriginal+id+".")
	if err != nil {
		if errors.Is(err, repoImage.ErrFileNotFound) {
			return domain.Object{}, ErrImageNotFound
		}
		return domain.Object{}, fmt.Errorf("%w: %v", ErrStorageError, err)
	}
	return obj, nil
}

func (i *ImageUsecase) setStatus(result *domain.ThumbnailResult) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.statuses[result.ImageID] = result
}

func (i *ImageUsecase) status(id string) (*domain.ThumbnailResult, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	r, ok := i.statuses[id]
	return r, ok
}
