package image

import (
	"context"
	"io"

	"image-thumbnailer/internal/domain"
	"image-thumbnailer/internal/thumbnail"
	image_uc "image-thumbnailer/internal/usecase/image"
)

type imageUsecase interface {
	UploadImage(ctx context.Context, data []byte, filename, contentType string, specs []string) (*domain.Image, error)
	GetImage(ctx context.Context, id string) (*domain.ImageState, error)
	GetThumbnail(ctx context.Context, id, spec string) (domain.Object, io.ReadCloser, error)
	DeleteImage(ctx context.Context, id string) error
	Specs() []thumbnail.ThumbnailSpec
	PreviewPlans(original thumbnail.Dimensions, specs []string) ([]image_uc.PlanPreview, error)
}
