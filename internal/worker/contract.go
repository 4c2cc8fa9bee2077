package worker

import (
	"context"
	"io"

	"image-thumbnailer/internal/domain"
)

type fileRepository interface {
	GetObject(ctx context.Context, path string) (io.ReadCloser, error)
}

type thumbnailProcessor interface {
	Process(ctx context.Context, task *domain.ThumbnailTask, originalData []byte) (*domain.ThumbnailResult, error)
}
