package image

import (
	"context"
	"io"

	"image-thumbnailer/internal/domain"

	"github.com/wb-go/wbf/retry"
)

type fileRepository interface {
	Save(ctx context.Context, path string, data []byte, contentType string) error
	GetObject(ctx context.Context, path string) (io.ReadCloser, error)
	Find(ctx context.Context, prefix string) (domain.Object, error)
	List(ctx context.Context, prefix string) ([]domain.Object, error)
	DeleteObject(ctx context.Context, path string) error
	DeleteObjectsWithPrefix(ctx context.Context, prefix string) error
}

type taskProducer interface {
	Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error
}
