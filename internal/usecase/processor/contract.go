package processor

import "context"

type fileRepository interface {
	Save(ctx context.Context, path string, data []byte, contentType string) error
}
