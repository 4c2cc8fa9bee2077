package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"image-thumbnailer/internal/config"
	"image-thumbnailer/internal/domain"
	repoImage "image-thumbnailer/internal/repository/image"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type FileRepository struct {
	client  *minio.Client
	bucket  string
	retries retry.Strategy
	logger  *zlog.Zerolog
}

func NewMinIORepository(cfg *config.Config, retries retry.Strategy, logger *zlog.Zerolog) (*FileRepository, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
		Region: cfg.Minio.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	r := &FileRepository{
		client:  client,
		bucket:  cfg.Minio.Bucket,
		retries: retries,
		logger:  logger,
	}

	if err := r.ensureBucket(context.Background(), cfg.Minio.Region); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepository) ensureBucket(ctx context.Context, region string) error {
	return retry.Do(func() error {
		exists, err := r.client.BucketExists(ctx, r.bucket)
		if err != nil {
			return fmt.Errorf("%w: bucket check: %v", repoImage.ErrStorageError, err)
		}
		if exists {
			return nil
		}

		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			if resp := minio.ToErrorResponse(err); resp.Code == "BucketAlreadyOwnedByYou" {
				return nil
			}
			return fmt.Errorf("%w: create bucket: %v", repoImage.ErrStorageError, err)
		}

		r.logger.Info().Str("bucket", r.bucket).Msg("Bucket created")
		return nil
	}, r.retries)
}

func (r *FileRepository) Save(ctx context.Context, path string, data []byte, contentType string) error {
	if path == "" {
		return fmt.Errorf("%w: empty object path", repoImage.ErrStorageValidation)
	}

	err := retry.Do(func() error {
		_, err := r.client.PutObject(ctx, r.bucket, path, bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: contentType})
		return err
	}, r.retries)
	if err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("Failed to put object")
		return fmt.Errorf("%w: put %s: %v", repoImage.ErrStorageError, path, err)
	}

	r.logger.Debug().Str("path", path).Int("size", len(data)).Msg("Object saved")
	return nil
}

func (r *FileRepository) GetObject(ctx context.Context, path string) (io.ReadCloser, error) {
	if _, err := r.Stat(ctx, path); err != nil {
		return nil, err
	}

	var obj *minio.Object
	err := retry.Do(func() error {
		var err error
		obj, err = r.client.GetObject(ctx, r.bucket, path, minio.GetObjectOptions{})
		return err
	}, r.retries)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", repoImage.ErrStorageError, path, err)
	}
	return obj, nil
}

func (r *FileRepository) Stat(ctx context.Context, path string) (domain.Object, error) {
	info, err := r.client.StatObject(ctx, r.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return domain.Object{}, fmt.Errorf("%w: %s", repoImage.ErrFileNotFound, path)
		}
		return domain.Object{}, fmt.Errorf("%w: stat %s: %v", repoImage.ErrStorageError, path, err)
	}
	return domain.Object{Path: info.Key, Size: info.Size, ContentType: info.ContentType}, nil
}

// List returns the objects stored under prefix.
func (r *FileRepository) List(ctx context.Context, prefix string) ([]domain.Object, error) {
	var objects []domain.Object

	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", repoImage.ErrStorageError, prefix, obj.Err)
		}
		objects = append(objects, domain.Object{Path: obj.Key, Size: obj.Size, ContentType: obj.ContentType})
	}
	return objects, nil
}

// Find returns the first object whose path starts with prefix.
func (r *FileRepository) Find(ctx context.Context, prefix string) (domain.Object, error) {
	objects, err := r.List(ctx, prefix)
	if err != nil {
		return domain.Object{}, err
	}
	if len(objects) > 0 {
		return objects[0], nil
	}
	return domain.Object{}, fmt.Errorf("%w: %s*", repoImage.ErrFileNotFound, prefix)
}

func (r *FileRepository) DeleteObject(ctx context.Context, path string) error {
	err := retry.Do(func() error {
		return r.client.RemoveObject(ctx, r.bucket, path, minio.RemoveObjectOptions{})
	}, r.retries)
	if err != nil {
		return fmt.Errorf("%w: remove %s: %v", repoImage.ErrStorageError, path, err)
	}
	return nil
}

func (r *FileRepository) DeleteObjectsWithPrefix(ctx context.Context, prefix string) error {
	objects := make(chan minio.ObjectInfo)

	go func() {
		defer close(objects)
		for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
			if obj.Err != nil {
				r.logger.Error().Err(obj.Err).Str("prefix", prefix).Msg("Failed to list objects for removal")
				return
			}
			select {
			case objects <- obj:
			case <-ctx.Done():
				return
			}
		}
	}()

	var errs []error
	for rmErr := range r.client.RemoveObjects(ctx, r.bucket, objects, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("%s: %w", rmErr.ObjectName, rmErr.Err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: remove prefix %s: %v", repoImage.ErrStorageError, prefix, errors.Join(errs...))
	}
	return nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
