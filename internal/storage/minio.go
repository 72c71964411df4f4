package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
)

// MinioStore keeps artifacts in a bucket. Handles have the form
// "minio://bucket/object".
type MinioStore struct {
	client *minio.Client
	bucket string

	once      sync.Once
	bucketErr error
}

const minioScheme = "minio://"

func NewMinioStore(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	s.once.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.bucketErr = fmt.Errorf("failed to check bucket existence: %w", err)
			return
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
				s.bucketErr = fmt.Errorf("failed to create bucket: %w", err)
			}
		}
	})
	return s.bucketErr
}

func (s *MinioStore) Save(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return s.Handle(name), nil
}

func (s *MinioStore) Handle(name string) string {
	return minioScheme + s.bucket + "/" + name
}

// Promote copies the object to name and removes the original.
func (s *MinioStore) Promote(ctx context.Context, handle string, name string) (string, error) {
	src, err := ObjectName(handle, s.bucket)
	if err != nil {
		return "", err
	}
	_, err = s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: name},
		minio.CopySrcOptions{Bucket: s.bucket, Object: src},
	)
	if err != nil {
		return "", fmt.Errorf("failed to promote %s: %w", src, err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, src, minio.RemoveObjectOptions{}); err != nil {
		return "", fmt.Errorf("failed to remove staged %s: %w", src, err)
	}
	return s.Handle(name), nil
}

// ObjectName extracts the object key from a handle produced by Save.
func ObjectName(handle string, bucket string) (string, error) {
	prefix := minioScheme + bucket + "/"
	if !strings.HasPrefix(handle, prefix) || len(handle) == len(prefix) {
		return "", fmt.Errorf("handle %q does not belong to bucket %s", handle, bucket)
	}
	return strings.TrimPrefix(handle, prefix), nil
}

func (s *MinioStore) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	name, err := ObjectName(handle, s.bucket)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	// GetObject is lazy; Stat surfaces a missing key.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, apperror.NotFound("stored file")
		}
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return obj, nil
}

func (s *MinioStore) Delete(ctx context.Context, handle string) error {
	name, err := ObjectName(handle, s.bucket)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}
