package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sunthewhat/academic-cert-api/internal/apperror"
)

// LocalStore writes artifacts into a directory. Handles are file paths.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := s.Handle(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

func (s *LocalStore) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(handle)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperror.NotFound("stored file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", handle, err)
	}
	return f, nil
}

func (s *LocalStore) Delete(ctx context.Context, handle string) error {
	err := os.Remove(handle)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", handle, err)
	}
	return nil
}

func (s *LocalStore) Handle(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Promote renames within the store directory, so readers see either the old
// file or the new one.
func (s *LocalStore) Promote(ctx context.Context, handle string, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target := s.Handle(name)
	if err := os.Rename(handle, target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperror.NotFound("stored file")
		}
		return "", fmt.Errorf("failed to promote %s: %w", handle, err)
	}
	return target, nil
}
