// Package storage keeps rendered certificates and QR images.
package storage

import (
	"context"
	"io"
)

// Store saves artifacts under flat names and hands back an opaque handle that
// is persisted with the certificate.
type Store interface {
	Save(ctx context.Context, name string, contentType string, data []byte) (string, error)
	Open(ctx context.Context, handle string) (io.ReadCloser, error)
	Delete(ctx context.Context, handle string) error

	// Handle is the handle Save would return for name. Nothing is written.
	Handle(name string) string
	// Promote moves a saved artifact to name, replacing any artifact already
	// there, and returns the new handle.
	Promote(ctx context.Context, handle string, name string) (string, error)
}

const (
	ContentTypePDF = "application/pdf"
	ContentTypePNG = "image/png"
)
