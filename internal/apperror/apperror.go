// Package apperror holds the error kinds shared by the issuance and
// verification pipelines and the HTTP layer that reports them.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat rejects an upload whose file type is not a supported table format.
	ErrFormat = errors.New("unsupported file format")

	// ErrPersistence is returned when a batch transaction fails to commit.
	ErrPersistence = errors.New("failed to persist batch")

	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller does not own the referenced resource.
	ErrForbidden = errors.New("access denied")
)

// RowError describes the failure of a single spreadsheet row. Row is 1-based.
type RowError struct {
	Row    int
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

func (e *RowError) Unwrap() error { return e.Err }

func NewRowError(row int, err error) *RowError {
	return &RowError{Row: row, Reason: err.Error(), Err: err}
}

func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}
