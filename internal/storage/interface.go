package storage

import (
	"context"
	"io"
	"time"
)

// Store is the staging backend for uploaded tax documents. Files land
// here under the pre-signed key and are picked up by the back office
// after submission.
type Store interface {
	// SaveFile writes the file under the given staging key.
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a staged file for reading.
	ReadFile(key string) (io.ReadCloser, error)

	// FileExists checks whether a staged file exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a staged file.
	DeleteFile(ctx context.Context, key string) error

	// ListStale returns keys of staged files last modified before the
	// cutoff, for scheduled cleanup.
	ListStale(ctx context.Context, cutoff time.Time) ([]string, error)
}
