// Package storage abstracts where poster files live. The disk store mirrors
// a plain uploads directory; the S3 store targets any S3-compatible bucket.
package storage

//go:generate mockgen -destination=../mocks/mock_storage.go -package=mocks github.com/SudarshanShah/MovieApi/internal/storage Storage

import (
	"context"
	"io"
)

// Storage is an opaque blob store keyed by filename.
type Storage interface {
	// Save stores the content under name. Saving over an existing name
	// fails with ErrPosterAlreadyExists.
	Save(ctx context.Context, name string, r io.Reader) error
	// Open returns the stored content for reading; the caller closes it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}
