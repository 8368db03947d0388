// Package blob stores uploaded version content outside the database.
package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob: object not found")

// Object is an open blob. Callers must Close it.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (*Object, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}
