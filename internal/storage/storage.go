package storage

import (
	"context"
	"io"
)

// Package storage contains the artifact store abstraction and its backends.
// Keys are service-generated, forward-slash relative paths (never derived from
// client-supplied filenames), so backends do not need their own locking: two
// concurrent uploads can never target the same key.

// FileStore holds uploaded artifacts referenced by document rows.
type FileStore interface {
	// Put writes the content under the given key. The key must not already
	// exist; stored names are unique per request so a collision is a bug.
	Put(ctx context.Context, key string, r io.Reader) error
	// Open returns a streaming reader over the artifact at key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Exists reports whether an artifact is present at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes the artifact at key.
	Delete(ctx context.Context, key string) error
}
