// Package storage persists uploaded images (owner avatars, dog photos,
// verification documents) behind a small port, and owns the policy that maps
// stored references to display URLs.
package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is the persistence port for uploaded files. Paths are
// forward-slash-separated references relative to the store root; the same
// reference strings are what the domain models persist in their URL columns.
type Storage interface {
	// Save stores the reader's contents at path, creating parents as needed.
	Save(ctx context.Context, path string, r io.Reader, contentType string) error

	// Open returns the file contents. The caller closes the reader.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a file is present at path.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public URL serving the file.
	URL(path string) string
}

// Config selects and parameterizes the storage backend.
type Config struct {
	// Type names the backend. Currently "local".
	Type string
	// BasePath is the filesystem root for the local backend.
	BasePath string
	// BaseURL prefixes public URLs. Empty means server-relative "/files".
	BaseURL string
}

// New constructs the backend named by cfg.Type.
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocal(cfg)
	default:
		return nil, fmt.Errorf("storage: unsupported type %q", cfg.Type)
	}
}
