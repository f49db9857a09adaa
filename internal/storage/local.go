package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local implements Storage on the local filesystem. Suitable for single-node
// deployments and tests; swap the backend via Config.Type for anything else.
type Local struct {
	basePath string
	baseURL  string
}

// NewLocal creates the base directory if needed and returns the store.
func NewLocal(cfg Config) (*Local, error) {
	base := cfg.BasePath
	if base == "" {
		base = "./uploads"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base directory: %w", err)
	}
	return &Local{basePath: base, baseURL: strings.TrimRight(cfg.BaseURL, "/")}, nil
}

func (s *Local) fullPath(path string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(path))
}

// Save writes the reader's contents to path under the base directory.
func (s *Local) Save(_ context.Context, path string, r io.Reader, _ string) error {
	full := s.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage: create directory: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage: write file: %w", err)
	}
	return nil
}

// Open returns the stored file for reading.
func (s *Local) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(s.fullPath(path))
	if err != nil {
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	return f, nil
}

// Delete removes the stored file; missing files are ignored.
func (s *Local) Delete(_ context.Context, path string) error {
	if err := os.Remove(s.fullPath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

// Exists reports whether the file is present.
func (s *Local) Exists(_ context.Context, path string) (bool, error) {
	if _, err := os.Stat(s.fullPath(path)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// URL maps a stored reference to its public URL.
func (s *Local) URL(path string) string {
	if s.baseURL == "" {
		return "/files/" + path
	}
	return s.baseURL + "/" + path
}
