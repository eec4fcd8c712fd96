package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps attachment files under one root directory. Every path
// it is handed, including values read back from the database, is re-resolved
// to an absolute path and verified to fall under the root before any
// filesystem operation. The check guards against sibling directories that
// share a string prefix with the root ("/data/uploads" vs
// "/data/uploads-old").
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed and resolves it to an
// absolute path once, up front.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// Save writes the upload under the root and returns its absolute path, which
// is what gets persisted as the attachment's FilePath.
func (s *LocalStore) Save(_ context.Context, storedName string, r io.Reader) (string, error) {
	path, err := s.resolve(filepath.Join(s.root, storedName))
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write attachment file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write attachment file: %w", err)
	}
	return path, nil
}

// Open returns the file for download after the containment check passes.
func (s *LocalStore) Open(_ context.Context, filePath string) (io.ReadCloser, error) {
	path, err := s.resolve(filePath)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes the file after the containment check passes. A file that is
// already gone is not an error; the row delete must still proceed.
func (s *LocalStore) Delete(_ context.Context, filePath string) error {
	path, err := s.resolve(filePath)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove attachment file: %w", err)
	}
	return nil
}

// resolve normalizes the path and enforces containment under the root.
// It runs before every filesystem operation; a refused path causes no
// filesystem access at all.
func (s *LocalStore) resolve(filePath string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return "", errOutsideRoot
	}
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", errOutsideRoot
	}
	return abs, nil
}
