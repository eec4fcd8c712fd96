// Package storage holds the attachment file stores. Attachment rows keep a
// FilePath column; what that value means (filesystem path or object key) is
// the store's business, and every store enforces its own access boundary.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/config"
)

// Store persists attachment files. Save returns the FilePath value to
// persist alongside the attachment row; Open and Delete take that same
// value back and must refuse anything outside the store's boundary.
type Store interface {
	Save(ctx context.Context, storedName string, r io.Reader) (string, error)
	Open(ctx context.Context, filePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, filePath string) error
}

// New builds the store selected by configuration.
func New(cfg *config.StorageConfig) (Store, error) {
	if cfg.Backend == "s3" {
		return NewS3Store(cfg)
	}
	return NewLocalStore(cfg.LocalRoot)
}

// StoredName generates the on-disk name for an upload: a fresh uuid carrying
// the original extension, so uploads can never collide or smuggle path
// segments through their filename.
func StoredName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}

// SanitizeName strips any path components from a client-supplied filename.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}

// AllowedExtension reports whether the filename's extension is in the
// configured allow-list. The comparison is case-insensitive.
func AllowedExtension(name string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// errOutsideRoot is the uniform refusal for any path that escapes the
// store's boundary. The offending path is never echoed back.
var errOutsideRoot = shared.ErrForbidden.WithMessage("file path outside storage root")
