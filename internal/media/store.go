// Package media stores uploaded avatar images on local disk and hands back
// the public path they are served under.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sociallink-app/backend/internal/apperr"
)

// MaxUploadBytes is the upload size ceiling (5 MiB).
const MaxUploadBytes = 5 << 20

// PublicPrefix is the URL prefix uploads are served under.
const PublicPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Store writes validated uploads into a single directory. Replaced avatars
// are not purged; old files stay on disk until cleaned up externally.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save validates and persists an uploaded file, returning its public path.
// The filename combines owner, timestamp and a random suffix so concurrent
// uploads cannot collide.
func (s *Store) Save(ownerID uint, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", apperr.New(apperr.UnsupportedMedia, "Unsupported image type; allowed: jpeg, jpg, png, webp")
	}
	// Browsers always set a concrete image type; octet-stream means the
	// client declared nothing, so the extension check stands alone.
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" && !allowedContentTypes[ct] {
		return "", apperr.New(apperr.UnsupportedMedia, "Unsupported image content type")
	}
	if fh.Size > MaxUploadBytes {
		return "", apperr.New(apperr.PayloadTooLarge, "Image exceeds the 5 MiB upload limit")
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "Failed to read upload", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d_%d_%s%s", ownerID, time.Now().Unix(), uuid.NewString()[:8], ext)
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "Failed to store upload", err)
	}
	defer dst.Close()

	// Cap the copy one byte past the ceiling to catch senders whose
	// declared Size understates the body.
	n, err := io.Copy(dst, io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		os.Remove(dstPath)
		return "", apperr.Wrap(apperr.Internal, "Failed to store upload", err)
	}
	if n > MaxUploadBytes {
		os.Remove(dstPath)
		return "", apperr.New(apperr.PayloadTooLarge, "Image exceeds the 5 MiB upload limit")
	}

	return PublicPrefix + "/" + name, nil
}

// Dir returns the directory uploads are written to.
func (s *Store) Dir() string { return s.dir }
