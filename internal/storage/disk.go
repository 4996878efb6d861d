package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const photoDir = "mortality"

// DiskStorage implements PhotoStore on the local filesystem. Files live in
// <baseDir>/mortality and are referenced as <urlPrefix>/mortality/<name>.
type DiskStorage struct {
	logger    *zap.Logger
	baseDir   string
	urlPrefix string
	maxSize   int64
}

// NewDiskStorage creates a new disk storage
func NewDiskStorage(logger *zap.Logger, baseDir, urlPrefix string, maxSize int64) (*DiskStorage, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, photoDir), 0755); err != nil {
		return nil, err
	}

	return &DiskStorage{
		logger:    logger.Named("storage.disk"),
		baseDir:   baseDir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxSize:   maxSize,
	}, nil
}

// IsImage reports whether a declared content type is acceptable
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// Save writes the photo to a temporary file and renames it into place once
// fully copied.
func (s *DiskStorage) Save(ctx context.Context, farmerID uint, contentType string, content io.Reader) (string, error) {
	if !IsImage(contentType) {
		return "", ErrNotImage
	}

	name := fmt.Sprintf("mortality_%d_%s%s", farmerID, uuid.NewString(), extensionFor(contentType))
	dir := filepath.Join(s.baseDir, photoDir)

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	reader := content
	if s.maxSize > 0 {
		reader = io.LimitReader(content, s.maxSize+1)
	}
	n, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}
	if s.maxSize > 0 && n > s.maxSize {
		return "", ErrTooLarge
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return "", err
	}

	s.logger.Debug("stored photo", zap.String("name", name), zap.Int64("bytes", n))
	return path.Join(s.urlPrefix, photoDir, name), nil
}

// Delete removes the photo behind ref
func (s *DiskStorage) Delete(ctx context.Context, ref string) error {
	filePath, err := s.resolve(ref)
	if err != nil {
		return err
	}
	return os.Remove(filePath)
}

func (s *DiskStorage) resolve(ref string) (string, error) {
	prefix := path.Join(s.urlPrefix, photoDir) + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", ErrInvalidReference
	}
	name := strings.TrimPrefix(ref, prefix)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidReference
	}
	return filepath.Join(s.baseDir, photoDir, name), nil
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".jpg"
	}
	switch mediaType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		return exts[0]
	}
	return ".img"
}
