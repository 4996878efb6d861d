package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotImage         = errors.New("content type is not an image")
	ErrTooLarge         = errors.New("file exceeds the upload limit")
	ErrInvalidReference = errors.New("invalid photo reference")
)

// PhotoStore keeps uploaded mortality photos. The reference returned by Save
// is what gets persisted on the record and is accepted unchanged by Delete.
type PhotoStore interface {
	// Save stores an image and returns its reference. A content type that
	// does not begin with image/ is rejected before anything is written.
	Save(ctx context.Context, farmerID uint, contentType string, content io.Reader) (string, error)

	// Delete removes the stored bytes for a reference once its record is
	// gone. ErrInvalidReference is returned for references Save never issues.
	Delete(ctx context.Context, ref string) error
}
