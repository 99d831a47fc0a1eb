package photo

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("photo not found")
	ErrNotAnImage       = errors.New("uploaded file is not a supported image")
	ErrTooLarge         = errors.New("uploaded file is too large")
	ErrNoThumbnail      = errors.New("thumbnail not available")
	ErrPermissionDenied = errors.New("permission denied")
)

// Photo is an uploaded condition photo. The original upload is
// normalized to JPEG before storage; only internal paths are kept here.
type Photo struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string  // Internal path
	ThumbnailPath *string // Internal path
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL for accessing a photo by its ID.
func URL(id string) string {
	return "/photos/" + id
}

// ThumbnailURL returns the public URL for a photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/photos/" + id + "/thumbnail"
}
