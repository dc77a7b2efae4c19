// Package storage provides blob storage for uploaded media.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Bucket names used by the application.
const (
	BucketBrandProfilePics = "brand-profile-pics"
	BucketClipSubmissions  = "clip-submissions"
	BucketClipThumbnails   = "clip-thumbnails"
	BucketPortfolioImages  = "portfolio-images"
)

var (
	// ErrNotFound is returned when the requested object does not exist.
	ErrNotFound = errors.New("storage: object not found")
	// ErrPermission is returned when the store cannot access the object.
	ErrPermission = errors.New("storage: permission denied")
)

// Store abstracts the blob backend. Paths are forward-slash separated and
// relative to the bucket.
type Store interface {
	// Upload writes content under bucket/path and returns the public URL.
	Upload(ctx context.Context, bucket, path string, content []byte, contentType string) (string, error)
	// Delete removes the object. Deleting a missing object returns ErrNotFound.
	Delete(ctx context.Context, bucket, path string) error
}

// ParseObjectURL splits a public media URL back into bucket and object path.
// Compensating deletes only hold the stored URL, not the original upload
// coordinates, so this must invert the URL scheme used by every Store.
func ParseObjectURL(rawURL string) (bucket, path string, err error) {
	idx := strings.Index(rawURL, "/media/")
	if idx < 0 {
		return "", "", fmt.Errorf("storage: %q is not a media URL", rawURL)
	}
	rest := strings.TrimPrefix(rawURL[idx:], "/media/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("storage: %q is missing bucket or object path", rawURL)
	}
	return parts[0], parts[1], nil
}
