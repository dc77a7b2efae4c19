package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore is a Store backed by a local directory tree. Objects live at
// <root>/<bucket>/<path> and are served under <baseURL>/media/.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore returns a DiskStore rooted at dir. baseURL is the public
// origin URLs are minted against, without a trailing slash.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: root directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create root %s: %w", dir, err)
	}
	return &DiskStore{
		root:    dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Root returns the directory objects are written under.
func (s *DiskStore) Root() string {
	return s.root
}

func (s *DiskStore) objectPath(bucket, path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: invalid object path %q", path)
	}
	if bucket == "" || strings.ContainsAny(bucket, `/\`) {
		return "", fmt.Errorf("storage: invalid bucket %q", bucket)
	}
	return filepath.Join(s.root, bucket, cleaned), nil
}

// Upload writes the object to disk and returns its public URL.
func (s *DiskStore) Upload(ctx context.Context, bucket, path string, content []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full, err := s.objectPath(bucket, path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		if os.IsPermission(err) {
			return "", fmt.Errorf("storage: upload %s/%s: %w", bucket, path, ErrPermission)
		}
		return "", fmt.Errorf("storage: failed to write %s/%s: %w", bucket, path, err)
	}

	return fmt.Sprintf("%s/media/%s/%s", s.baseURL, bucket, path), nil
}

// Delete removes the object from disk.
func (s *DiskStore) Delete(ctx context.Context, bucket, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := s.objectPath(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage: delete %s/%s: %w", bucket, path, ErrNotFound)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("storage: delete %s/%s: %w", bucket, path, ErrPermission)
		}
		return fmt.Errorf("storage: failed to delete %s/%s: %w", bucket, path, err)
	}
	return nil
}
