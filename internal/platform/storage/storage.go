// Package storage resolves a candidate's opaque resumeBlobRef to bytes.
// The blob store is treated as an external collaborator; this package
// is the pluggable adapter behind that interface.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobStore saves and retrieves resume blobs, returning an opaque
// reference string on save that later calls use to retrieve or remove it.
type BlobStore interface {
	Save(ctx context.Context, filename string, contentType string, data []byte) (ref string, err error)
	Read(ctx context.Context, ref string) ([]byte, error)
	Delete(ctx context.Context, ref string) error
}

// LocalStore is the filesystem-backed fallback used when no S3 bucket is
// configured, rooted at uploads.resumeDir.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create resume dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(s.root, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write resume blob: %w", err)
	}
	return key, nil
}

func (s *LocalStore) Read(ctx context.Context, ref string) ([]byte, error) {
	path := filepath.Join(s.root, filepath.Base(ref))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume blob: %w", err)
	}
	return data, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	path := filepath.Join(s.root, filepath.Base(ref))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete resume blob: %w", err)
	}
	return nil
}
