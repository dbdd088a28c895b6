package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one <key>.json file per key in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted
// there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, baseName(key)+".json")
}

// Get reads the document stored under key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set atomically replaces the document stored under key.
// Uses a temp file + rename so a failed write leaves the old file intact.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	target := s.path(key)
	tmpPath := fmt.Sprintf("%s.tmp.%d", target, os.Getpid())

	if err := os.WriteFile(tmpPath, value, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// RemoveAll deletes the given keys. Missing keys are not an error.
func (s *FileStore) RemoveAll(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range keys {
		if err := validateKey(key); err != nil {
			return err
		}
	}
	for _, key := range keys {
		if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
