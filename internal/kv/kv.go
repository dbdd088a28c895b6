// Package kv is the key-value persistence gateway. Values are opaque JSON
// documents stored under a small fixed set of string keys.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrNotExist is returned by Get when nothing is stored under the key.
	ErrNotExist = errors.New("key does not exist")

	// ErrConflict is returned by Document.Save when the stored value changed
	// since it was loaded.
	ErrConflict = errors.New("document changed since it was loaded")
)

// Store reads and writes whole documents by key. Set replaces the value
// atomically: after a failed Set the previous value is still stored.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	RemoveAll(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open opens the named backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		s, err := NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := NewSQLiteStore(filepath.Join(dir, "kts.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %s or %s)", backend, BackendFile, BackendSQLite)
	}
}

// Keys carry a leading @. The file backend drops it from the file name, so
// the prefix is required to keep that mapping one-to-one.
var keyPattern = regexp.MustCompile(`^@[a-z0-9_\-]+$`)

// validateKey rejects keys without the @ prefix or that cannot be mapped to
// a file name.
func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

// baseName strips the leading @ used by the original key names.
func baseName(key string) string {
	return strings.TrimPrefix(key, "@")
}
