package kv

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// Token identifies the stored version of a document. The empty token means
// the key was absent when the document was loaded.
type Token string

func tokenOf(data []byte) Token {
	sum := sha256.Sum256(data)
	return Token(hex.EncodeToString(sum[:]))
}

// Document is a typed JSON value stored under one key and updated with a
// load / modify / save cycle.
type Document[T any] struct {
	store    Store
	key      string
	fallback func() T
}

// NewDocument binds a key to a value type. fallback supplies the value
// returned when the key is absent; nil means the zero value.
func NewDocument[T any](store Store, key string, fallback func() T) *Document[T] {
	return &Document[T]{store: store, key: key, fallback: fallback}
}

// Key returns the document's storage key.
func (d *Document[T]) Key() string {
	return d.key
}

func (d *Document[T]) empty() T {
	if d.fallback != nil {
		return d.fallback()
	}
	var zero T
	return zero
}

// Load returns the stored value and its version token. An absent key yields
// the fallback value and an empty token with no error.
func (d *Document[T]) Load(ctx context.Context) (T, Token, error) {
	data, err := d.store.Get(ctx, d.key)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return d.empty(), "", nil
		}
		var zero T
		return zero, "", err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, "", fmt.Errorf("failed to parse %s: %w", d.key, err)
	}
	return v, tokenOf(data), nil
}

// Exists reports whether a value is stored under the key.
func (d *Document[T]) Exists(ctx context.Context) (bool, error) {
	_, err := d.store.Get(ctx, d.key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Save writes v if the stored version still matches tok, and returns the new
// token. It returns ErrConflict when another write happened in between.
func (d *Document[T]) Save(ctx context.Context, v T, tok Token) (Token, error) {
	current, err := d.currentToken(ctx)
	if err != nil {
		return "", err
	}
	if current != tok {
		return "", fmt.Errorf("%s: %w", d.key, ErrConflict)
	}
	return d.Put(ctx, v)
}

// Put writes v unconditionally and returns the new token.
func (d *Document[T]) Put(ctx context.Context, v T) (Token, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", d.key, err)
	}
	if err := d.store.Set(ctx, d.key, data); err != nil {
		return "", err
	}
	return tokenOf(data), nil
}

// Remove deletes the stored value.
func (d *Document[T]) Remove(ctx context.Context) error {
	return d.store.RemoveAll(ctx, d.key)
}

func (d *Document[T]) currentToken(ctx context.Context) (Token, error) {
	data, err := d.store.Get(ctx, d.key)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return tokenOf(data), nil
}
