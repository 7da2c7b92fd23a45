package kv

import (
	"context"
	"errors"
	"fmt"
)

// Setting is one typed preference stored under a fixed key. Reads of a key
// that was never written return the fallback.
type Setting[T any] struct {
	store    KV
	key      string
	fallback T
}

// NewSetting binds a preference to key in store.
func NewSetting[T any](store KV, key string, fallback T) *Setting[T] {
	return &Setting[T]{store: store, key: key, fallback: fallback}
}

// Key returns the storage key.
func (s *Setting[T]) Key() string { return s.key }

// Get returns the stored value or the fallback when none is stored.
func (s *Setting[T]) Get(ctx context.Context) (T, error) {
	var v T
	err := s.store.Get(ctx, s.key, &v)
	switch {
	case errors.Is(err, ErrNotFound):
		return s.fallback, nil
	case err != nil:
		return s.fallback, fmt.Errorf("read %s: %w", s.key, err)
	}
	return v, nil
}

// Set stores v.
func (s *Setting[T]) Set(ctx context.Context, v T) error {
	if err := s.store.Set(ctx, s.key, v); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Reset removes the stored value so Get returns the fallback again.
func (s *Setting[T]) Reset(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}

// Stored reports whether a value has been written.
func (s *Setting[T]) Stored(ctx context.Context) (bool, error) {
	return s.store.Has(ctx, s.key)
}
