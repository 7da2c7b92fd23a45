// Package kv defines the persistent key-value contract used for reader
// preferences.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by Get when the key has never been set.
var ErrNotFound = errors.New("setting not found")

// KV is a persistent key-value store. Values are JSON-serializable.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
