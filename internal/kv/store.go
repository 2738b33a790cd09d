// Package kv holds the key-value stores the ledgers persist into. Values are
// opaque JSON documents; callers own their encoding.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

type Entry struct {
	Key   string
	Value []byte
}

// UpdateFunc receives the current value (nil when absent) and returns the
// value to store. Returning ErrSkip leaves the key untouched.
type UpdateFunc func(current []byte) ([]byte, error)

// ErrSkip aborts an Update without writing and without failing it.
var ErrSkip = errors.New("kv: skip update")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetNX writes value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	// ScanPrefix returns every entry whose key starts with prefix, ordered by key.
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
	// Update performs an atomic read-modify-write of a single key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
