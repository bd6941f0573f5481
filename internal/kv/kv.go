// Package kv is the persistence adapter for session state. The storefront
// serializes cart, customer and order history as JSON blobs under three
// distinct keys per session; backends only need get/set/delete semantics.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned for keys that were never written. Callers treat a
// missing key as an empty/absent value.
var ErrNotFound = errors.New("key not found")

// Store is the key-value interface all backends implement. Writes are
// last-write-wins; a Set must be durable (for the backend's definition of
// durable) before it returns.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
