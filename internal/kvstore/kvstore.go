// Package kvstore provides the key-value storage abstraction backing the
// booking gateway. Values are opaque byte slices; callers own serialization.
package kvstore

import "context"

// Store exposes get/set/remove over opaque string keys. The second return
// value of Get distinguishes an absent key from an empty value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
