package repositories

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a KeyValueStore when nothing is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the persistence capability every collection is built on:
// opaque values addressed by string keys, always written whole.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
