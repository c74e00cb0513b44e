// Package kv provides the durable key-value adapter that entity stores
// persist through. Values are opaque JSON documents.
package kv

import "context"

// Store is the persistence contract shared by all backends. Get reports
// whether the key existed; a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
