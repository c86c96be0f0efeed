package kv

import (
	"context"
	"time"
)

// Store is a key-value store with optional per-entry expiry.
type Store interface {
	// Get returns the value for key. A missing or expired key is reported as
	// ok == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Remote is a read-only store consulted by [Layered].
type Remote interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
}

// Default TTLs for stored entries.
const (
	// TTLShare is how long a shared workbench state is kept.
	TTLShare = 30 * 24 * time.Hour

	// TTLSynced is how long a value pulled from the remote is kept locally.
	TTLSynced = 24 * time.Hour
)
