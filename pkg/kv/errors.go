package kv

import "errors"

// Sentinel errors for store operations.
var (
	// ErrReadOnly is returned by writes to a [Layered] store without a local store.
	ErrReadOnly = errors.New("kv: store is read-only")

	// ErrClosed is returned by operations on a closed [MemoryStore].
	ErrClosed = errors.New("kv: store is closed")
)
