// Package store defines the key-value store abstraction the refresh
// coordinator runs on. Any store exposing GET, SET-with-TTL, conditional
// SET-if-absent, atomic INCR and DEL can back the protocol; Redis is the
// primary production backend.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). The coordinator
// relies on this for the byte-exactness of cached values.
//
// Implementations MUST be safe for concurrent use. SetNX is the only
// cross-process synchronization primitive the coordinator uses; its
// created/not-created answer has to be atomic with respect to concurrent
// SetNX calls on the same key, across every process sharing the store.
package store

import (
	"context"
	"time"
)

// Store is a minimal byte store with TTLs and the two atomic primitives the
// refresh protocol needs: conditional create (SetNX) and counter increment.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value unconditionally with the given TTL.
	// ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores value with the given TTL only if the key is absent.
	// Returns created=true when this call won the write.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (created bool, err error)

	// Incr atomically increments an integer counter, creating it at 0 first
	// if absent, and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Del removes a key (best-effort; deleting an absent key is not an error).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
