package core

import (
	"context"
	"time"
)

// KVStore is a durable key-value store used as the fallback cache tier.
// It survives app restarts. Records carry the expiry computed at write time;
// readers are expected to honor it.
type KVStore interface {
	// Get returns the stored value and its expiry. ok is false when the key
	// is absent; absence is not an error.
	Get(ctx context.Context, key string) (value []byte, expiresAt time.Time, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error
	Delete(ctx context.Context, key string) error
	// Flush removes all records.
	Flush(ctx context.Context) error
	Close() error
}
