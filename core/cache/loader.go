package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// FetchFunc produces the value for a key from the origin (the remote portal).
type FetchFunc func(ctx context.Context) (interface{}, error)

// Loader is the read-through orchestrator shared by every data-loading
// feature: check memory, then the durable store, then fetch and populate both
// tiers. Durable-tier failures are logged and swallowed; a miss there is a
// normal state (first run, cleared storage).
type Loader struct {
	mem     *Memory
	store   core.KVStore
	offline *core.OfflineDetector
	logger  core.Logger
}

func NewLoader(mem *Memory, store core.KVStore, offline *core.OfflineDetector, logger core.Logger) *Loader {
	return &Loader{
		mem:     mem,
		store:   store,
		offline: offline,
		logger:  logger,
	}
}

// Get loads the value for key into dest.
//
// On a both-tier miss while offline it returns ErrNoCachedData without
// touching the network. A failed fetch leaves both tiers unmodified. A fetch
// that completes after ctx is done still returns its value but populates
// neither tier, so navigation away from a page cannot warm the cache with a
// result nobody consumed.
func (l *Loader) Get(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetch FetchFunc) error {
	if data, ok := l.mem.Get(key); ok {
		return unmarshal(data, dest, key)
	}

	if data, ok := l.storeGet(ctx, key); ok {
		return unmarshal(data, dest, key)
	}

	if l.offline != nil && l.offline.Offline() {
		return ErrNoCachedData
	}

	val, err := fetch(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "encoding %q for cache", key)
	}

	if ctx.Err() == nil {
		expiresAt := NowFunc().Add(ttl)
		l.mem.SetUntil(key, data, expiresAt)
		if l.store != nil {
			if err := l.store.Set(ctx, key, data, expiresAt); err != nil {
				l.logger.Warn("cache: persisting "+key, err)
			}
		}
	}
	return unmarshal(data, dest, key)
}

// storeGet reads the durable tier, honoring the persisted expiry: a stale
// record is deleted and treated as a miss. A fresh record re-warms the memory
// tier with its remaining lifetime, not a new TTL.
func (l *Loader) storeGet(ctx context.Context, key string) ([]byte, bool) {
	if l.store == nil {
		return nil, false
	}
	data, expiresAt, ok, err := l.store.Get(ctx, key)
	if err != nil {
		l.logger.Warn("cache: reading "+key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if !NowFunc().Before(expiresAt) {
		if err := l.store.Delete(ctx, key); err != nil {
			l.logger.Warn("cache: evicting stale "+key, err)
		}
		return nil, false
	}
	l.mem.SetUntil(key, data, expiresAt)
	return data, true
}

// Invalidate drops key from both tiers.
func (l *Loader) Invalidate(ctx context.Context, key string) {
	l.mem.Delete(key)
	if l.store != nil {
		if err := l.store.Delete(ctx, key); err != nil {
			l.logger.Warn("cache: deleting "+key, err)
		}
	}
}

// Flush drops everything from both tiers.
func (l *Loader) Flush(ctx context.Context) error {
	l.mem.Flush()
	if l.store != nil {
		return l.store.Flush(ctx)
	}
	return nil
}

func unmarshal(data []byte, dest interface{}, key string) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(err, "decoding cached %q", key)
	}
	return nil
}
