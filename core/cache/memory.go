package cache

import (
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Memory is the in-process cache tier: a mutex-guarded key→entry map with
// per-entry expiry. Expired entries are evicted lazily on read. There is no
// capacity bound; the map lives for the session only.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

// Get returns the value for key. An absent or expired key is a miss;
// an expired entry is removed on the way out.
func (c *Memory) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(NowFunc()) {
		c.mu.Lock()
		// re-check under the write lock; a writer may have refreshed it
		if e, ok = c.entries[key]; ok && e.expired(NowFunc()) {
			delete(c.entries, key)
			ok = false
		}
		c.mu.Unlock()
		if !ok {
			return nil, false
		}
	}
	return e.data, true
}

// Set stores value under key for ttl, overwriting any existing entry.
func (c *Memory) Set(key string, data []byte, ttl time.Duration) {
	c.SetUntil(key, data, NowFunc().Add(ttl))
}

// SetUntil stores value under key with an absolute expiry. Used when
// re-warming from the durable tier, which persists the original expiry.
func (c *Memory) SetUntil(key string, data []byte, expiresAt time.Time) {
	c.mu.Lock()
	c.entries[key] = entry{data: data, expiresAt: expiresAt}
	c.mu.Unlock()
}

func (c *Memory) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Memory) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
