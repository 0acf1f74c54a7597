// memory.go provides an in-process query cache for single-instance
// deployments. Entries hold encoded JSON so callers observe the same
// copy-on-read behavior as with Valkey.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryCache is a concurrency-safe in-memory query cache with a TTL. Its
// generation is local to the process, so it must not be shared by replicas.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	gen     int64
	entries map[string]memoryEntry
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultQueryTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Generation returns the current generation. It is always available.
func (c *MemoryCache) Generation(_ context.Context) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen, true
}

// GetJSON decodes the value cached for key under gen into dst. Expired
// entries are a miss and are removed.
func (c *MemoryCache) GetJSON(_ context.Context, gen int64, key string, dst any) bool {
	c.mu.RLock()
	e, ok := c.entries[key]
	current := c.gen
	c.mu.RUnlock()
	if !ok || gen != current {
		return false
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		if e2, ok := c.entries[key]; ok && c.now().After(e2.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return false
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		slog.Warn("memory cache decode error", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON stores v under key if gen is still the current generation, and
// sweeps expired entries.
func (c *MemoryCache) SetJSON(_ context.Context, gen int64, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("memory cache encode error", "key", key, "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		slog.Debug("memory cache skipped stale result", "key", key, "generation", gen)
		return
	}
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = memoryEntry{data: data, expires: now.Add(c.ttl)}
}

// InvalidateAll clears the entire cache and starts a new generation.
func (c *MemoryCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = make(map[string]memoryEntry)
	slog.Debug("memory cache cleared", "generation", c.gen)
}

// Len returns the number of stored entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
