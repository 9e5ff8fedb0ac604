package catalog

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered or fetched assets so repeated page renders are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// AssetCache is an in-memory TTL cache for logos and chart markup.
type AssetCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedAsset
}

type cachedAsset struct {
	value   string
	expires time.Time
}

// NewAssetCache builds a cache with the provided TTL. A zero TTL disables caching.
func NewAssetCache(ttl time.Duration) *AssetCache {
	return &AssetCache{
		ttl:     ttl,
		entries: make(map[string]cachedAsset),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one. Errors are never cached.
func (c *AssetCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if value, ok := c.get(key); ok {
		return value, nil
	}
	value, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, value)
	return value, nil
}

// Invalidate drops a single entry.
func (c *AssetCache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *AssetCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.Invalidate(key)
		}
		return "", false
	}
	return entry.value, true
}

func (c *AssetCache) set(key, value string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedAsset{
		value:   value,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// contentHash returns a deterministic hash for any JSON-encodable value.
func contentHash(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
