package catalog

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

type cacheKey struct {
	modTime time.Time
	size    int64
}

func (k cacheKey) same(other cacheKey) bool {
	return k.size == other.size && k.modTime.Equal(other.modTime)
}

// Cache holds the last catalog loaded from a single path and reloads it when
// the file's modification time or size changes. Cached catalogs are shared
// between callers and must be treated as read-only.
type Cache struct {
	path string

	mu      sync.RWMutex
	key     cacheKey
	catalog *Catalog
}

func NewCache(path string) *Cache {
	return &Cache{path: path}
}

func (c *Cache) Path() string {
	return c.path
}

// Catalog returns the cached catalog, reloading it if the file changed.
func (c *Cache) Catalog(_ context.Context) (*Catalog, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil, sourceError(c.path, err)
	}
	key := cacheKey{modTime: info.ModTime(), size: info.Size()}

	c.mu.RLock()
	if c.catalog != nil && c.key.same(key) {
		cached := c.catalog
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog != nil && c.key.same(key) {
		return c.catalog, nil
	}

	loaded, err := Load(c.path)
	if err != nil {
		return nil, err
	}

	slog.Info("catalog reloaded", "path", c.path, "count", loaded.Len())

	c.key = key
	c.catalog = loaded

	return loaded, nil
}

// Source loads the catalog from disk on every call.
type Source struct {
	Path string
}

func (s Source) Catalog(_ context.Context) (*Catalog, error) {
	return Load(s.Path)
}
