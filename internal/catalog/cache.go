package catalog

import "sync"

// Cache hands out loaded catalogs keyed by source path. Each path is parsed
// at most once; later lookups return the same *Catalog, which is safe to
// share because catalogs are immutable after load.
type Cache struct {
	mu       sync.RWMutex
	catalogs map[string]*Catalog
}

func NewCache() *Cache {
	return &Cache{
		catalogs: make(map[string]*Catalog),
	}
}

// Load returns the cached catalog for path, parsing the file on first use.
// The delimiter only matters for that first parse.
func (c *Cache) Load(path string, delimiter rune) (*Catalog, error) {
	c.mu.RLock()
	cat, ok := c.catalogs[path]
	c.mu.RUnlock()
	if ok {
		return cat, nil
	}

	loaded, err := Load(path, delimiter)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have raced the parse; keep the first.
	if existing, ok := c.catalogs[path]; ok {
		return existing, nil
	}
	c.catalogs[path] = loaded
	return loaded, nil
}

// Invalidate forgets the catalog for path so the next Load re-parses it.
// Used when the caller knows the source identity changed underneath.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.catalogs, path)
}
