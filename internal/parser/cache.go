package parser

import (
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/maypok86/otter"

	"github.com/mvp-joe/treescope/internal/loader"
)

// DefaultCacheCapacity bounds the number of cached parse trees.
const DefaultCacheCapacity = 100

// CacheKey identifies one file state. A cache hit must match the whole
// tuple, so a file mutated between identity checks never serves a stale
// tree.
type CacheKey struct {
	Path    string
	Size    int64
	ModTime int64
	Hash    uint64
}

// KeyFor derives the cache key for a loaded source unit.
func KeyFor(src *loader.SourceUnit) CacheKey {
	path := src.Path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return CacheKey{
		Path:    path,
		Size:    src.Size,
		ModTime: src.ModTime.UnixNano(),
		Hash:    xxhash.Sum64(src.Raw),
	}
}

type cacheEntry struct {
	key  CacheKey
	tree *Tree
}

// Cache is the capacity-bounded parse-tree cache. It is the only mutable
// state shared across requests; otter serializes access internally. The
// cache holds one reference per stored tree and the eviction listener
// releases it, so a tree an in-flight request obtained from Get stays
// usable after eviction until that request closes it too.
type Cache struct {
	entries otter.Cache[string, *cacheEntry]
}

// NewCache builds a cache with the given capacity (DefaultCacheCapacity
// when zero or negative).
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	entries, err := otter.MustBuilder[string, *cacheEntry](capacity).
		DeletionListener(func(_ string, e *cacheEntry, _ otter.DeletionCause) {
			e.tree.Close()
		}).
		Build()
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached tree for key if the full tuple still matches. A
// path hit with a stale size, mtime or content hash is dropped and reported
// as a miss. A hit hands the caller a reference it must Close when done.
func (c *Cache) Get(key CacheKey) (*Tree, bool) {
	e, ok := c.entries.Get(key.Path)
	if !ok {
		return nil, false
	}
	if e.key != key {
		c.entries.Delete(key.Path)
		return nil, false
	}
	if !e.tree.retain() {
		return nil, false
	}
	return e.tree, true
}

// Put stores a tree under its key. The cache takes its own reference; the
// caller keeps the one it already holds.
func (c *Cache) Put(key CacheKey, tree *Tree) {
	if !tree.retain() {
		return
	}
	if !c.entries.Set(key.Path, &cacheEntry{key: key, tree: tree}) {
		tree.Close()
	}
}

// Invalidate drops the entry for a path, if present.
func (c *Cache) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	c.entries.Delete(path)
}

// Len returns the number of cached trees.
func (c *Cache) Len() int { return c.entries.Size() }

// Close evicts everything and releases the cache.
func (c *Cache) Close() {
	c.entries.Close()
}
