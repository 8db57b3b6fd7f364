package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/treescope/internal/loader"
)

// Test Plan for the parse cache:
// - KeyFor covers path, size, mtime and content hash
// - Hit returns the identical tree
// - A content change under the same path is a miss, not a stale hit
// - Invalidate drops entries by path
// - A tree handed out by Get stays usable after invalidation until every
//   holder has closed it
// - Close shuts the cache down

func loadFixture(t *testing.T, dir, name, content string) *loader.SourceUnit {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	src, err := loader.New(nil).Load(path)
	require.NoError(t, err)
	return src
}

func parseUnit(t *testing.T, src *loader.SourceUnit) *Tree {
	t.Helper()
	tree, err := New().Parse(context.Background(), pythonPlugin(t), src)
	require.NoError(t, err)
	return tree
}

func TestKeyFor_FullTuple(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := loadFixture(t, dir, "a.py", "x = 1\n")

	key := KeyFor(src)
	assert.True(t, filepath.IsAbs(key.Path))
	assert.Equal(t, src.Size, key.Size)
	assert.Equal(t, src.ModTime.UnixNano(), key.ModTime)
	assert.NotZero(t, key.Hash)

	// Same content, same key.
	assert.Equal(t, key, KeyFor(src))
}

func TestCache_HitAndStaleMiss(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(10)
	require.NoError(t, err)
	defer cache.Close()

	dir := t.TempDir()
	src := loadFixture(t, dir, "a.py", "x = 1\n")
	tree := parseUnit(t, src)

	key := KeyFor(src)
	cache.Put(key, tree)

	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Same(t, tree, got)
	assert.Equal(t, 1, cache.Len())

	// Rewrite the file: same path, different content hash.
	changed := loadFixture(t, dir, "a.py", "x = 2  # changed\n")
	_, ok = cache.Get(KeyFor(changed))
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(10)
	require.NoError(t, err)
	defer cache.Close()

	dir := t.TempDir()
	src := loadFixture(t, dir, "b.py", "y = 1\n")
	cache.Put(KeyFor(src), parseUnit(t, src))

	cache.Invalidate(src.Path)
	_, ok := cache.Get(KeyFor(src))
	assert.False(t, ok)
}

func TestCache_InvalidateKeepsHandedOutTreesUsable(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(10)
	require.NoError(t, err)
	defer cache.Close()

	dir := t.TempDir()
	src := loadFixture(t, dir, "c.py", "def c():\n    pass\n")
	tree := parseUnit(t, src)

	key := KeyFor(src)
	cache.Put(key, tree)

	got, ok := cache.Get(key)
	require.True(t, ok)

	cache.Invalidate(src.Path)
	// The deletion listener runs asynchronously; give it time to fire
	// before touching the tree again.
	time.Sleep(100 * time.Millisecond)

	root := got.Root()
	require.NotNil(t, root)
	assert.Equal(t, "module", root.Kind())

	got.Close()  // reference taken by Get
	tree.Close() // reference from Parse
	assert.Nil(t, tree.Root())
}

func TestCache_DefaultCapacity(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(0)
	require.NoError(t, err)
	defer cache.Close()
	assert.Equal(t, 0, cache.Len())
}
