package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the watcher:
// - A write to a matching file reaches the invalidator after the debounce
// - Non-matching extensions are ignored
// - Files in directories created after Start are still seen
// - Stop is idempotent

type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingInvalidator) Invalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingInvalidator) seen(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.paths {
		if p == path {
			return true
		}
	}
	return false
}

func (r *recordingInvalidator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func startWatcher(t *testing.T, dir string, exts []string) (*Watcher, *recordingInvalidator) {
	t.Helper()
	inv := &recordingInvalidator{}
	w, err := New([]string{dir}, exts, inv, nil)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond
	w.Start(context.Background())
	t.Cleanup(func() { w.Stop() })
	return w, inv
}

func TestWatcher_InvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	_, inv := startWatcher(t, dir, []string{".py"})

	path := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	require.Eventually(t, func() bool {
		return inv.seen(path)
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	_, inv := startWatcher(t, dir, []string{".py"})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, inv.count())
}

func TestWatcher_SeesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	_, inv := startWatcher(t, dir, []string{".go"})

	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watcher a moment to pick up the new directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "b.go")
	require.NoError(t, os.WriteFile(path, []byte("package pkg\n"), 0o644))

	require.Eventually(t, func() bool {
		return inv.seen(path)
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, _ := startWatcher(t, dir, nil)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
