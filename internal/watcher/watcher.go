// Package watcher invalidates cached parse trees when their files change on
// disk.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before accumulated changes are flushed.
const DefaultDebounce = 500 * time.Millisecond

// Invalidator receives paths whose cached state is now stale.
type Invalidator interface {
	Invalidate(path string)
}

// Watcher monitors directories recursively and reports changed source files
// to an Invalidator after a debounce period.
type Watcher struct {
	fs         *fsnotify.Watcher
	log        *slog.Logger
	invalidate Invalidator
	extensions map[string]bool
	debounce   time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	cancel   context.CancelFunc
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a watcher over dirs for files with the given extensions
// (".go", ".py"). Changes are reported to inv.
func New(dirs []string, extensions []string, inv Invalidator, log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	extMap := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extMap[ext] = true
	}

	w := &Watcher{
		fs:         fsw,
		log:        log,
		invalidate: inv,
		extensions: extMap,
		debounce:   DefaultDebounce,
		pending:    make(map[string]struct{}),
		done:       make(chan struct{}),
	}
	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Start launches the event loop. It returns immediately.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	go w.loop(ctx)
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.done
		} else {
			close(w.done)
		}
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	flush := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// New directories join the watch set so nested changes are
			// still seen.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.log.Warn("watch new directory", "dir", event.Name, "error", err)
					}
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = struct{}{}
			w.resetTimerLocked(flush)
			w.mu.Unlock()

		case <-flush:
			w.flushPending()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) flushPending() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	for _, p := range paths {
		w.invalidate.Invalidate(p)
	}
	if len(paths) > 0 {
		w.log.Debug("invalidated cached trees", "files", len(paths))
	}
}

// resetTimerLocked restarts the debounce timer. Caller holds w.mu.
func (w *Watcher) resetTimerLocked(flush chan struct{}) {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case flush <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	return w.extensions[filepath.Ext(event.Name)]
}

func (w *Watcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			w.log.Warn("watcher skipping path", "path", path, "error", err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			w.log.Warn("watch directory", "dir", path, "error", err)
		}
		return nil
	})
}
