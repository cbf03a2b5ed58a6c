package assets

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher rebuilds the cache when files under the static root change.
//
// Rebuilds are debounced and always produce a fresh Cache that is swapped
// into the Holder; the previous snapshot is left untouched for readers
// still using it.
type Watcher struct {
	root     string
	holder   *Holder
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	onReload func(*Cache)
	done     chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher and for rebuilds.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce sets how long the tree must be quiet before a rebuild.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// OnReload registers a callback invoked with every newly published cache.
func OnReload(fn func(*Cache)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher creates a watcher for root that publishes into holder.
func NewWatcher(root string, holder *Holder, opts ...WatcherOption) (*Watcher, error) {
	base, err := canonicalize(root)
	if err != nil {
		return nil, fmt.Errorf("assets: watch %s: %w", root, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("assets: create watcher: %w", err)
	}

	w := &Watcher{
		root:     base,
		holder:   holder,
		watcher:  fw,
		logger:   slog.Default(),
		debounce: 500 * time.Millisecond,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(base); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return w, nil
}

// Start watches for changes until Stop is called.
func (w *Watcher) Start() error {
	w.logger.Info("static root watcher started", "root", w.root)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			// fsnotify is not recursive; pick up new subdirectories.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			w.logger.Debug("static file changed", "file", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.Reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("static root watcher error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return w.watcher.Close()
		}
	}
}

// StartAsync starts watching in a goroutine.
func (w *Watcher) StartAsync() {
	go func() {
		if err := w.Start(); err != nil {
			w.logger.Error("static root watcher stopped with error", "error", err)
		}
	}()
}

// Stop stops watching.
func (w *Watcher) Stop() {
	close(w.done)
}

// Reload rebuilds the cache from disk and publishes it.
func (w *Watcher) Reload() *Cache {
	next := Load(w.root, WithLogger(w.logger))
	prev := w.holder.Swap(next)

	added, removed, changed := Diff(prev, next)
	w.logger.Info("asset cache reloaded",
		"routes", next.Len(),
		"added", added,
		"removed", removed,
		"changed", changed,
	)

	if w.onReload != nil {
		w.onReload(next)
	}
	return next
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("assets: watch %s: %w", p, err)
		}
		return nil
	})
}
