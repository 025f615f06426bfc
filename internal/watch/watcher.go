// Package watch reports changes to a fixed set of files.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Paths are the files to watch.
	Paths []string

	// Debounce is the quiet period after the last event before the
	// change callback runs.
	Debounce time.Duration

	Logger *slog.Logger
}

// Watcher monitors files for changes. Editors often replace files instead
// of writing them, so the parent directories are watched and events are
// filtered by name.
type Watcher struct {
	config   Config
	files    map[string]bool
	fs       *fsnotify.Watcher
	logger   *slog.Logger
	mu       sync.Mutex
	onChange func(paths []string)
}

// New creates a watcher for the configured files.
func New(config Config) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = DefaultDebounce
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		config: config,
		files:  make(map[string]bool),
		fs:     fsw,
		logger: logger,
	}

	dirs := make(map[string]bool)
	for _, p := range config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
		logger.Debug("watching", "dir", dir)
	}
	return w, nil
}

// OnChange sets the callback for file changes. It receives the changed
// files in sorted order.
func (w *Watcher) OnChange(fn func(paths []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		pending = make(map[string]bool)
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			pending[name] = true
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				timer.Reset(w.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)
			w.logger.Info("files changed", "count", len(changed))

			w.mu.Lock()
			callback := w.onChange
			w.mu.Unlock()
			if callback != nil {
				callback(changed)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
