package style

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to stylesheets next to the user stylesheet. Any
// .css file in that directory counts, since the sheet may import partials.
type Watcher struct {
	mu       sync.Mutex
	dir      string
	logger   *slog.Logger
	debounce time.Duration
	onChange func()

	watcher *fsnotify.Watcher
	timer   *time.Timer
	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher for the stylesheet at path, or UserPath
// when empty.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = UserPath()
	}
	return &Watcher{
		dir:      filepath.Dir(path),
		logger:   logger,
		debounce: 250 * time.Millisecond,
	}
}

// SetChangeCallback sets the function called after stylesheets change.
// It runs on a timer goroutine.
func (w *Watcher) SetChangeCallback(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins watching. A missing directory is not an error; there is
// simply nothing to watch until the daemon restarts.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		w.logger.Debug("style directory not watched", "dir", w.dir, "error", err)
		return nil
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	w.running = true
	go w.watch(ctx, watcher, w.done)
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.done)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	_ = w.watcher.Close()
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watch(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".css" {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				w.schedule()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("style watcher error", "error", err)

		case <-ctx.Done():
			w.Stop()
			return

		case <-done:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	running, fn := w.running, w.onChange
	w.mu.Unlock()

	if running && fn != nil {
		w.logger.Debug("stylesheets changed", "dir", w.dir)
		fn()
	}
}
