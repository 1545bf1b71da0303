// Package watch re-runs table resolution when description files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dbsmedya/topictables/internal/description"
	"github.com/dbsmedya/topictables/internal/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before resolving again.
const DefaultDebounce = 500 * time.Millisecond

// ResolveFunc performs one full resolution.
type ResolveFunc func() error

// Watcher calls a ResolveFunc once at start and again after every change to
// a description file in a directory.
type Watcher struct {
	dir      string
	resolve  ResolveFunc
	debounce time.Duration
	logger   *logger.Logger
}

// New creates a watcher for dir.
func New(dir string, resolve ResolveFunc, log *logger.Logger) *Watcher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Watcher{
		dir:      dir,
		resolve:  resolve,
		debounce: DefaultDebounce,
		logger:   log,
	}
}

// WithDebounce sets the debounce interval.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run blocks until ctx is cancelled. Resolution errors are logged and do not
// stop the loop; failing to watch the directory does.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.dir, err)
	}

	w.logger.Infof("Watching %s for table description changes", w.dir)
	w.runOnce()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debugf("Description file event: %s", event)
			timer.Reset(w.debounce)
		case <-timer.C:
			w.runOnce()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) runOnce() {
	if err := w.resolve(); err != nil {
		w.logger.Errorf("Table resolution failed: %v", err)
	}
}

// relevant reports whether event can change the resolved tables.
func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(event.Name), description.FileSuffix) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
