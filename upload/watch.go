package upload

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must go without writes before it is read.
const settleDelay = 250 * time.Millisecond

// Watcher imports images that appear in a directory.
type Watcher struct {
	dir      string
	importer *Importer
	settle   time.Duration

	pending map[string]time.Time // path -> last event
	seen    map[string]bool
}

// NewWatcher creates a watcher for dir feeding importer.
func NewWatcher(dir string, importer *Importer) *Watcher {
	return &Watcher{
		dir:      dir,
		importer: importer,
		settle:   settleDelay,
		pending:  make(map[string]time.Time),
		seen:     make(map[string]bool),
	}
}

// Run watches until ctx is done. Each file is imported at most once, after
// it has stopped changing.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating photo watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	slog.Info("watching for photos", "dir", w.dir)

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.touch(filepath.Clean(event.Name), time.Now())
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("photo watcher error", "error", err)
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) touch(path string, at time.Time) {
	if w.seen[path] {
		return
	}
	w.pending[path] = at
}

// flush imports pending files that have settled by now.
func (w *Watcher) flush(now time.Time) {
	for path, last := range w.pending {
		if now.Sub(last) < w.settle {
			continue
		}
		delete(w.pending, path)
		w.seen[path] = true
		if _, err := w.importer.ImportNow(path); err != nil {
			slog.Warn("photo import failed", "path", path, "error", err)
		}
	}
}
