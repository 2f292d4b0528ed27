package suggestions

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates the dataset cache when the dataset file changes on
// disk, complementing the mtime check with immediate invalidation. The
// parent directory is watched rather than the file itself so atomic
// rename-into-place rewrites are caught.
type Watcher struct {
	cache   *DatasetCache
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewWatcher creates a watcher for the cache's dataset file.
func NewWatcher(cache *DatasetCache, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(cache.path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch dataset directory: %w", err)
	}
	return &Watcher{
		cache:   cache,
		path:    filepath.Clean(cache.path),
		watcher: fsw,
		logger:  logger,
	}, nil
}

// Start runs the event loop until the context is cancelled or the watcher is
// closed.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				w.logger.Debug("partner dataset changed on disk", "op", event.Op.String())
				w.cache.Invalidate()
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("dataset watcher error", "error", err)
			}
		}
	}()
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
