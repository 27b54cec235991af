package layout

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the registry when the layout file changes on disk. It
// watches the parent directory rather than the file itself, since editors
// and config pushes typically replace the file by rename.
type Watcher struct {
	mu       sync.Mutex
	registry *Registry
	watcher  *fsnotify.Watcher
	path     string
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for the registry's layout file
func NewWatcher(registry *Registry, path string, logger *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		registry: registry,
		watcher:  fsWatcher,
		path:     filepath.Clean(path),
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs in a goroutine
// until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.logger.Info("Watching layout file", zap.String("path", w.path))
	go w.run(ctx)

	return nil
}

// Stop stops the watcher and waits for the loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("Failed to close layout watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// Editors fire several events per save; coalesce them and reload once
	// the burst settles.
	var pending bool
	debounce := time.NewTicker(200 * time.Millisecond)
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Layout watcher error", zap.Error(err))

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			// Reload already logs both outcomes and keeps the last good
			// layout on failure.
			_ = w.registry.Reload()
		}
	}
}
