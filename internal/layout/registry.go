package layout

import (
	"sync"

	"regimen/domain/core"
	"regimen/domain/feed"

	"go.uber.org/zap"
)

// Registry holds the active home screen layout and swaps it atomically on
// reload. A failed reload keeps the last good layout in place, so readers
// always see a valid section order.
type Registry struct {
	mu      sync.RWMutex
	path    string
	current feed.Layout
	logger  *zap.Logger
	onSwap  []func(feed.Layout)
}

// NewRegistry creates a registry serving the built-in layout until the
// first successful reload. An empty path pins the built-in layout.
func NewRegistry(path string, logger *zap.Logger) *Registry {
	return &Registry{
		path:    path,
		current: feed.DefaultLayout(),
		logger:  logger,
	}
}

// Current returns the active layout. The sections slice and alias map are
// copied so callers can never mutate the shared state.
func (r *Registry) Current() feed.Layout {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyLayout(r.current)
}

// Hash fingerprints the active layout's section order
func (r *Registry) Hash() core.LayoutHash {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.Hash()
}

// OnSwap registers a callback invoked after every successful layout swap.
// Registration is not safe to call concurrently with Reload; wire all
// callbacks during startup.
func (r *Registry) OnSwap(fn func(feed.Layout)) {
	r.onSwap = append(r.onSwap, fn)
}

// Reload re-reads the layout file and swaps it in. On any error the
// current layout stays active and the error is returned.
func (r *Registry) Reload() error {
	if r.path == "" {
		return nil
	}

	loaded, err := LoadFile(r.path)
	if err != nil {
		r.logger.Warn("Layout reload failed, keeping current layout",
			zap.String("path", r.path),
			zap.Error(err))
		return err
	}

	r.mu.Lock()
	r.current = loaded
	r.mu.Unlock()

	r.logger.Info("Layout reloaded",
		zap.String("path", r.path),
		zap.Int("sections", len(loaded.Sections)),
		zap.String("hash", loaded.Hash().String()))

	for _, fn := range r.onSwap {
		fn(copyLayout(loaded))
	}

	return nil
}

func copyLayout(l feed.Layout) feed.Layout {
	out := feed.Layout{
		Sections: make([]feed.Section, len(l.Sections)),
		Aliases:  make(map[string]feed.Slug, len(l.Aliases)),
	}
	copy(out.Sections, l.Sections)
	for key, slug := range l.Aliases {
		out.Aliases[key] = slug
	}
	return out
}
