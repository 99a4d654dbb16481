package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// WatcherState exposes internal state for observability.
type WatcherState struct {
	Path       string     `json:"path"`
	Active     bool       `json:"active"`
	Reloads    int        `json:"reloads"`
	LastReload *time.Time `json:"last_reload,omitempty"`
	LastError  string     `json:"last_error,omitempty"`
	Debounce   string     `json:"debounce"`
}

// State implements introspection.Introspectable.
func (w *Watcher) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	state := WatcherState{
		Path:       w.path,
		Active:     w.active,
		Reloads:    w.reloads,
		LastReload: w.lastReload,
		Debounce:   w.reader.config.Debounce.String(),
	}
	if w.lastErr != nil {
		state.LastError = w.lastErr.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "watcher"
}

var _ introspection.Introspectable = (*Watcher)(nil)
var _ introspection.Component = (*Watcher)(nil)
