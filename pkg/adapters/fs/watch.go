package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/nbkit/pkg/core"
)

// ChangeFunc receives the freshly loaded notebook, or the load error, after
// the watched file settles.
type ChangeFunc func(nb *core.Notebook, err error)

// Watcher reloads a notebook file whenever it changes on disk.
type Watcher struct {
	reader   *Reader
	path     string
	onChange ChangeFunc
	opts     []core.ConstructOption

	mu         sync.RWMutex
	active     bool
	reloads    int
	lastReload *time.Time
	lastErr    error
	timer      *time.Timer
	fire       chan struct{}
	done       chan struct{}
}

// NewWatcher creates a watcher for path. Construct options apply to every reload.
func NewWatcher(reader *Reader, path string, onChange ChangeFunc, opts ...core.ConstructOption) *Watcher {
	return &Watcher{
		reader:   reader,
		path:     path,
		onChange: onChange,
		opts:     opts,
		fire:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start begins watching. It returns once the watch is registered; the event
// loop runs until ctx is cancelled, after which Done is closed.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		return errors.New("watcher already started")
	}
	w.active = true
	w.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.setActive(false)
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors often replace files by rename, which drops a watch on the file
	// itself, so the parent directory is watched and events are filtered by name.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		w.setActive(false)
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	logger := w.reader.config.Logger
	lifecycle.Go(ctx, func(ctx context.Context) error {
		return w.run(ctx, watcher)
	}, lifecycle.WithErrorHandler(func(err error) {
		logger.Error("watcher stopped", "path", w.path, "error", err)
	}))
	return nil
}

// Done is closed when the event loop exits.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher) (err error) {
	logger := w.reader.config.Logger
	defer close(w.done)
	defer w.setActive(false)
	defer watcher.Close()
	defer w.stopTimer()
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			w.schedule()

		case <-w.fire:
			if ctx.Err() != nil {
				return nil
			}
			w.reload(ctx)

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// schedule debounces bursts of events (truncate + write) into a single reload.
// The timer only signals the event loop; reloads run on the loop itself, one
// at a time, and never after Done is closed.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Reset(w.reader.config.Debounce)
		return
	}
	w.timer = time.AfterFunc(w.reader.config.Debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) reload(ctx context.Context) {
	nb, err := w.reader.Load(ctx, w.path, w.opts...)

	w.mu.Lock()
	now := time.Now()
	w.reloads++
	w.lastReload = &now
	w.lastErr = err
	w.mu.Unlock()

	logger := w.reader.config.Logger
	if err != nil {
		logger.Debug("reload failed", "path", w.path, "error", err)
	} else {
		logger.Debug("notebook reloaded", "path", w.path, "cells", nb.Len())
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("watcher state", "component", w.ComponentType(), "state", w.State())
	}
	if w.onChange != nil {
		w.onChange(nb, err)
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}
