package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/docnav/internal/event"
	"github.com/dshills/docnav/internal/event/events"
)

// Watcher errors.
var (
	// ErrWatcherClosed is returned when using a closed watcher.
	ErrWatcherClosed = errors.New("watch: watcher is closed")
)

// source identifies the watcher in published envelope metadata.
const source = "watch"

// Option configures a Watcher.
type Option func(*Watcher)

// WithErrorHandler sets the callback invoked for watch errors. The
// default discards them; file watching is advisory and must never
// interrupt editing.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher publishes file.removed events when watched files are deleted
// or renamed away, so the tracker can prune stale history entries.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	bus     *event.Bus
	onError func(error)
	closed  bool
	done    chan struct{}
}

// New creates a watcher publishing onto bus and starts its event loop.
func New(bus *event.Bus, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:  fsw,
		bus:  bus,
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.run()
	return w, nil
}

// Watch starts watching a file or directory path.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.fsw.Add(abs)
}

// Unwatch stops watching a path.
func (w *Watcher) Unwatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.fsw.Remove(abs)
}

// Close stops the watcher and waits for its loop to drain. Safe to call
// more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	err := w.fsw.Close()
	w.mu.Unlock()

	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			env := event.NewEnvelope(events.TopicFileRemoved, events.FileRemoved{Path: ev.Name}, source)
			if err := w.bus.Publish(context.Background(), env); err != nil && !errors.Is(err, event.ErrBusClosed) {
				w.reportError(err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reportError(err error) {
	w.mu.Lock()
	fn := w.onError
	w.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}
