package app

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/dshills/docnav/internal/config"
	"github.com/dshills/docnav/internal/editor"
	"github.com/dshills/docnav/internal/event"
	"github.com/dshills/docnav/internal/event/events"
	"github.com/dshills/docnav/internal/event/topic"
	"github.com/dshills/docnav/internal/history"
	"github.com/dshills/docnav/internal/recent"
	"github.com/dshills/docnav/internal/script"
	"github.com/dshills/docnav/internal/watch"
)

// ErrQuit signals a normal interactive session exit.
var ErrQuit = errors.New("app: quit")

// source identifies the app in published envelope metadata.
const source = "app"

// Options configures application startup.
type Options struct {
	// ConfigPath is the configuration file. Empty uses defaults.
	ConfigPath string

	// StatePath overrides the configured recently-changed-files state
	// file.
	StatePath string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogOutput receives log output. Nil writes to stderr.
	LogOutput io.Writer

	// WatchPaths are file system paths to watch for deletions. Empty
	// disables the watcher; embedded hosts report deletions themselves.
	WatchPaths []string
}

// App wires the navigation engine together: configuration, logging,
// the event bus, the in-memory editor host, the tracker, the recent
// file state, and the optional file system watcher.
type App struct {
	cfg     config.Config
	log     *Logger
	bus     *event.Bus
	host    *editor.Memory
	tracker *history.Tracker
	recent  *recent.List
	subs    *event.Subscriber
	watcher *watch.Watcher
	rule    *script.Rule
}

// New builds an application from the options.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.StatePath != "" {
		cfg.StateFile = opts.StatePath
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	a := &App{
		cfg:  cfg,
		log:  NewLogger(ParseLogLevel(cfg.Logging.Level), opts.LogOutput),
		bus:  event.NewBus(),
		host: editor.NewMemory(editor.WithMergeProximity(cfg.Merge.Proximity)),
	}

	a.recent = recent.NewList(cfg.History.RecentFilesLimit)
	if err := a.recent.Load(cfg.StateFile); err != nil {
		// Stale or unreadable state never blocks startup.
		a.log.Warnf("recent state: %v", err)
	}

	trackerOpts := []history.Option{
		history.WithBackLimit(cfg.History.BackLimit),
		history.WithChangeLimit(cfg.History.ChangeLimit),
		history.WithRecentList(a.recent),
		history.WithNavigateHook(a.onNavigated),
	}
	if cfg.Merge.Script != "" {
		rule, err := script.LoadRule(cfg.Merge.Script)
		if err != nil {
			a.bus.Close()
			return nil, err
		}
		a.rule = rule
		trackerOpts = append(trackerOpts, history.WithSamePredicate(rule.Predicate(func(err error) {
			a.log.Warnf("merge script: %v", err)
		})))
	}

	a.tracker = history.New(a.host, a.host, a.host, trackerOpts...)
	a.host.SetObserver(a)

	if err := a.subscribe(); err != nil {
		a.Shutdown()
		return nil, err
	}

	if len(opts.WatchPaths) > 0 {
		w, err := watch.New(a.bus, watch.WithErrorHandler(func(err error) {
			a.log.Warnf("watcher: %v", err)
		}))
		if err != nil {
			a.Shutdown()
			return nil, err
		}
		a.watcher = w
		for _, p := range opts.WatchPaths {
			if err := w.Watch(p); err != nil {
				a.log.Warnf("watch %s: %v", p, err)
			}
		}
	}

	a.log.Infof("docnav ready (back limit %d, change limit %d)",
		cfg.History.BackLimit, cfg.History.ChangeLimit)
	return a, nil
}

// Tracker returns the navigation tracker.
func (a *App) Tracker() *history.Tracker { return a.tracker }

// Host returns the in-memory editor host.
func (a *App) Host() *editor.Memory { return a.host }

// Bus returns the event bus.
func (a *App) Bus() *event.Bus { return a.bus }

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Log returns the application logger.
func (a *App) Log() *Logger { return a.log }

// Do runs fn as one editing command, publishing the command boundary
// events around it. Commands sharing a non-empty groupID merge into a
// single history entry.
func (a *App) Do(name, groupID string, fn func() error) error {
	id := uuid.NewString()
	a.publish(events.TopicCommandStarted, events.CommandStarted{CommandID: id, Name: name})
	err := fn()
	a.publish(events.TopicCommandFinished, events.CommandFinished{CommandID: id, Name: name, GroupID: groupID})
	return err
}

// ClearHistory resets all navigation history and announces it on the
// bus.
func (a *App) ClearHistory() {
	a.tracker.ClearHistory()
	a.publish(events.TopicHistoryCleared, events.HistoryCleared{})
}

// Shutdown persists state and releases resources. Safe to call after a
// failed startup.
func (a *App) Shutdown() error {
	var errs []error

	if a.subs != nil {
		a.subs.Close()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.rule != nil {
		a.rule.Close()
	}
	if a.recent != nil {
		if err := a.recent.Save(a.cfg.StateFile); err != nil {
			errs = append(errs, err)
		}
	}
	a.bus.Close()

	if len(errs) > 0 {
		a.log.Errorf("shutdown: %v", errors.Join(errs...))
	}
	return errors.Join(errs...)
}

// onNavigated publishes a history.navigated event after a replay.
func (a *App) onNavigated(p history.Place, direction history.Direction) {
	a.publish(events.TopicHistoryNavigated, events.HistoryNavigated{
		File:      string(p.File()),
		Direction: events.NavigationDirection(direction),
	})
}

func (a *App) publish(t topic.Topic, payload any) {
	env := event.NewEnvelope(t, payload, source)
	if err := a.bus.Publish(context.Background(), env); err != nil && !errors.Is(err, event.ErrBusClosed) {
		a.log.Warnf("publish %s: %v", t, err)
	}
}

// Observer implementation: the memory host reports its state changes
// here and they fan out onto the bus.

// FileSelected publishes an editor.selection.changed event.
func (a *App) FileSelected(file editor.FileID) {
	a.publish(events.TopicSelectionChanged, events.SelectionChanged{File: string(file)})
}

// CaretMoved publishes a caret.moved event.
func (a *App) CaretMoved(file editor.FileID, oldLine, oldColumn, newLine, newColumn int) {
	a.publish(events.TopicCaretMoved, events.CaretMoved{
		File:      string(file),
		OldLine:   oldLine,
		NewLine:   newLine,
		OldColumn: oldColumn,
		NewColumn: newColumn,
	})
}

// DocumentEdited publishes a document.changed event.
func (a *App) DocumentEdited(file editor.FileID) {
	a.publish(events.TopicDocumentChanged, events.DocumentChanged{File: string(file)})
}

// FileRemoved publishes a file.removed event.
func (a *App) FileRemoved(file editor.FileID) {
	a.publish(events.TopicFileRemoved, events.FileRemoved{Path: string(file)})
}
