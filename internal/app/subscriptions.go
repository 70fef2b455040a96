package app

import (
	"context"

	"github.com/dshills/docnav/internal/editor"
	"github.com/dshills/docnav/internal/event"
	"github.com/dshills/docnav/internal/event/events"
	"github.com/dshills/docnav/internal/event/topic"
)

// subscribe routes bus events into the tracker. Events published during
// the tracker's own replays are routed too; the tracker suppresses
// recording internally while a replay is in progress.
func (a *App) subscribe() error {
	a.subs = event.NewSubscriber(a.bus)

	routes := map[topic.Topic]event.HandlerFunc{
		events.TopicCommandStarted: func(context.Context, event.Envelope) error {
			a.tracker.OnCommandStarted()
			return nil
		},
		events.TopicCommandFinished: func(_ context.Context, env event.Envelope) error {
			if p, ok := env.Payload.(events.CommandFinished); ok {
				a.tracker.OnCommandFinished(p.GroupID)
			}
			return nil
		},
		events.TopicDocumentChanged: func(_ context.Context, env event.Envelope) error {
			if p, ok := env.Payload.(events.DocumentChanged); ok {
				a.tracker.OnDocumentChanged(editor.FileID(p.File))
			}
			return nil
		},
		events.TopicCaretMoved: func(_ context.Context, env event.Envelope) error {
			if p, ok := env.Payload.(events.CaretMoved); ok {
				a.tracker.OnCaretPositionChanged(editor.FileID(p.File), p.OldLine, p.NewLine)
			}
			return nil
		},
		events.TopicSelectionChanged: func(context.Context, event.Envelope) error {
			a.tracker.OnSelectionChanged()
			return nil
		},
		events.TopicFileRemoved: func(_ context.Context, env event.Envelope) error {
			if p, ok := env.Payload.(events.FileRemoved); ok {
				a.host.RemoveFile(editor.FileID(p.Path))
			}
			a.tracker.OnFileDeleted()
			return nil
		},
	}

	for pattern, fn := range routes {
		if _, err := a.subs.SubscribeFunc(pattern, fn); err != nil {
			return err
		}
	}
	return nil
}
