// Package event provides the in-process event bus for docnav.
//
// The bus decouples the navigation tracker from its host collaborators:
// the host publishes command boundaries, document edits, caret moves,
// selection changes, and file removals as envelopes, and the tracker
// consumes them through subscriptions without a direct dependency on the
// host's editor types.
//
// # Delivery Model
//
// The bus is synchronous. Publish delivers to every matching handler on
// the publisher's goroutine before returning, preserving event order.
// Navigation history is a single-threaded state machine driven by a UI
// loop, so asynchronous delivery would only reorder events it depends on.
//
// # Topics
//
// Events use hierarchical dot-notation topics (see the topic package):
//
//	command.started
//	command.finished
//	document.changed
//	caret.moved
//	editor.selection.changed
//	file.removed
//
// Subscriptions may use "*" (one segment) and "**" (any segments)
// wildcards:
//
//	bus.SubscribeFunc("command.*", func(ctx context.Context, env event.Envelope) error {
//	    ...
//	    return nil
//	})
//
// The events package declares the topic catalog and payload types.
package event
