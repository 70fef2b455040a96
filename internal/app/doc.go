// Package app assembles the document navigation engine.
//
// An App owns the event bus, the in-memory editor host, the history
// tracker, the recently-changed-files list, and the optional file
// system watcher and Lua merge rule. Construction order matters: the
// host is built first, then the tracker over it, then the App installs
// itself as the host's observer so that every host state change is
// published on the bus and routed back into the tracker.
//
// # Event Flow
//
// Host mutations (open, caret move, edit, remove) notify the App
// through the editor.Observer interface. The App publishes a typed
// envelope for each notification and its own subscriptions translate
// the envelopes into tracker calls. External publishers, such as the
// watcher's file.removed events, enter the same pipeline.
//
// # Commands
//
// Do wraps a function in command.started and command.finished events.
// The tracker only records history at command boundaries, so host
// mutations performed outside Do are observed but never recorded.
package app
