// Package watch bridges file system deletions onto the event bus.
//
// The navigation tracker prunes history entries whose file is gone. In
// an embedded host the editor reports deletions itself; when docnav runs
// against real files, the watcher observes the file system with fsnotify
// and publishes file.removed events for deletes and renames.
package watch
