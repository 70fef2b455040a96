// Package history implements back/forward/change navigation history for
// an editor.
//
// The tracker maintains three bounded sequences of places:
//
//   - Back stack: where the caret was before each navigation
//   - Forward stack: places left behind by Back, so the jump can be
//     retraced
//   - Change list: where each editing command changed a document, with a
//     logical cursor for walking backward through recent changes
//
// # Command Sessions
//
// The host groups user actions into commands. At command start the
// tracker snapshots the current place; while the command runs it
// accumulates flags (navigated, edited, moved, which files were
// touched); at command finish it consumes those flags to update the
// stacks. Commands sharing a non-empty group id (coalesced typing)
// produce a single history entry.
//
// # Merging
//
// Two places are the same entry when they reference the same file and
// their navigation states are exactly equal or declared mergeable by the
// host's comparison rule. The predicate is injected; the tracker never
// hard-codes merge semantics. Same-place pushes replace the stack tail
// instead of stacking duplicates.
//
// # Replays
//
// Back and Forward run the navigation callback inside a synthetic
// command with a replay guard set, so the caret and selection
// notifications the jump triggers do not themselves generate history.
//
// # Failure Policy
//
// History tracking must never interrupt editing: operations on empty
// stacks are no-ops, places referencing deleted files are silently
// pruned before any read or navigation, and a missing selected editor
// short-circuits capture.
package history
