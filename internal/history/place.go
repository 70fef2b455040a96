package history

import (
	"fmt"

	"github.com/dshills/docnav/internal/editor"
)

// Place identifies a location the user can revisit: a file, the host's
// navigation state inside it, the editor kind it was open in, and the
// layout window it was captured from. Immutable once constructed.
type Place struct {
	file   editor.FileID
	state  editor.NavState
	typeID string
	window editor.Window
}

// NewPlace creates a place. The window may be nil.
func NewPlace(file editor.FileID, state editor.NavState, typeID string, window editor.Window) Place {
	return Place{file: file, state: state, typeID: typeID, window: window}
}

// File is the file the place refers to.
func (p Place) File() editor.FileID { return p.file }

// State is the host navigation state captured at the place.
func (p Place) State() editor.NavState { return p.state }

// TypeID is the editor kind the place was captured in.
func (p Place) TypeID() string { return p.typeID }

// LiveWindow returns the captured window if it is still open, else nil.
// The window may have been closed since the place was recorded.
func (p Place) LiveWindow() editor.Window {
	if p.window == nil || !p.window.IsValid() {
		return nil
	}
	return p.window
}

// String renders the place for logs.
func (p Place) String() string {
	return fmt.Sprintf("%s %v", p.file, p.state)
}

// SamePredicate decides whether two places count as the same history
// entry. The tracker uses it to collapse adjacent duplicates rather than
// recording bouncing entries.
type SamePredicate func(a, b Place) bool

// SamePlace is the default predicate: same file, and states exactly
// equal or declared mergeable by the host's own comparison rule.
func SamePlace(a, b Place) bool {
	if a.file != b.file {
		return false
	}
	if a.state == nil || b.state == nil {
		return a.state == nil && b.state == nil
	}
	return a.state.EqualTo(b.state) || a.state.CanMerge(b.state)
}
