package editor

// FileID identifies a document within the host. The engine treats it as
// opaque; the in-memory host uses file paths.
type FileID string

// NavState is a host-defined navigation state of an editor: typically the
// caret position plus whatever else the host needs to restore a view. The
// engine never inspects it beyond the two predicates below.
type NavState interface {
	// EqualTo reports whether the two states are exactly equal.
	EqualTo(other NavState) bool

	// CanMerge reports whether the two states are close enough to count
	// as the same place for history purposes.
	CanMerge(other NavState) bool
}

// Window is a handle to the layout window a place was captured in. The
// window may have been closed since; holders must check IsValid before
// use and tolerate a nil Window.
type Window interface {
	// IsValid reports whether the window is still open.
	IsValid() bool
}

// Editor is a host editor open on a file.
type Editor interface {
	// File is the file the editor is open on.
	File() FileID

	// TypeID identifies the editor implementation kind, so a file open
	// in several editor kinds restores into the right one.
	TypeID() string

	// NavigationState captures the editor's current navigation state.
	NavigationState() NavState
}

// ContextProvider supplies the engine with the current editor context.
// A nil or absent selection short-circuits history capture; it is never
// an error.
type ContextProvider interface {
	// CurrentFile returns the file of the selected editor, if any.
	CurrentFile() (FileID, bool)

	// SelectedEditor returns the currently selected editor, if any.
	SelectedEditor() (Editor, bool)

	// CurrentWindow returns the active layout window, or nil.
	CurrentWindow() Window
}

// Navigator moves the host editor to a previously captured place.
type Navigator interface {
	// GotoPlace opens file in win (when still valid), selects the editor
	// of kind typeID, and restores state on it.
	GotoPlace(file FileID, state NavState, typeID string, win Window) error
}

// FileRegistry answers file validity queries so stale places can be
// pruned from history.
type FileRegistry interface {
	// IsValid reports whether the file still exists in the host.
	IsValid(file FileID) bool
}

// Host bundles the collaborator interfaces a full embedding provides.
type Host interface {
	ContextProvider
	Navigator
	FileRegistry
}
