package history

import "github.com/dshills/docnav/internal/editor"

// session holds the transient per-command state. It is reset at the
// start of every command and consumed when the command finishes.
type session struct {
	// startPlace is the place captured when the command started, nil
	// when no editor was selected.
	startPlace *Place

	// isNavigation marks the command as a navigation (selection change
	// or an explicit IncludeCurrentCommandAsNavigation).
	isNavigation bool

	// hasChanges is set when the command edited any document.
	hasChanges bool

	// hasMoves is set when the command moved the caret across lines or
	// switched editors.
	hasMoves bool

	// changedFiles are the files edited during the command.
	changedFiles map[editor.FileID]struct{}
}

func newSession() *session {
	return &session{changedFiles: make(map[editor.FileID]struct{})}
}

// reset clears all flags and records the command start place.
func (s *session) reset(start *Place) {
	s.startPlace = start
	s.isNavigation = false
	s.hasChanges = false
	s.hasMoves = false
	clear(s.changedFiles)
}

// touch records that file was edited during the command.
func (s *session) touch(file editor.FileID) {
	s.hasChanges = true
	s.changedFiles[file] = struct{}{}
}

// touched reports whether file was edited during the command.
func (s *session) touched(file editor.FileID) bool {
	_, ok := s.changedFiles[file]
	return ok
}
