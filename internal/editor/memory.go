package editor

import (
	"errors"
	"sync"
)

// Memory host errors.
var (
	// ErrUnknownFile indicates an operation on a file the host has never seen.
	ErrUnknownFile = errors.New("editor: unknown file")

	// ErrFileRemoved indicates an operation on a file that was removed.
	ErrFileRemoved = errors.New("editor: file has been removed")
)

// DefaultTypeID is the editor kind used by the in-memory host.
const DefaultTypeID = "text-editor"

// Observer receives notifications about memory host state changes. The
// embedding layer translates these into bus events.
type Observer interface {
	// FileSelected fires when the selected editor changes.
	FileSelected(file FileID)

	// CaretMoved fires when the caret moves in an open editor.
	CaretMoved(file FileID, oldLine, oldColumn, newLine, newColumn int)

	// DocumentEdited fires when a document is modified.
	DocumentEdited(file FileID)

	// FileRemoved fires when a file is removed from the host.
	FileRemoved(file FileID)
}

// LineState is the memory host's NavState: a caret position. Two states
// merge when they are within Proximity lines of each other, matching how
// a text editor treats nearby carets as the same place in history.
type LineState struct {
	// Line is the zero-based caret line.
	Line int

	// Column is the zero-based caret column.
	Column int

	// Proximity is the merge distance in lines. Zero means states merge
	// only on the exact same line.
	Proximity int
}

// EqualTo reports whether other is a LineState at the same position.
func (s LineState) EqualTo(other NavState) bool {
	o, ok := other.(LineState)
	if !ok {
		return false
	}
	return s.Line == o.Line && s.Column == o.Column
}

// CanMerge reports whether other is a LineState within merge proximity.
func (s LineState) CanMerge(other NavState) bool {
	o, ok := other.(LineState)
	if !ok {
		return false
	}
	d := s.Line - o.Line
	if d < 0 {
		d = -d
	}
	prox := s.Proximity
	if o.Proximity > prox {
		prox = o.Proximity
	}
	return d <= prox
}

// MemWindow is a layout window in the memory host.
type MemWindow struct {
	mu   sync.Mutex
	open bool
}

// IsValid reports whether the window is still open.
func (w *MemWindow) IsValid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Close marks the window closed.
func (w *MemWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
}

// MemEditor is an open editor in the memory host.
type MemEditor struct {
	host *Memory
	file FileID
	line int
	col  int
}

// File is the file the editor is open on.
func (e *MemEditor) File() FileID { return e.file }

// TypeID identifies the editor kind.
func (e *MemEditor) TypeID() string { return DefaultTypeID }

// NavigationState captures the editor's caret as a LineState.
func (e *MemEditor) NavigationState() NavState {
	return LineState{Line: e.line, Column: e.col, Proximity: e.host.proximity}
}

// Memory is an in-memory Host implementation for tests and the demo CLI.
// It models a set of files, one editor per file, a selected editor, and
// a single layout window.
type Memory struct {
	mu        sync.Mutex
	files     map[FileID]bool // true while valid
	editors   map[FileID]*MemEditor
	current   FileID
	window    *MemWindow
	proximity int
	observer  Observer
}

// MemoryOption configures a Memory host.
type MemoryOption func(*Memory)

// WithMergeProximity sets the line distance within which two navigation
// states merge. Zero (the default) merges only exact same-line states.
func WithMergeProximity(lines int) MemoryOption {
	return func(m *Memory) {
		m.proximity = lines
	}
}

// NewMemory creates an empty in-memory host.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		files:   make(map[FileID]bool),
		editors: make(map[FileID]*MemEditor),
		window:  &MemWindow{open: true},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetObserver registers the observer notified of host state changes.
func (m *Memory) SetObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = o
}

// AddFile registers a file with the host.
func (m *Memory) AddFile(file FileID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[file] = true
}

// RemoveFile marks a file invalid and closes its editor. Places that
// reference it are pruned from history on the next access.
func (m *Memory) RemoveFile(file FileID) {
	m.mu.Lock()
	if valid, known := m.files[file]; !known || !valid {
		m.mu.Unlock()
		return
	}
	m.files[file] = false
	delete(m.editors, file)
	if m.current == file {
		m.current = ""
	}
	obs := m.observer
	m.mu.Unlock()

	if obs != nil {
		obs.FileRemoved(file)
	}
}

// IsValid reports whether the file exists and has not been removed.
func (m *Memory) IsValid(file FileID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[file]
}

// CurrentFile returns the file of the selected editor, if any.
func (m *Memory) CurrentFile() (FileID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == "" {
		return "", false
	}
	return m.current, true
}

// SelectedEditor returns the currently selected editor, if any.
func (m *Memory) SelectedEditor() (Editor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == "" {
		return nil, false
	}
	ed, ok := m.editors[m.current]
	return ed, ok
}

// CurrentWindow returns the host's layout window.
func (m *Memory) CurrentWindow() Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window
}

// Open selects an editor on the file, creating one at line 0 if needed.
func (m *Memory) Open(file FileID) error {
	m.mu.Lock()
	valid, known := m.files[file]
	if !known {
		m.mu.Unlock()
		return ErrUnknownFile
	}
	if !valid {
		m.mu.Unlock()
		return ErrFileRemoved
	}
	if _, ok := m.editors[file]; !ok {
		m.editors[file] = &MemEditor{host: m, file: file}
	}
	changed := m.current != file
	m.current = file
	obs := m.observer
	m.mu.Unlock()

	if changed && obs != nil {
		obs.FileSelected(file)
	}
	return nil
}

// MoveCaret moves the caret of the selected editor.
func (m *Memory) MoveCaret(line, col int) error {
	m.mu.Lock()
	ed, ok := m.editors[m.current]
	if !ok {
		m.mu.Unlock()
		return ErrUnknownFile
	}
	oldLine, oldCol := ed.line, ed.col
	ed.line, ed.col = line, col
	file := ed.file
	obs := m.observer
	m.mu.Unlock()

	if obs != nil && (oldLine != line || oldCol != col) {
		obs.CaretMoved(file, oldLine, oldCol, line, col)
	}
	return nil
}

// Edit simulates typing at the given line: the document changes and the
// caret lands there.
func (m *Memory) Edit(line, col int) error {
	m.mu.Lock()
	ed, ok := m.editors[m.current]
	if !ok {
		m.mu.Unlock()
		return ErrUnknownFile
	}
	oldLine, oldCol := ed.line, ed.col
	ed.line, ed.col = line, col
	file := ed.file
	obs := m.observer
	m.mu.Unlock()

	if obs != nil {
		obs.DocumentEdited(file)
		if oldLine != line || oldCol != col {
			obs.CaretMoved(file, oldLine, oldCol, line, col)
		}
	}
	return nil
}

// GotoPlace implements Navigator: it opens the file and restores the
// captured caret position. The window handle is accepted for interface
// parity; the memory host has a single window.
func (m *Memory) GotoPlace(file FileID, state NavState, _ string, _ Window) error {
	if err := m.Open(file); err != nil {
		return err
	}
	ls, ok := state.(LineState)
	if !ok {
		return nil
	}
	return m.MoveCaret(ls.Line, ls.Column)
}

// CloseWindow closes the host window, invalidating window references
// held by captured places.
func (m *Memory) CloseWindow() {
	m.mu.Lock()
	w := m.window
	m.window = &MemWindow{open: true}
	m.mu.Unlock()
	w.Close()
}
