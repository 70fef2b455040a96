package history

import (
	"sync"

	"github.com/dshills/docnav/internal/editor"
	"github.com/dshills/docnav/internal/recent"
)

// Stack limits.
const (
	// DefaultBackLimit bounds the back stack.
	DefaultBackLimit = 25

	// DefaultChangeLimit bounds the change list.
	DefaultChangeLimit = 25
)

// Direction identifies the kind of history replay.
type Direction string

// Replay directions passed to the navigation hook.
const (
	// DirectionBack is a jump to an older place.
	DirectionBack Direction = "back"

	// DirectionForward is a jump to a newer place.
	DirectionForward Direction = "forward"

	// DirectionChange is a jump to a previous change place.
	DirectionChange Direction = "change"
)

// NavigateHook observes completed history replays.
type NavigateHook func(p Place, direction Direction)

// Option configures a Tracker.
type Option func(*Tracker)

// WithBackLimit bounds the back stack. Non-positive keeps the default.
func WithBackLimit(limit int) Option {
	return func(t *Tracker) {
		if limit > 0 {
			t.backLimit = limit
		}
	}
}

// WithChangeLimit bounds the change list. Non-positive keeps the default.
func WithChangeLimit(limit int) Option {
	return func(t *Tracker) {
		if limit > 0 {
			t.changeLimit = limit
		}
	}
}

// WithSamePredicate replaces the place comparison rule used for merge
// decisions. The default is SamePlace.
func WithSamePredicate(p SamePredicate) Option {
	return func(t *Tracker) {
		if p != nil {
			t.same = p
		}
	}
}

// WithRecentList supplies the recently-changed-files list the tracker
// registers edits into. The default is a list bounded to
// recent.DefaultLimit.
func WithRecentList(l *recent.List) Option {
	return func(t *Tracker) {
		if l != nil {
			t.recent = l
		}
	}
}

// WithNavigateHook registers a hook observing completed replays.
func WithNavigateHook(h NavigateHook) Option {
	return func(t *Tracker) {
		t.navigated = h
	}
}

// Tracker maintains the back, forward, and change navigation history of
// an editor.
//
// It is driven entirely by host notifications: command boundaries,
// document edits, caret moves, selection changes, and file removals.
// History tracking must never interrupt editing, so every operation that
// cannot proceed (empty stack, no selected editor, stale file) is a
// silent no-op.
//
// The model is single-threaded and cooperative; a mutex guards the state
// so hosts may call in from their UI loop without extra locking. Replays
// release the lock around the navigation callback, which re-enters the
// tracker through the host's own notifications.
type Tracker struct {
	mu sync.Mutex

	context editor.ContextProvider
	nav     editor.Navigator
	files   editor.FileRegistry

	back    placeStack
	forward placeStack
	changes changeList

	// currentChangePlace is the staged change place: set when a command
	// edits a document, pushed onto the change list by the next
	// navigation away from it.
	currentChangePlace *Place

	cmd         *session
	lastGroupID string

	// Replay guards. A programmatic back/forward jump runs as its own
	// command; these suppress the history entries that command would
	// otherwise generate.
	backInProgress    bool
	forwardInProgress bool

	backLimit   int
	changeLimit int
	same        SamePredicate
	recent      *recent.List
	navigated   NavigateHook
}

// New creates a tracker bound to the given collaborators.
func New(context editor.ContextProvider, nav editor.Navigator, files editor.FileRegistry, opts ...Option) *Tracker {
	t := &Tracker{
		context:     context,
		nav:         nav,
		files:       files,
		cmd:         newSession(),
		backLimit:   DefaultBackLimit,
		changeLimit: DefaultChangeLimit,
		same:        SamePlace,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.recent == nil {
		t.recent = recent.NewList(recent.DefaultLimit)
	}
	return t
}

// OnCommandStarted snapshots the current place and resets the
// per-command flags.
func (t *Tracker) OnCommandStarted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cmd.reset(t.currentPlaceLocked())
}

// OnCommandFinished consumes the command session. A navigation command
// that moved the caret pushes the command start place onto the back
// stack (unless it was a back replay or merges with the previous command
// group) and clears the forward stack (unless it was a forward replay).
// A command that edited documents stages the change place; one that only
// moved pushes the previously staged change place.
func (t *Tracker) OnCommandFinished(groupID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cmd.startPlace != nil && t.cmd.isNavigation && t.cmd.hasMoves {
		if !t.backInProgress {
			if !canMergeGroup(groupID, t.lastGroupID) {
				t.back.putLastOrMerge(*t.cmd.startPlace, t.backLimit, t.same)
			}
			if !t.forwardInProgress {
				t.forward.clear()
			}
		}
		t.removeInvalidLocked()
	}
	t.lastGroupID = groupID

	if t.cmd.hasChanges {
		t.stageChangePlaceLocked()
	} else if t.cmd.hasMoves {
		t.pushChangePlaceLocked()
	}
}

// OnDocumentChanged records that file was edited by the current command.
// Documents without a file do not participate in history.
func (t *Tracker) OnDocumentChanged(file editor.FileID) {
	if file == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cmd.touch(file)
}

// OnCaretPositionChanged records a caret move. Moves within a single
// line do not count.
func (t *Tracker) OnCaretPositionChanged(file editor.FileID, oldLine, newLine int) {
	if oldLine == newLine || file == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cmd.hasMoves = true
}

// OnSelectionChanged records that the selected editor changed, which
// makes the current command a navigation.
func (t *Tracker) OnSelectionChanged() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cmd.isNavigation = true
	t.cmd.hasMoves = true
}

// OnFileDeleted prunes places referencing files that are no longer
// valid.
func (t *Tracker) OnFileDeleted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeInvalidLocked()
}

// IncludeCurrentCommandAsNavigation flags the current command as a
// navigation even without a selection change.
func (t *Tracker) IncludeCurrentCommandAsNavigation() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cmd.isNavigation = true
}

// IncludeCurrentPlaceAsChangePlace records the current place in change
// history immediately instead of waiting for the command to finish.
func (t *Tracker) IncludeCurrentPlaceAsChangePlace() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stageChangePlaceLocked()
	t.pushChangePlaceLocked()
}

// Back pops the most recent back place, records the current place on
// the forward stack, and replays the popped place. A no-op when the
// back stack is empty.
func (t *Tracker) Back() error {
	t.mu.Lock()
	t.removeInvalidLocked()

	info, ok := t.back.popLast()
	if !ok {
		t.mu.Unlock()
		return nil
	}

	if cur := t.currentPlaceLocked(); cur != nil && !t.same(*cur, info) {
		t.forward.putLastOrMerge(*cur, 0, t.same)
	}
	t.forward.putLastOrMerge(info, 0, t.same)

	t.backInProgress = true
	t.mu.Unlock()

	err := t.replay(info, DirectionBack)

	t.mu.Lock()
	t.backInProgress = false
	t.mu.Unlock()
	return err
}

// Forward replays the most recent forward place. Entries equal to the
// place just restored are collapsed so repeated identical states become
// one jump. A no-op when the forward stack is empty.
func (t *Tracker) Forward() error {
	t.mu.Lock()
	t.removeInvalidLocked()

	target, ok := t.forwardTargetLocked()
	if !ok {
		t.mu.Unlock()
		return nil
	}

	t.forwardInProgress = true
	t.mu.Unlock()

	err := t.replay(target, DirectionForward)

	t.mu.Lock()
	t.forwardInProgress = false
	t.mu.Unlock()
	return err
}

// forwardTargetLocked pops the forward stack, skipping entries that are
// the same as the current place.
func (t *Tracker) forwardTargetLocked() (Place, bool) {
	target, ok := t.forward.popLast()
	if !ok {
		return Place{}, false
	}

	cur := t.currentPlaceLocked()
	for t.forward.len() > 0 {
		if cur != nil && t.same(*cur, target) {
			target, _ = t.forward.popLast()
			continue
		}
		break
	}
	return target, true
}

// IsBackAvailable reports whether Back has anywhere to go.
func (t *Tracker) IsBackAvailable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.back.len() > 0
}

// IsForwardAvailable reports whether Forward has anywhere to go.
func (t *Tracker) IsForwardAvailable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.forward.len() > 0
}

// NavigatePreviousChange steps the change cursor back one index and
// replays that place. A no-op at the start-of-history boundary.
func (t *Tracker) NavigatePreviousChange() error {
	t.mu.Lock()
	t.removeInvalidLocked()

	info, index, ok := t.changes.previous()
	if !ok {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	err := t.replay(info, DirectionChange)

	// The replay command re-syncs the cursor to the end of history; the
	// stepped-back position must win.
	t.mu.Lock()
	t.changes.setCursor(index)
	t.mu.Unlock()
	return err
}

// IsNavigatePreviousChangeAvailable reports whether the change cursor
// can step back.
func (t *Tracker) IsNavigatePreviousChangeAvailable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changes.hasPrevious()
}

// ChangedFiles returns the recently changed file paths, oldest first,
// restricted to files that are still valid.
func (t *Tracker) ChangedFiles() []editor.FileID {
	paths := t.recent.Paths()
	out := make([]editor.FileID, 0, len(paths))
	for _, p := range paths {
		file := editor.FileID(p)
		if t.files.IsValid(file) {
			out = append(out, file)
		}
	}
	return out
}

// RecentList returns the underlying recently-changed-files list, for
// persistence by the embedding layer.
func (t *Tracker) RecentList() *recent.List {
	return t.recent
}

// ClearHistory empties all three stacks and resets the transient
// pointers.
func (t *Tracker) ClearHistory() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.back.clear()
	t.forward.clear()
	t.changes.clear()

	t.lastGroupID = ""
	t.currentChangePlace = nil
	t.cmd.startPlace = nil
}

// BackPlaces returns a copy of the back stack, oldest first.
func (t *Tracker) BackPlaces() []Place {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.back.snapshot()
}

// ForwardPlaces returns a copy of the forward stack, oldest first.
func (t *Tracker) ForwardPlaces() []Place {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.forward.snapshot()
}

// ChangePlaces returns a copy of the change list, oldest first.
func (t *Tracker) ChangePlaces() []Place {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changes.snapshot()
}

// IsReplayInProgress reports whether a programmatic back or forward
// replay is running.
func (t *Tracker) IsReplayInProgress() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.backInProgress || t.forwardInProgress
}

// replay runs the navigation callback inside a synthetic command so the
// host notifications it triggers flow through the usual session
// handling, with the replay guard deciding what gets recorded.
func (t *Tracker) replay(info Place, direction Direction) error {
	t.OnCommandStarted()
	err := t.nav.GotoPlace(info.File(), info.State(), info.TypeID(), info.LiveWindow())
	t.OnCommandFinished("")

	if err == nil && t.navigated != nil {
		t.navigated(info, direction)
	}
	return err
}

// currentPlaceLocked captures the place of the selected editor, nil when
// no editor is selected.
func (t *Tracker) currentPlaceLocked() *Place {
	ed, ok := t.context.SelectedEditor()
	if !ok || ed == nil {
		return nil
	}
	p := NewPlace(ed.File(), ed.NavigationState(), ed.TypeID(), t.context.CurrentWindow())
	return &p
}

// stageChangePlaceLocked captures the current place as the staged change
// place when the current command edited its file, registering the file
// as recently changed and collapsing a same-place tail entry.
func (t *Tracker) stageChangePlaceLocked() {
	place := t.currentPlaceLocked()
	if place == nil {
		return
	}

	if !t.cmd.touched(place.File()) {
		return
	}
	t.recent.Register(string(place.File()))

	t.currentChangePlace = place
	t.changes.collapseTail(*place, t.same)
	t.changes.syncCurrent()
}

// pushChangePlaceLocked pushes the staged change place onto the change
// list and moves the cursor to the end of history.
func (t *Tracker) pushChangePlaceLocked() {
	if t.currentChangePlace != nil {
		t.changes.push(*t.currentChangePlace, t.changeLimit)
		t.currentChangePlace = nil
	}
	t.changes.syncCurrent()
}

// removeInvalidLocked prunes places whose file is no longer valid from
// all three stacks.
func (t *Tracker) removeInvalidLocked() {
	valid := func(p Place) bool { return t.files.IsValid(p.File()) }
	t.back.removeInvalid(valid)
	t.forward.removeInvalid(valid)
	t.changes.removeInvalid(valid)
}

// canMergeGroup reports whether two command group ids merge into one
// history entry, suppressing separate entries for coalesced edits such
// as consecutive typing.
func canMergeGroup(groupID, lastGroupID string) bool {
	return groupID != "" && groupID == lastGroupID
}
