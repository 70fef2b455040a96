package history

import (
	"testing"

	"github.com/dshills/docnav/internal/editor"
)

// hostObserver routes memory host notifications straight into the
// tracker, standing in for the bus wiring the app layer provides.
type hostObserver struct {
	tr *Tracker
}

func (o hostObserver) FileSelected(editor.FileID) { o.tr.OnSelectionChanged() }
func (o hostObserver) CaretMoved(file editor.FileID, oldLine, _, newLine, _ int) {
	o.tr.OnCaretPositionChanged(file, oldLine, newLine)
}
func (o hostObserver) DocumentEdited(file editor.FileID) { o.tr.OnDocumentChanged(file) }
func (o hostObserver) FileRemoved(editor.FileID)         { o.tr.OnFileDeleted() }

func newFixture(t *testing.T, hostOpts []editor.MemoryOption, opts ...Option) (*editor.Memory, *Tracker) {
	t.Helper()
	host := editor.NewMemory(hostOpts...)
	tr := New(host, host, host, opts...)
	host.SetObserver(hostObserver{tr})
	return host, tr
}

// do runs fn as one editing command.
func do(tr *Tracker, groupID string, fn func()) {
	tr.OnCommandStarted()
	fn()
	tr.OnCommandFinished(groupID)
}

func mustOpen(t *testing.T, host *editor.Memory, file editor.FileID) {
	t.Helper()
	if err := host.Open(file); err != nil {
		t.Fatalf("open %s: %v", file, err)
	}
}

func currentLine(t *testing.T, host *editor.Memory) int {
	t.Helper()
	ed, ok := host.SelectedEditor()
	if !ok {
		t.Fatal("no selected editor")
	}
	return ed.NavigationState().(editor.LineState).Line
}

func TestBackStackEviction(t *testing.T) {
	host, tr := newFixture(t, nil, WithBackLimit(3))
	for _, f := range []editor.FileID{"f0", "f1", "f2", "f3", "f4"} {
		host.AddFile(f)
	}
	mustOpen(t, host, "f0")

	for _, f := range []editor.FileID{"f1", "f2", "f3", "f4"} {
		f := f
		do(tr, "", func() { mustOpen(t, host, f) })
	}

	got := files(tr.BackPlaces())
	want := []string{"f1", "f2", "f3"}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("back stack = %v, want %v (oldest evicted)", got, want)
	}
}

func TestBackThenForwardRestores(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	mustOpen(t, host, "a.go")

	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(10, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})

	if !tr.IsBackAvailable() {
		t.Fatal("back should be available after a navigation")
	}

	if err := tr.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if got := currentLine(t, host); got != 0 {
		t.Errorf("after back, line = %d, want 0", got)
	}
	if !tr.IsForwardAvailable() {
		t.Fatal("forward should be available after back")
	}

	if err := tr.Forward(); err != nil {
		t.Fatalf("forward: %v", err)
	}
	if got := currentLine(t, host); got != 10 {
		t.Errorf("after forward, line = %d, want 10", got)
	}
}

func TestMergeableNavigationsCollapse(t *testing.T) {
	host, tr := newFixture(t, []editor.MemoryOption{editor.WithMergeProximity(2)})
	host.AddFile("a.go")
	mustOpen(t, host, "a.go")
	if err := host.MoveCaret(5, 0); err != nil {
		t.Fatalf("move: %v", err)
	}

	// Two navigations whose start places are within merge proximity
	// (lines 5 and 6) collapse to one back entry.
	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(6, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})
	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(40, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})

	if got := len(tr.BackPlaces()); got != 1 {
		t.Errorf("back stack length = %d, want 1 (mergeable places collapse)", got)
	}
}

func TestGroupMergeSuppression(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	host.AddFile("b.go")
	host.AddFile("c.go")
	mustOpen(t, host, "a.go")

	// Same non-empty group id: the second command's start place is not
	// pushed, mirroring coalesced typing.
	do(tr, "g1", func() { mustOpen(t, host, "b.go") })
	do(tr, "g1", func() { mustOpen(t, host, "c.go") })

	got := files(tr.BackPlaces())
	if len(got) != 1 || got[0] != "a.go" {
		t.Errorf("back stack = %v, want [a.go]", got)
	}
}

func TestNavigationClearsForward(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	host.AddFile("b.go")
	mustOpen(t, host, "a.go")

	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(10, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})
	if err := tr.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if !tr.IsForwardAvailable() {
		t.Fatal("forward should be available after back")
	}

	// A fresh navigation invalidates the forward chain.
	do(tr, "", func() { mustOpen(t, host, "b.go") })

	if tr.IsForwardAvailable() {
		t.Error("fresh navigation should clear the forward stack")
	}
}

func TestReplayDoesNotRecordHistory(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	host.AddFile("b.go")
	mustOpen(t, host, "a.go")

	do(tr, "", func() { mustOpen(t, host, "b.go") })
	backBefore := len(tr.BackPlaces())

	if err := tr.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}

	// The replayed selection change must not generate a new back entry.
	if got := len(tr.BackPlaces()); got != backBefore-1 {
		t.Errorf("back stack length after replay = %d, want %d", got, backBefore-1)
	}
}

func TestForwardCollapsesIdenticalStates(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	host.AddFile("b.go")
	mustOpen(t, host, "a.go")

	do(tr, "", func() { mustOpen(t, host, "b.go") })
	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(20, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})

	// Two backs stack up forward entries; forward must skip entries
	// matching the place just restored instead of bouncing in place.
	if err := tr.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if err := tr.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}

	file, _ := host.CurrentFile()
	if file != "a.go" {
		t.Fatalf("after two backs, file = %s, want a.go", file)
	}

	if err := tr.Forward(); err != nil {
		t.Fatalf("forward: %v", err)
	}
	file, _ = host.CurrentFile()
	if file != "b.go" {
		t.Errorf("after forward, file = %s, want b.go (identical entries skipped)", file)
	}
}

func TestChangeNavigation(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	mustOpen(t, host, "a.go")

	if tr.IsNavigatePreviousChangeAvailable() {
		t.Error("no changes yet, previous change should be unavailable")
	}

	do(tr, "", func() {
		if err := host.Edit(3, 0); err != nil {
			t.Fatalf("edit: %v", err)
		}
	})
	// Moving away pushes the staged change place.
	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(30, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})

	if !tr.IsNavigatePreviousChangeAvailable() {
		t.Fatal("previous change should be available")
	}

	if err := tr.NavigatePreviousChange(); err != nil {
		t.Fatalf("navigate previous change: %v", err)
	}
	if got := currentLine(t, host); got != 3 {
		t.Errorf("after change navigation, line = %d, want 3", got)
	}

	if tr.IsNavigatePreviousChangeAvailable() {
		t.Error("cursor at start of change history, previous should be unavailable")
	}
	// Boundary: a further call is a silent no-op.
	if err := tr.NavigatePreviousChange(); err != nil {
		t.Fatalf("navigate previous change at boundary: %v", err)
	}
	if got := currentLine(t, host); got != 3 {
		t.Errorf("boundary no-op moved the caret to line %d", got)
	}
}

func TestChangeNavigationBoundaryAfterEviction(t *testing.T) {
	host, tr := newFixture(t, nil, WithChangeLimit(1))
	host.AddFile("a.go")
	mustOpen(t, host, "a.go")

	do(tr, "", func() {
		if err := host.Edit(1, 0); err != nil {
			t.Fatalf("edit: %v", err)
		}
	})
	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(10, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})
	do(tr, "", func() {
		if err := host.Edit(20, 0); err != nil {
			t.Fatalf("edit: %v", err)
		}
	})

	// The replay pushes the staged change place, which evicts the entry
	// the cursor stepped back to. The cursor lands on the boundary.
	if err := tr.NavigatePreviousChange(); err != nil {
		t.Fatalf("navigate previous change: %v", err)
	}
	if got := currentLine(t, host); got != 1 {
		t.Fatalf("after change navigation, line = %d, want 1", got)
	}
	if tr.IsNavigatePreviousChangeAvailable() {
		t.Error("cursor below trimmed history should report no previous change")
	}

	// A second call at the boundary stays a silent no-op.
	if err := tr.NavigatePreviousChange(); err != nil {
		t.Fatalf("navigate previous change at boundary: %v", err)
	}
	if got := currentLine(t, host); got != 1 {
		t.Errorf("boundary no-op moved the caret to line %d", got)
	}
}

func TestRepeatedEditsAtOnePlaceCollapse(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	mustOpen(t, host, "a.go")

	for i := 0; i < 3; i++ {
		do(tr, "", func() {
			if err := host.Edit(3, i); err != nil {
				t.Fatalf("edit: %v", err)
			}
		})
	}
	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(30, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})

	if got := len(tr.ChangePlaces()); got != 1 {
		t.Errorf("change list length = %d, want 1 (same-place edits collapse)", got)
	}
}

func TestClearHistory(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	host.AddFile("b.go")
	mustOpen(t, host, "a.go")

	do(tr, "", func() {
		if err := host.Edit(3, 0); err != nil {
			t.Fatalf("edit: %v", err)
		}
	})
	do(tr, "", func() { mustOpen(t, host, "b.go") })
	if err := tr.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}

	tr.ClearHistory()

	if tr.IsBackAvailable() {
		t.Error("back available after clear")
	}
	if tr.IsForwardAvailable() {
		t.Error("forward available after clear")
	}
	if tr.IsNavigatePreviousChangeAvailable() {
		t.Error("previous change available after clear")
	}
	if n := len(tr.BackPlaces()) + len(tr.ForwardPlaces()) + len(tr.ChangePlaces()); n != 0 {
		t.Errorf("stacks hold %d places after clear", n)
	}
}

func TestDeletedFilePruned(t *testing.T) {
	host, tr := newFixture(t, nil)
	for _, f := range []editor.FileID{"a.go", "b.go", "c.go"} {
		host.AddFile(f)
	}
	mustOpen(t, host, "a.go")

	do(tr, "", func() { mustOpen(t, host, "b.go") })
	do(tr, "", func() { mustOpen(t, host, "c.go") })

	// Back stack is [a.go, b.go]; removing b.go must drop only its
	// entry and keep the rest in order.
	host.RemoveFile("b.go")

	got := files(tr.BackPlaces())
	if len(got) != 1 || got[0] != "a.go" {
		t.Errorf("back stack = %v, want [a.go]", got)
	}
}

func TestBackOnEmptyStackIsNoop(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	mustOpen(t, host, "a.go")
	if err := host.MoveCaret(7, 0); err != nil {
		t.Fatalf("move: %v", err)
	}

	if err := tr.Back(); err != nil {
		t.Fatalf("back on empty stack: %v", err)
	}
	if got := currentLine(t, host); got != 7 {
		t.Errorf("back on empty stack moved caret to line %d", got)
	}
	if err := tr.Forward(); err != nil {
		t.Fatalf("forward on empty stack: %v", err)
	}
}

func TestCaretMoveWithinLineIgnored(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	mustOpen(t, host, "a.go")

	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(0, 25); err != nil {
			t.Fatalf("move: %v", err)
		}
	})

	if tr.IsBackAvailable() {
		t.Error("same-line caret move should not record navigation")
	}
}

func TestChangedFiles(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	host.AddFile("b.go")
	mustOpen(t, host, "a.go")
	do(tr, "", func() {
		if err := host.Edit(1, 0); err != nil {
			t.Fatalf("edit: %v", err)
		}
	})
	do(tr, "", func() { mustOpen(t, host, "b.go") })
	do(tr, "", func() {
		if err := host.Edit(2, 0); err != nil {
			t.Fatalf("edit: %v", err)
		}
	})

	got := tr.ChangedFiles()
	if len(got) != 2 || got[0] != "a.go" || got[1] != "b.go" {
		t.Fatalf("changed files = %v, want [a.go b.go]", got)
	}

	// Invalid files are filtered from the result.
	host.RemoveFile("a.go")
	got = tr.ChangedFiles()
	if len(got) != 1 || got[0] != "b.go" {
		t.Errorf("changed files after removal = %v, want [b.go]", got)
	}
}

func TestIncludeCurrentPlaceAsChangePlace(t *testing.T) {
	host, tr := newFixture(t, nil)
	host.AddFile("a.go")
	mustOpen(t, host, "a.go")

	tr.OnCommandStarted()
	if err := host.Edit(12, 0); err != nil {
		t.Fatalf("edit: %v", err)
	}
	tr.IncludeCurrentPlaceAsChangePlace()

	// The place is recorded mid-command, without waiting for the
	// command to finish.
	if got := len(tr.ChangePlaces()); got != 1 {
		t.Fatalf("change list length = %d, want 1", got)
	}
	if !tr.IsNavigatePreviousChangeAvailable() {
		t.Error("previous change should be available immediately")
	}
	tr.OnCommandFinished("")

	// Finishing the edit command re-stages the place; moving away pushes
	// it back so change navigation still returns to line 12.
	do(tr, "", func() {
		tr.IncludeCurrentCommandAsNavigation()
		if err := host.MoveCaret(40, 0); err != nil {
			t.Fatalf("move: %v", err)
		}
	})
	if err := tr.NavigatePreviousChange(); err != nil {
		t.Fatalf("navigate previous change: %v", err)
	}
	if got := currentLine(t, host); got != 12 {
		t.Errorf("after change navigation, line = %d, want 12", got)
	}
}

func TestNavigateHook(t *testing.T) {
	var dirs []Direction
	host, tr := newFixture(t, nil, WithNavigateHook(func(_ Place, d Direction) {
		dirs = append(dirs, d)
	}))
	host.AddFile("a.go")
	host.AddFile("b.go")
	mustOpen(t, host, "a.go")

	do(tr, "", func() { mustOpen(t, host, "b.go") })
	if err := tr.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if err := tr.Forward(); err != nil {
		t.Fatalf("forward: %v", err)
	}

	if len(dirs) != 2 || dirs[0] != DirectionBack || dirs[1] != DirectionForward {
		t.Errorf("hook directions = %v, want [back forward]", dirs)
	}
}
