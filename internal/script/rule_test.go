package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/docnav/internal/editor"
	"github.com/dshills/docnav/internal/history"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "merge.lua")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func place(file string, line int) history.Place {
	return history.NewPlace(editor.FileID(file), editor.LineState{Line: line}, editor.DefaultTypeID, nil)
}

func TestCanMergeSameFile(t *testing.T) {
	rule, err := LoadRule(writeScript(t, `
function can_merge(a, b)
    return a.file == b.file
end
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer rule.Close()

	ok, err := rule.CanMerge(place("a.go", 1), place("a.go", 99))
	if err != nil {
		t.Fatalf("can_merge: %v", err)
	}
	if !ok {
		t.Error("same file should merge")
	}

	ok, err = rule.CanMerge(place("a.go", 1), place("b.go", 1))
	if err != nil {
		t.Fatalf("can_merge: %v", err)
	}
	if ok {
		t.Error("different files should not merge")
	}
}

func TestCanMergeLineDistance(t *testing.T) {
	rule, err := LoadRule(writeScript(t, `
function can_merge(a, b)
    return a.file == b.file and math.abs(a.line - b.line) <= 5
end
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer rule.Close()

	ok, err := rule.CanMerge(place("a.go", 10), place("a.go", 13))
	if err != nil {
		t.Fatalf("can_merge: %v", err)
	}
	if !ok {
		t.Error("places within 5 lines should merge")
	}

	ok, err = rule.CanMerge(place("a.go", 10), place("a.go", 30))
	if err != nil {
		t.Fatalf("can_merge: %v", err)
	}
	if ok {
		t.Error("places 20 lines apart should not merge")
	}
}

func TestMissingFunction(t *testing.T) {
	_, err := LoadRule(writeScript(t, `x = 1`))
	if !errors.Is(err, ErrNoMergeFunction) {
		t.Errorf("error = %v, want ErrNoMergeFunction", err)
	}
}

func TestBrokenScript(t *testing.T) {
	_, err := LoadRule(writeScript(t, `function can_merge(`))
	if err == nil {
		t.Error("malformed script should fail to load")
	}
}

func TestScriptErrorReportedNotFatal(t *testing.T) {
	rule, err := LoadRule(writeScript(t, `
function can_merge(a, b)
    error("boom")
end
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer rule.Close()

	var reported error
	pred := rule.Predicate(func(err error) { reported = err })

	if pred(place("a.go", 1), place("b.go", 2)) {
		t.Error("failing script should decide no merge")
	}
	if reported == nil {
		t.Error("script error should be reported to the handler")
	}
}

func TestPredicateLayersOverBuiltin(t *testing.T) {
	rule, err := LoadRule(writeScript(t, `
function can_merge(a, b)
    return false
end
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer rule.Close()

	pred := rule.Predicate(nil)

	// Exactly equal places merge through the built-in rule even when the
	// script always declines.
	if !pred(place("a.go", 4), place("a.go", 4)) {
		t.Error("built-in rule should still apply")
	}
}

func TestClosedRule(t *testing.T) {
	rule, err := LoadRule(writeScript(t, `
function can_merge(a, b)
    return true
end
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	rule.Close()
	rule.Close() // idempotent

	if _, err := rule.CanMerge(place("a.go", 1), place("a.go", 2)); !errors.Is(err, ErrRuleClosed) {
		t.Errorf("error = %v, want ErrRuleClosed", err)
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	rule, err := LoadRule(writeScript(t, `
function can_merge(a, b)
    return load ~= nil or dofile ~= nil or loadfile ~= nil
end
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer rule.Close()

	ok, err := rule.CanMerge(place("a.go", 1), place("b.go", 2))
	if err != nil {
		t.Fatalf("can_merge: %v", err)
	}
	if ok {
		t.Error("code-loading globals should be removed from the sandbox")
	}
}
