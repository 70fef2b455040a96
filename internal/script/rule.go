package script

import (
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/docnav/internal/editor"
	"github.com/dshills/docnav/internal/history"
)

// mergeFn is the global function a merge script must define.
const mergeFn = "can_merge"

// Rule errors.
var (
	// ErrRuleClosed is returned when evaluating a closed rule.
	ErrRuleClosed = errors.New("script: rule is closed")

	// ErrNoMergeFunction indicates the script defines no can_merge.
	ErrNoMergeFunction = errors.New("script: script defines no can_merge function")
)

// Rule is a Lua-scriptable place comparison rule.
//
// A script defines a global can_merge(a, b) receiving two place tables
// with fields file, line, column, and editor_type, and returns whether
// the places count as the same history entry. The built-in SamePlace
// predicate runs first; the script only widens it.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all
// evaluations.
type Rule struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// LoadRule compiles the merge script at path.
func LoadRule(path string) (*Rule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return loadRuleSource(string(src), path)
}

func loadRuleSource(src, name string) (*Rule, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Only the safe portion of the stdlib: no io, os, or loaders.
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(open.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(open.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("script: open %s: %w", open.name, err)
		}
	}
	for _, fn := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(fn, lua.LNil)
	}

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}

	if L.GetGlobal(mergeFn).Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoMergeFunction
	}

	return &Rule{L: L}, nil
}

// CanMerge evaluates the script against two places. Script errors are
// reported as "no merge" with the error returned for logging; merge
// decisions must never interrupt editing.
func (r *Rule) CanMerge(a, b history.Place) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false, ErrRuleClosed
	}

	if err := r.L.CallByParam(lua.P{
		Fn:      r.L.GetGlobal(mergeFn),
		NRet:    1,
		Protect: true,
	}, placeTable(r.L, a), placeTable(r.L, b)); err != nil {
		return false, fmt.Errorf("script: can_merge: %w", err)
	}

	ret := r.L.Get(-1)
	r.L.Pop(1)
	return lua.LVAsBool(ret), nil
}

// Close releases the Lua state.
func (r *Rule) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

// Predicate adapts the rule to a history.SamePredicate layered over the
// built-in comparison. onError observes script failures; it may be nil.
func (r *Rule) Predicate(onError func(error)) history.SamePredicate {
	return func(a, b history.Place) bool {
		if history.SamePlace(a, b) {
			return true
		}
		ok, err := r.CanMerge(a, b)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return false
		}
		return ok
	}
}

// placeTable renders a place as a Lua table.
func placeTable(L *lua.LState, p history.Place) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "file", lua.LString(p.File()))
	L.SetField(t, "editor_type", lua.LString(p.TypeID()))
	if ls, ok := p.State().(editor.LineState); ok {
		L.SetField(t, "line", lua.LNumber(ls.Line))
		L.SetField(t, "column", lua.LNumber(ls.Column))
	}
	return t
}
