package recent

import "sync"

// DefaultLimit is the default maximum number of tracked files.
const DefaultLimit = 50

// List is a bounded, ordered list of recently changed file paths. The
// most recently changed path is at the end. Re-registering a path moves
// it to the end; registering past the limit evicts the oldest entry.
type List struct {
	mu    sync.Mutex
	paths []string
	limit int
}

// NewList creates a list bounded to limit entries. A non-positive limit
// uses DefaultLimit.
func NewList(limit int) *List {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &List{limit: limit}
}

// Register records a change to path, moving it to the most-recent end.
func (l *List) Register(path string) {
	if path == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.paths {
		if p == path {
			l.paths = append(l.paths[:i], l.paths[i+1:]...)
			break
		}
	}
	l.paths = append(l.paths, path)

	for len(l.paths) > l.limit {
		l.paths = l.paths[1:]
	}
}

// Remove drops path from the list if present.
func (l *List) Remove(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.paths {
		if p == path {
			l.paths = append(l.paths[:i], l.paths[i+1:]...)
			return
		}
	}
}

// Paths returns a copy of the tracked paths, oldest first.
func (l *List) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.paths))
	copy(out, l.paths)
	return out
}

// Len returns the number of tracked paths.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.paths)
}

// Clear empties the list.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = nil
}

// setPaths replaces the list contents, trimming to the limit. Used by
// Load.
func (l *List) setPaths(paths []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.paths = append([]string(nil), paths...)
	for len(l.paths) > l.limit {
		l.paths = l.paths[1:]
	}
}
