package history

// placeStack is a bounded double-ended sequence of places with the most
// recent entry at the tail. It is not safe for concurrent use; the
// tracker serializes access.
type placeStack struct {
	places []Place
}

// putLastOrMerge appends next to the stack. If the current tail is the
// same place per the predicate, the tail is replaced instead of stacking
// a duplicate. When a positive limit is exceeded the oldest entry is
// evicted.
func (s *placeStack) putLastOrMerge(next Place, limit int, same SamePredicate) {
	if n := len(s.places); n > 0 && same(s.places[n-1], next) {
		s.places = s.places[:n-1]
	}

	s.places = append(s.places, next)
	if limit > 0 && len(s.places) > limit {
		s.places = s.places[1:]
	}
}

// popLast removes and returns the most recent place.
func (s *placeStack) popLast() (Place, bool) {
	n := len(s.places)
	if n == 0 {
		return Place{}, false
	}
	p := s.places[n-1]
	s.places = s.places[:n-1]
	return p, true
}

// removeInvalid drops every place whose file fails the validity check,
// preserving the order of the rest. Reports whether anything was
// removed.
func (s *placeStack) removeInvalid(valid func(Place) bool) bool {
	kept := s.places[:0]
	removed := false
	for _, p := range s.places {
		if valid(p) {
			kept = append(kept, p)
		} else {
			removed = true
		}
	}
	s.places = kept
	return removed
}

// clear empties the stack.
func (s *placeStack) clear() {
	s.places = nil
}

// len returns the number of places on the stack.
func (s *placeStack) len() int {
	return len(s.places)
}

// snapshot returns a copy of the stack contents, oldest first.
func (s *placeStack) snapshot() []Place {
	out := make([]Place, len(s.places))
	copy(out, s.places)
	return out
}
