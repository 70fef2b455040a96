package history

// changeList is the bounded sequence of change places with a logical
// cursor. startIndex grows monotonically as old entries are trimmed so
// the current position in change history survives trims:
// currentIndex == startIndex + len after every append.
type changeList struct {
	places  []Place
	start   int
	current int
}

// collapseTail removes the most recent entry when it is the same place
// as next, so repeated edits at one location keep a single entry.
func (c *changeList) collapseTail(next Place, same SamePredicate) {
	if n := len(c.places); n > 0 && same(next, c.places[n-1]) {
		c.places = c.places[:n-1]
	}
}

// push appends a place, evicting the oldest past limit, and moves the
// cursor to the end of history.
func (c *changeList) push(p Place, limit int) {
	c.places = append(c.places, p)
	if limit > 0 && len(c.places) > limit {
		c.places = c.places[1:]
		c.start++
	}
	c.syncCurrent()
}

// syncCurrent moves the cursor to the end of history.
func (c *changeList) syncCurrent() {
	c.current = c.start + len(c.places)
}

// hasPrevious reports whether the cursor can step back.
func (c *changeList) hasPrevious() bool {
	return c.current > c.start
}

// previous returns the place before the cursor and its logical index,
// without moving the cursor. Returns false at the start-of-history
// boundary.
func (c *changeList) previous() (Place, int, bool) {
	if c.current <= c.start {
		return Place{}, 0, false
	}
	index := c.current - 1
	return c.places[index-c.start], index, true
}

// setCursor places the cursor at the given logical index, clamped to the
// live range. A trim may have evicted the indexed entry since it was
// read; the cursor then lands on the start-of-history boundary instead
// of pointing below it.
func (c *changeList) setCursor(index int) {
	switch {
	case index < c.start:
		c.current = c.start
	case index > c.start+len(c.places):
		c.current = c.start + len(c.places)
	default:
		c.current = index
	}
}

// removeInvalid drops places whose file fails the validity check. When
// anything is removed the cursor snaps to the end of history.
func (c *changeList) removeInvalid(valid func(Place) bool) {
	kept := c.places[:0]
	removed := false
	for _, p := range c.places {
		if valid(p) {
			kept = append(kept, p)
		} else {
			removed = true
		}
	}
	c.places = kept
	if removed {
		c.syncCurrent()
	}
}

// clear resets the list, indices included.
func (c *changeList) clear() {
	c.places = nil
	c.start = 0
	c.current = 0
}

// snapshot returns a copy of the change places, oldest first.
func (c *changeList) snapshot() []Place {
	out := make([]Place, len(c.places))
	copy(out, c.places)
	return out
}
