package tsm

// scrollback is a bounded FIFO ring of *Line objects evicted off the top
// of the primary buffer, kept in a slice with a moving head. Push stamps
// each line with its slice slot (sbIndex) and a generation number, but
// nothing reads them: selection anchors refer to scroll-back lines by
// *Line pointer and are retargeted by the Screen when a line is evicted.
type scrollback struct {
	lines []*Line // ring buffer, oldest-first logically via head/count
	head  int
	count int
	max   int // 0 means unbounded
	gen   uint32
}

func newScrollback() *scrollback {
	return &scrollback{}
}

// SetMax sets the capacity bound, evicting the oldest lines if the new
// bound is smaller than the current count. 0 means unbounded.
func (s *scrollback) SetMax(max int) []*Line {
	s.max = max
	var evicted []*Line
	if max > 0 {
		for s.count > max {
			evicted = append(evicted, s.popOldest())
		}
	}
	return evicted
}

// Push appends a line to the most-recent end, evicting the oldest line if
// at capacity. Returns the evicted line, or nil.
func (s *scrollback) Push(l *Line) (evicted *Line) {
	s.gen++
	l.generation = s.gen
	if s.max > 0 && s.count >= s.max {
		evicted = s.popOldest()
	}
	s.lines = append(s.lines, l)
	l.sbIndex = int32(len(s.lines) - 1)
	s.count++
	return evicted
}

func (s *scrollback) popOldest() *Line {
	if s.count == 0 {
		return nil
	}
	l := s.lines[s.head]
	s.lines[s.head] = nil
	s.head++
	s.count--
	if s.head > 4096 && s.head*2 > len(s.lines) {
		// compact occasionally so the backing slice doesn't grow forever
		s.lines = append([]*Line(nil), s.lines[s.head:]...)
		s.head = 0
	}
	return l
}

// popNewest removes and returns the most-recently-pushed line (the one
// nearest the live grid), used by Resize's row-growth path to promote
// scroll-back lines back into the main buffer per spec.md §4.3.
func (s *scrollback) popNewest() *Line {
	if s.count == 0 {
		return nil
	}
	idx := s.head + s.count - 1
	l := s.lines[idx]
	s.lines = s.lines[:idx]
	s.count--
	return l
}

// Len returns the number of lines currently retained.
func (s *scrollback) Len() int { return s.count }

// At returns the line `index` positions from the oldest retained line, or
// nil if out of range.
func (s *scrollback) At(index int) *Line {
	if index < 0 || index >= s.count {
		return nil
	}
	return s.lines[s.head+index]
}

// Clear discards all retained lines.
func (s *scrollback) Clear() []*Line {
	evicted := s.lines[s.head : s.head+s.count]
	out := append([]*Line(nil), evicted...)
	s.lines = nil
	s.head = 0
	s.count = 0
	return out
}

// selectionTop is the sentinel row used by an anchor once its target line
// has scrolled out of scroll-back entirely (spec.md §4.3).
const selectionTop = -1

// anchor is a weak reference to a position in the document: either a live
// row within the visible screen (y >= 0, line nil) or a scroll-back line
// addressed by pointer (line != nil), degrading to the selectionTop
// sentinel once its line is evicted past the retained bound.
type anchor struct {
	line *Line
	x    int32
	y    int32 // selectionTop once degraded
}
