package tsm

import "strings"

// SelectionStart begins a new selection anchored at (x, y) in the
// currently visible grid, discarding any previous selection. Per spec.md
// §4.3 the anchor is bound by row index into the live grid; it only
// becomes a scroll-back pointer once that row scrolls off.
func (s *Screen) SelectionStart(x, y int) {
	s.selActive = true
	s.selStart = anchor{x: int32(x), y: int32(y)}
	s.selEnd = s.selStart
}

// SelectionTarget moves the selection's other endpoint to (x, y), matching
// tsm_screen_selection_target.
func (s *Screen) SelectionTarget(x, y int) {
	if !s.selActive {
		return
	}
	s.selEnd = anchor{x: int32(x), y: int32(y)}
}

// SelectionReset clears the active selection.
func (s *Screen) SelectionReset() {
	s.selActive = false
	s.selStart = anchor{}
	s.selEnd = anchor{}
}

// retargetAnchorsOnEvict is called when l is pushed out of the scroll-back
// ring entirely (freed, not merely pushed into it). Any anchor still
// pointing at l degrades to the selectionTop sentinel, per spec.md §5's
// "Screen owns both the scroll-back lines and the selection anchors".
func (s *Screen) retargetAnchorsOnEvict(l *Line) {
	if s.selStart.line == l {
		s.selStart.line = nil
		s.selStart.y = selectionTop
	}
	if s.selEnd.line == l {
		s.selEnd.line = nil
		s.selEnd.y = selectionTop
	}
}

// decrementAnchors is called whenever a row leaves the top of the main
// grid and is pushed into scroll-back as line `pushed`. Row-indexed
// anchors shift down by one; an anchor whose row would go negative is
// either rebound to the pointer of the line that was just evicted (if it
// was anchored at row 0) or degrades to selectionTop, matching spec.md
// §4.3's "Selection model" retargeting rule.
func (s *Screen) decrementAnchors(pushed *Line) {
	for _, a := range []*anchor{&s.selStart, &s.selEnd} {
		if a.line != nil {
			continue // already pinned to a scroll-back line, unaffected
		}
		if a.y == selectionTop {
			continue
		}
		if a.y == 0 {
			if pushed != nil {
				a.line = pushed
			} else {
				a.y = selectionTop
			}
			continue
		}
		a.y--
	}
}

// resolvedLine returns the *Line an anchor refers to. ok is false once
// the anchor has degraded past the retained scroll-back.
func (s *Screen) resolvedLine(a anchor) (line *Line, ok bool) {
	if a.line != nil {
		return a.line, true
	}
	if a.y == selectionTop {
		return nil, false
	}
	if a.y < 0 || int(a.y) >= len(s.cur.lines) {
		return nil, false
	}
	return s.cur.lines[a.y], true
}

// anchorOrder reports whether a comes before b in document order: the
// scroll-back ring (oldest first) followed by the live grid top-to-bottom,
// then by column within the same line. A scroll-back anchor is ranked by
// a linear scan over every retained scroll-back line, so the cost grows
// with the scroll-back length, not with the number of selected lines.
func (s *Screen) anchorOrder(a, b anchor) (first, second anchor, swapped bool) {
	rank := func(x anchor) (epoch, row int) {
		if x.y == selectionTop {
			return -1, 0
		}
		if x.line != nil {
			for i := 0; i < s.sb.Len(); i++ {
				if s.sb.At(i) == x.line {
					return 0, i
				}
			}
			return -1, 0
		}
		return 1, int(x.y)
	}
	ea, ra := rank(a)
	eb, rb := rank(b)
	if ea < eb || (ea == eb && (ra < rb || (ra == rb && a.x <= b.x))) {
		return a, b, false
	}
	return b, a, true
}

// SelectionCopy renders the active selection as plain text, following
// original_source/src/tsm/tsm-selection.c's line-ending rule: the first
// line runs from the start column to its "real" (last non-blank + 1)
// length, interior lines are cut at their real length, the last line runs
// from column 0 through the end column, a single-line selection is the
// inclusive cell range, and there is no trailing newline.
func (s *Screen) SelectionCopy() (string, error) {
	if !s.selActive {
		return "", newErr("selection_copy", CodeNoSelection, "no active selection")
	}
	start, end, _ := s.anchorOrder(s.selStart, s.selEnd)

	startLine, startOK := s.resolvedLine(start)
	endLine, endOK := s.resolvedLine(end)
	if !startOK && !endOK {
		return "", nil
	}

	lines := s.selectionSpan(start, end)
	if len(lines) == 0 {
		return "", nil
	}

	var b strings.Builder
	for i, l := range lines {
		lo, hi := 0, int(s.cols)
		switch {
		case len(lines) == 1:
			lo, hi = int(start.x), int(end.x)+1
		case i == 0:
			lo = int(start.x)
			hi = l.lastNonBlank(s.reg)
			if lo > hi {
				hi = lo
			}
		case i == len(lines)-1:
			lo, hi = 0, int(end.x)+1
		default:
			lo, hi = 0, l.lastNonBlank(s.reg)
		}
		b.WriteString(s.renderRange(l, lo, hi))
		if i != len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	_ = startLine
	_ = endLine
	return b.String(), nil
}

// selectionSpan returns every *Line between start and end inclusive, in
// document order, spanning the scroll-back/live-grid boundary.
func (s *Screen) selectionSpan(start, end anchor) []*Line {
	var out []*Line
	collecting := false
	appendIf := func(l *Line, isStart, isEnd bool) bool {
		if isStart {
			collecting = true
		}
		if collecting && l != nil {
			out = append(out, l)
		}
		if isEnd {
			return true
		}
		return false
	}

	if start.line == nil && start.y == selectionTop {
		collecting = true
	}

	for i := 0; i < s.sb.Len(); i++ {
		l := s.sb.At(i)
		isStart := start.line == l
		isEnd := end.line == l
		if appendIf(l, isStart, isEnd) {
			return out
		}
	}
	for y := 0; y < len(s.cur.lines); y++ {
		l := s.cur.lines[y]
		isStart := start.line == nil && start.y == int32(y)
		isEnd := end.line == nil && end.y == int32(y)
		if appendIf(l, isStart, isEnd) {
			return out
		}
	}
	return out
}

// renderRange returns the rune text of cells [lo, hi) of l, skipping
// wide-glyph continuation placeholders.
func (s *Screen) renderRange(l *Line, lo, hi int) string {
	if lo < 0 {
		lo = 0
	}
	if hi > len(l.cells) {
		hi = len(l.cells)
	}
	var b strings.Builder
	for x := lo; x < hi; x++ {
		c := l.cells[x]
		if c.IsWideSpacer() {
			continue
		}
		for _, r := range s.reg.Resolve(c.Symbol) {
			b.WriteRune(r)
		}
		if c.Symbol == 0 {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
