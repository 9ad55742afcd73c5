package tsm

// DrawFunc is invoked once per visible cell during a Draw pass, in
// row-major order. runes is the resolved code-point sequence for symbol
// (a single space for a blank cell); width is 1 or 2. Returning true stops the
// pass early, matching spec.md §6's "non-zero return terminates the draw
// pass early".
type DrawFunc func(symbol SymbolID, runes []rune, width, col, row int, attr CellAttr, age AgeTick) bool

// Draw visits every visible cell in row-major order and invokes cb,
// skipping the zero-width continuation placeholder of a preceding wide
// glyph. It returns the age counter sampled at the *start* of the pass;
// a caller stores this value and passes it back (conceptually, by
// comparing against a cell's Age) on the next pass to skip cells that
// have not changed, per spec.md §4.3's age model.
func (s *Screen) Draw(cb DrawFunc) AgeTick {
	startAge := s.ageCounter
	rows := s.visibleRows()

	cursorCol, cursorRow := -1, -1
	if !s.HasFlag(FlagHideCursor) && !s.IsScrolledBack() {
		cursorCol, cursorRow = int(s.cur.cur.x), int(s.cur.cur.y)
	}

	for y, l := range rows {
		cells := l.visible(int(s.cols), s.cur.defAttr)
		for x, c := range cells {
			if c.IsWideSpacer() {
				continue
			}
			attr := c.Attr
			if x == cursorCol && y == cursorRow {
				attr = attr.WithFlag(AttrInverse)
			}
			w := 1
			if c.IsWide() {
				w = 2
			}
			runes := s.reg.Resolve(c.Symbol)
			if cb(c.Symbol, runes, w, x, y, attr, c.Age) {
				return startAge
			}
		}
	}
	return startAge
}

// visibleRows returns the rows of lines Draw should iterate: the live
// grid normally, or a window into scroll-back followed by the live grid's
// top rows when the view has been scrolled back via SbUp.
func (s *Screen) visibleRows() []*Line {
	if s.sbPos == 0 || s.cur != s.main {
		return s.cur.lines
	}
	n := int(s.rows)
	out := make([]*Line, 0, n)
	sbLen := s.sb.Len()
	start := sbLen - int(s.sbPos)
	for i := start; i < sbLen && len(out) < n; i++ {
		if l := s.sb.At(i); l != nil {
			out = append(out, l)
		}
	}
	for i := 0; len(out) < n && i < len(s.cur.lines); i++ {
		out = append(out, s.cur.lines[i])
	}
	return out
}
