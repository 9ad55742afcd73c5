package tsm

// line returns the buf's row y, growing nothing (rows are pre-allocated at
// construction/resize time).
func (b *buffer) line(y int) *Line {
	if y < 0 || y >= len(b.lines) {
		return nil
	}
	return b.lines[y]
}

// stamp marks a cell as touched by age tick t.
func (s *Screen) stamp(l *Line, x int, t AgeTick) {
	if l == nil || x < 0 || x >= len(l.cells) {
		return
	}
	l.cells[x].Age = t
	if t > l.lineAge {
		l.lineAge = t
	}
}

// Write places one decoded code point at the cursor, per spec.md §4.3
// "Writing a symbol". attr carries the VTE's current SGR state; the cell
// width is computed here from cp with width(cp).
func (s *Screen) Write(cp rune, attr CellAttr) {
	w := width(cp)
	if w == 0 && cp != 0 {
		// Combining mark: append to the previous cell's symbol rather
		// than consuming a column, per spec.md §4.2's Append operation.
		s.combineAt(s.cur.cur.x-1, int(s.cur.cur.y), cp)
		return
	}

	if s.cur.cur.pendWrap && s.HasFlag(FlagAutoWrap) {
		s.doNewline(false)
		s.cur.cur.x = 0
		s.cur.cur.pendWrap = false
	}

	if w == 2 {
		if int(s.cur.cur.x)+2 > int(s.cols) {
			if s.HasFlag(FlagAutoWrap) {
				s.doNewline(false)
				s.cur.cur.x = 0
				s.cur.cur.pendWrap = false
			} else {
				return // clip: glyph does not fit and wrap is off
			}
		}
	}

	if s.HasFlag(FlagInsertMode) {
		s.shiftRightFrom(int(s.cur.cur.y), int(s.cur.cur.x), w)
	}

	t := s.tick()
	l := s.cur.line(int(s.cur.cur.y))
	x := int(s.cur.cur.x)
	id := s.reg.Intern(cp)
	cell := Cell{Symbol: id, Attr: attr, Age: t}
	if w == 2 {
		cell.Attr = cell.Attr.WithFlag(AttrWide)
	}
	*l.at(x, s.cur.defAttr) = cell
	s.stamp(l, x, t)
	if w == 2 {
		spacer := Cell{Symbol: 0, Attr: attr.WithFlag(AttrWideSpacer), Age: t}
		*l.at(x+1, s.cur.defAttr) = spacer
		s.stamp(l, x+1, t)
	}

	s.cur.cur.x += int32(w)
	if int(s.cur.cur.x) >= int(s.cols) {
		s.cur.cur.x = s.cols - 1
		s.cur.cur.pendWrap = true
	}
}

// combineAt appends a combining mark onto the symbol at (x, y), per
// spec.md §4.2's Append operation. A combining mark at the very start of
// a line (no preceding cell) is dropped.
func (s *Screen) combineAt(x, y int, mark rune) {
	if x < 0 || y < 0 || y >= len(s.cur.lines) {
		return
	}
	l := s.cur.lines[y]
	if x >= len(l.cells) {
		return
	}
	t := s.tick()
	l.cells[x].Symbol = s.reg.Append(l.cells[x].Symbol, mark)
	s.stamp(l, x, t)
}

// shiftRightFrom implements insert mode (IRM): the tail of the line from
// x rightward shifts right by w columns, discarding what falls off the
// right edge. Per spec.md §9's open question, a dangling wide-glyph
// spacer pushed to the edge is replaced with a blank rather than left
// half-written.
func (s *Screen) shiftRightFrom(y, x, w int) {
	l := s.cur.line(y)
	if l == nil {
		return
	}
	t := s.tick()
	l.ensureWidth(int(s.cols), s.cur.defAttr)
	for c := int(s.cols) - 1; c >= x+w; c-- {
		l.cells[c] = l.cells[c-w]
		s.stamp(l, c, t)
	}
	for c := x; c < x+w && c < int(s.cols); c++ {
		l.cells[c] = blankCell(s.cur.defAttr)
		s.stamp(l, c, t)
	}
	if int(s.cols) > 0 && l.cells[int(s.cols)-1].IsWideSpacer() && !l.cells[int(s.cols)-2].IsWide() {
		l.cells[int(s.cols)-1] = blankCell(s.cur.defAttr)
	}
}

// doNewline advances the cursor to the next line, scrolling the margin
// region if the cursor sits on the bottom margin. If crlf is true the
// column also resets to 0 (CR+LF semantics), matching
// LINE_FEED_NEW_LINE_MODE.
func (s *Screen) doNewline(crlf bool) {
	if int(s.cur.cur.y) == int(s.cur.bottom) {
		s.ScrollUp(1)
	} else if int(s.cur.cur.y) < len(s.cur.lines)-1 {
		s.cur.cur.y++
	}
	if crlf {
		s.cur.cur.x = 0
	}
	s.cur.cur.pendWrap = false
}

// Newline performs LF/VT/FF per spec.md §4.4's C0 execution: a bare
// linefeed, or CR+LF when crlf (LINE_FEED_NEW_LINE_MODE) is set.
func (s *Screen) Newline(crlf bool) { s.doNewline(crlf) }

// CarriageReturn moves the cursor to column 0.
func (s *Screen) CarriageReturn() {
	s.cur.cur.x = 0
	s.cur.cur.pendWrap = false
}

// Backspace moves the cursor left one column, clamped at 0.
func (s *Screen) Backspace() {
	if s.cur.cur.x > 0 {
		s.cur.cur.x--
	}
	s.cur.cur.pendWrap = false
}

func (s *Screen) clampCursor() {
	if s.cur.cur.x < 0 {
		s.cur.cur.x = 0
	}
	if int(s.cur.cur.x) >= int(s.cols) {
		s.cur.cur.x = s.cols - 1
	}
	if s.cur.cur.y < 0 {
		s.cur.cur.y = 0
	}
	if int(s.cur.cur.y) >= int(s.rows) {
		s.cur.cur.y = s.rows - 1
	}
}

// originTop returns the topmost row a cursor move may target: the margin
// top when DECOM (origin mode) is set, else row 0.
func (s *Screen) originTop() int32 {
	if s.HasFlag(FlagRelOrigin) {
		return s.cur.top
	}
	return 0
}

func (s *Screen) originBottom() int32 {
	if s.HasFlag(FlagRelOrigin) {
		return s.cur.bottom
	}
	return s.rows - 1
}

// MoveTo sets the cursor to an absolute position, per spec.md §4.3 "move
// cursor (absolute and relative; origin mode applies)".
func (s *Screen) MoveTo(x, y int) {
	top, bottom := s.originTop(), s.originBottom()
	yy := int32(y) + top
	if yy < top {
		yy = top
	}
	if yy > bottom {
		yy = bottom
	}
	s.cur.cur.y = yy
	s.cur.cur.x = int32(x)
	s.clampCursor()
	s.cur.cur.pendWrap = false
}

// MoveUp moves the cursor up n rows, stopping at the margin top (or
// scrolling down if scroll is true and the cursor is already there).
func (s *Screen) MoveUp(n int, scroll bool) {
	for i := 0; i < n; i++ {
		if s.cur.cur.y > s.cur.top {
			s.cur.cur.y--
		} else if scroll {
			s.ScrollDown(1)
		} else {
			break
		}
	}
	s.cur.cur.pendWrap = false
}

// MoveDown moves the cursor down n rows, scrolling at the margin bottom
// if scroll is true (LF and IND go through Newline instead).
func (s *Screen) MoveDown(n int, scroll bool) {
	for i := 0; i < n; i++ {
		if s.cur.cur.y < s.cur.bottom {
			s.cur.cur.y++
		} else if scroll {
			s.ScrollUp(1)
		} else {
			break
		}
	}
	s.cur.cur.pendWrap = false
}

// MoveLeft moves the cursor left n columns, clamped at 0.
func (s *Screen) MoveLeft(n int) {
	s.cur.cur.x -= int32(n)
	if s.cur.cur.x < 0 {
		s.cur.cur.x = 0
	}
	s.cur.cur.pendWrap = false
}

// MoveRight moves the cursor right n columns, clamped at size_x-1.
func (s *Screen) MoveRight(n int) {
	s.cur.cur.x += int32(n)
	if s.cur.cur.x >= s.cols {
		s.cur.cur.x = s.cols - 1
	}
	s.cur.cur.pendWrap = false
}

// MoveLineHome moves the cursor to column 0 of the current line.
func (s *Screen) MoveLineHome() { s.cur.cur.x = 0; s.cur.cur.pendWrap = false }

// MoveLineEnd moves the cursor to the last column of the current line.
func (s *Screen) MoveLineEnd() { s.cur.cur.x = s.cols - 1; s.cur.cur.pendWrap = false }

// TabRight moves the cursor to the n'th next tab stop, clamping to
// size_x-1 per spec.md §4.3.
func (s *Screen) TabRight(n int) {
	x := int(s.cur.cur.x)
	for i := 0; i < n; i++ {
		next := -1
		for c := x + 1; c < int(s.cols); c++ {
			if s.tabs[c] {
				next = c
				break
			}
		}
		if next < 0 {
			x = int(s.cols) - 1
			break
		}
		x = next
	}
	s.cur.cur.x = int32(x)
	s.cur.cur.pendWrap = false
}

// TabLeft moves the cursor to the n'th previous tab stop, clamping to 0.
func (s *Screen) TabLeft(n int) {
	x := int(s.cur.cur.x)
	for i := 0; i < n; i++ {
		prev := -1
		for c := x - 1; c >= 0; c-- {
			if s.tabs[c] {
				prev = c
				break
			}
		}
		if prev < 0 {
			x = 0
			break
		}
		x = prev
	}
	s.cur.cur.x = int32(x)
	s.cur.cur.pendWrap = false
}

// SetTabStop sets a tab stop at the cursor's current column (HTS).
func (s *Screen) SetTabStop() {
	if int(s.cur.cur.x) < len(s.tabs) {
		s.tabs[s.cur.cur.x] = true
	}
}

// ClearTabStop clears the tab stop at the cursor's column (mode 0) or all
// tab stops (mode 3), matching TBC's parameter values.
func (s *Screen) ClearTabStop(mode int) {
	switch mode {
	case 3:
		for i := range s.tabs {
			s.tabs[i] = false
		}
	default:
		if int(s.cur.cur.x) < len(s.tabs) {
			s.tabs[s.cur.cur.x] = false
		}
	}
}

// SetScrollRegion sets the scroll margins (DECSTBM), 0-based inclusive,
// clamped to the screen bounds per spec.md §3's invariant
// `margin_top < margin_bottom <= size_y`.
func (s *Screen) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= int(s.rows) {
		bottom = int(s.rows) - 1
	}
	if top >= bottom {
		top, bottom = 0, int(s.rows)-1
	}
	s.cur.top, s.cur.bottom = int32(top), int32(bottom)
	s.MoveTo(0, 0)
}

// ScrollUp scrolls the region [margin_top, margin_bottom] up by n lines,
// per spec.md §4.3's "Scroll-back policy": on the main buffer, with the
// region covering row 0 and ALTERNATE not set, evicted lines join
// scroll-back; on the alternate buffer they are discarded.
func (s *Screen) ScrollUp(n int) {
	toScrollback := s.cur == s.main && s.cur.top == 0 && !s.HasFlag(FlagAlternate)
	s.scrollUpRegion(int(s.cur.top), int(s.cur.bottom), n, toScrollback)
}

// scrollUpRegion is the shared implementation behind ScrollUp and DL:
// it always shifts [top,bottom] up by n within the region, and only joins
// evicted lines to scroll-back when toScrollback is true (DL eviction is
// never scroll-backed, regardless of margin position).
func (s *Screen) scrollUpRegion(top, bottom, n int, toScrollback bool) {
	if n <= 0 {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	t := s.tick()
	for i := 0; i < n; i++ {
		evicted := s.cur.lines[top]
		if toScrollback {
			freed := s.sb.Push(evicted)
			s.decrementAnchors(evicted)
			if freed != nil {
				s.retargetAnchorsOnEvict(freed)
			}
		}
		copy(s.cur.lines[top:bottom], s.cur.lines[top+1:bottom+1])
		s.cur.lines[bottom] = newLine(int(s.cols), s.cur.defAttr)
		for x := range s.cur.lines[bottom].cells {
			s.stamp(s.cur.lines[bottom], x, t)
		}
	}
}

// ScrollDown scrolls the region down by n lines (SD), discarding lines
// that fall off the bottom and filling the top with blanks.
func (s *Screen) ScrollDown(n int) {
	s.scrollDownRegion(int(s.cur.top), int(s.cur.bottom), n)
}

func (s *Screen) scrollDownRegion(top, bottom, n int) {
	if n <= 0 {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	t := s.tick()
	for i := 0; i < n; i++ {
		copy(s.cur.lines[top+1:bottom+1], s.cur.lines[top:bottom])
		s.cur.lines[top] = newLine(int(s.cols), s.cur.defAttr)
		for x := range s.cur.lines[top].cells {
			s.stamp(s.cur.lines[top], x, t)
		}
	}
}

// InsertLines inserts n blank lines at the cursor row, within the margin
// region, shifting the remainder of the region down (IL). Lines pushed
// off the region bottom are discarded, never scroll-backed.
func (s *Screen) InsertLines(n int) {
	y := int(s.cur.cur.y)
	if y < int(s.cur.top) || y > int(s.cur.bottom) {
		return
	}
	s.scrollDownRegion(y, int(s.cur.bottom), n)
}

// DeleteLines removes n lines at the cursor row, within the margin
// region, shifting the remainder of the region up (DL). Never
// scroll-backed, even on the main buffer.
func (s *Screen) DeleteLines(n int) {
	y := int(s.cur.cur.y)
	if y < int(s.cur.top) || y > int(s.cur.bottom) {
		return
	}
	s.scrollUpRegion(y, int(s.cur.bottom), n, false)
}

// InsertChars inserts n blank cells at the cursor column, shifting the
// remainder of the line right; cells pushed past size_x are discarded
// (ICH).
func (s *Screen) InsertChars(n int) {
	s.shiftRightFrom(int(s.cur.cur.y), int(s.cur.cur.x), n)
}

// DeleteChars removes n cells at the cursor column, shifting the
// remainder of the line left and filling the vacated tail with blanks
// (DCH).
func (s *Screen) DeleteChars(n int) {
	y, x := int(s.cur.cur.y), int(s.cur.cur.x)
	l := s.cur.line(y)
	if l == nil {
		return
	}
	t := s.tick()
	l.ensureWidth(int(s.cols), s.cur.defAttr)
	for c := x; c < int(s.cols)-n; c++ {
		l.cells[c] = l.cells[c+n]
		s.stamp(l, c, t)
	}
	for c := int(s.cols) - n; c < int(s.cols); c++ {
		if c < 0 {
			continue
		}
		l.cells[c] = blankCell(s.cur.defAttr)
		s.stamp(l, c, t)
	}
}

// EraseRange erases cells [fromX,fromY]..[toX,toY] inclusive in row-major
// order within the visible grid, honoring the protect flag, per spec.md
// §4.3's erase variants.
func (s *Screen) EraseRange(fromX, fromY, toX, toY int, protect bool) {
	t := s.tick()
	for y := fromY; y <= toY && y < len(s.cur.lines); y++ {
		l := s.cur.lines[y]
		lo, hi := 0, int(s.cols)-1
		if y == fromY {
			lo = fromX
		}
		if y == toY {
			hi = toX
		}
		l.ensureWidth(int(s.cols), s.cur.defAttr)
		for x := lo; x <= hi && x < len(l.cells); x++ {
			if protect && l.cells[x].Attr.HasFlag(AttrProtect) {
				continue
			}
			l.cells[x] = blankCell(s.cur.defAttr)
			s.stamp(l, x, t)
		}
	}
}

// EraseCursorToEnd erases from the cursor to the end of the line (EL 0).
func (s *Screen) EraseCursorToEnd(protect bool) {
	y, x := int(s.cur.cur.y), int(s.cur.cur.x)
	s.EraseRange(x, y, int(s.cols)-1, y, protect)
}

// EraseHomeToCursor erases from the start of the line to the cursor
// inclusive (EL 1).
func (s *Screen) EraseHomeToCursor(protect bool) {
	y, x := int(s.cur.cur.y), int(s.cur.cur.x)
	s.EraseRange(0, y, x, y, protect)
}

// EraseCurrentLine erases the entire current line (EL 2).
func (s *Screen) EraseCurrentLine(protect bool) {
	y := int(s.cur.cur.y)
	s.EraseRange(0, y, int(s.cols)-1, y, protect)
}

// EraseScreenToCursor erases from (0,0) through the cursor inclusive
// (ED 1).
func (s *Screen) EraseScreenToCursor(protect bool) {
	y, x := int(s.cur.cur.y), int(s.cur.cur.x)
	s.EraseRange(0, 0, x, y, protect)
}

// EraseCursorToScreen erases from the cursor through the end of the
// screen (ED 0).
func (s *Screen) EraseCursorToScreen(protect bool) {
	y, x := int(s.cur.cur.y), int(s.cur.cur.x)
	s.EraseRange(x, y, int(s.cols)-1, int(s.rows)-1, protect)
}

// EraseScreen erases the entire visible grid (ED 2).
func (s *Screen) EraseScreen(protect bool) {
	s.EraseRange(0, 0, int(s.cols)-1, int(s.rows)-1, protect)
}

// SetAlternate switches between the main and alternate buffers. Entering
// alternate clears it unless noClear (TITE_INHIBIT) is set; the main
// buffer's contents and cursor are always preserved underneath, per
// spec.md §4.3's "Alternate screen".
func (s *Screen) SetAlternate(on, noClear bool) {
	if on == (s.cur == s.alt) {
		return
	}
	if on {
		if !noClear {
			saved := s.cur
			s.cur = s.alt
			s.EraseScreen(false)
			s.cur = saved
		}
		s.cur = s.alt
		s.setFlag(FlagAlternate)
	} else {
		s.cur = s.main
		s.clearFlag(FlagAlternate)
	}
}

// SaveCursor snapshots the cursor and default attribute for DECSC.
func (s *Screen) SaveCursor() {
	s.cur.savedCur = s.cur.cur
	s.cur.savedAttr = s.cur.defAttr
}

// RestoreCursor restores the snapshot saved by SaveCursor, for DECRC.
func (s *Screen) RestoreCursor() {
	s.cur.cur = s.cur.savedCur
	s.cur.defAttr = s.cur.savedAttr
	s.clampCursor()
}

// Reset restores the screen to its power-on state: blank grids, default
// attribute, full-width margins, default tab stops, no selection,
// main buffer active. Matches tsm_screen_reset's idempotence (§8: applying
// it twice equals applying it once).
func (s *Screen) Reset() {
	s.main = newBuffer(int(s.cols), int(s.rows))
	s.alt = newBuffer(int(s.cols), int(s.rows))
	s.cur = s.main
	s.tabs = defaultTabs(int(s.cols))
	s.flags = FlagAutoWrap
	s.SelectionReset()
	s.sbPos = 0
}

// SbUp scrolls the scroll-back view up (further into history) by n lines,
// clamped to the available scroll-back.
func (s *Screen) SbUp(n int) {
	s.sbPos += int32(n)
	if max := int32(s.sb.Len()); s.sbPos > max {
		s.sbPos = max
	}
}

// SbDown scrolls the scroll-back view down (toward the present) by n
// lines, clamped at 0 (live view).
func (s *Screen) SbDown(n int) {
	s.sbPos -= int32(n)
	if s.sbPos < 0 {
		s.sbPos = 0
	}
}

// SbPageUp scrolls a full screen's worth of lines into history.
func (s *Screen) SbPageUp() { s.SbUp(int(s.rows)) }

// SbPageDown scrolls a full screen's worth of lines back toward the
// present.
func (s *Screen) SbPageDown() { s.SbDown(int(s.rows)) }

// SbReset returns the scroll-back view to the live bottom.
func (s *Screen) SbReset() { s.sbPos = 0 }

// IsScrolledBack reports whether the view is currently showing
// scroll-back history rather than the live grid.
func (s *Screen) IsScrolledBack() bool { return s.sbPos > 0 }
