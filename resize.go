package tsm

// Resize changes the grid dimensions to (cols, rows), per spec.md §4.3's
// "Resize". Column growth/shrink changes only how many columns of each
// line are visible — no line's backing storage is ever truncated, so a
// later widen reveals previously hidden content. Row growth pulls lines
// back from scroll-back (main buffer only) before allocating blanks; row
// shrink evicts lines below the cursor first, then above it if that is
// not enough, moving the cursor up to compensate. Applying Resize twice
// with the same (cols, rows) is a no-op the second time, per spec.md §8's
// resize-stability property.
func (s *Screen) Resize(cols, rows int) {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	if int(s.cols) == cols && int(s.rows) == rows {
		return
	}

	oldCols := int(s.cols)
	s.cols = int32(cols)
	s.resizeTabs(oldCols, cols)

	s.resizeBufferRows(s.main, rows, true)
	s.resizeBufferRows(s.alt, rows, false)
	s.rows = int32(rows)

	for _, b := range []*buffer{s.main, s.alt} {
		b.top = 0
		b.bottom = int32(rows - 1)
		b.cur.x, b.cur.y = clampAxis(b.cur.x, cols), clampAxis(b.cur.y, rows)
		b.cur.pendWrap = false
	}
}

func clampAxis(v int32, limit int) int32 {
	if v < 0 {
		return 0
	}
	if int(v) >= limit {
		return int32(limit - 1)
	}
	return v
}

func (s *Screen) resizeTabs(oldCols, cols int) {
	t := make([]bool, cols)
	n := oldCols
	if cols < n {
		n = cols
	}
	copy(t, s.tabs[:n])
	for i := oldCols; i < cols; i += 8 {
		t[i] = true
	}
	s.tabs = t
}

// resizeBufferRows grows or shrinks b's row count to rows, optionally
// (main buffer only) pulling from / pushing to scroll-back.
func (s *Screen) resizeBufferRows(b *buffer, rows int, useScrollback bool) {
	cur := len(b.lines)
	switch {
	case rows > cur:
		add := rows - cur
		var promoted []*Line
		if useScrollback {
			for i := 0; i < add && s.sb.Len() > 0; i++ {
				l := s.sb.popNewest()
				l.ensureWidth(int(s.cols), b.defAttr)
				promoted = append(promoted, l)
			}
		}
		// promoted lines came off the newest end of scroll-back, so they
		// belong directly above the old top row, nearest-first.
		newLines := make([]*Line, 0, rows)
		for i := len(promoted) - 1; i >= 0; i-- {
			newLines = append(newLines, promoted[i])
		}
		for len(newLines) < add {
			newLines = append(newLines, newLine(int(s.cols), b.defAttr))
		}
		newLines = append(newLines, b.lines...)
		b.lines = newLines
		b.cur.y += int32(add)
		b.savedCur.y += int32(add)

	case rows < cur:
		remove := cur - rows
		// Evict from the bottom first (below the cursor), then from the
		// top if that is not enough, matching spec.md §4.3's rule that
		// the cursor moves upward only when top-eviction is required.
		belowCursor := cur - 1 - int(b.cur.y)
		fromBottom := remove
		if fromBottom > belowCursor {
			fromBottom = belowCursor
		}
		if fromBottom < 0 {
			fromBottom = 0
		}
		for i := 0; i < fromBottom; i++ {
			b.lines = b.lines[:len(b.lines)-1]
		}
		remaining := remove - fromBottom
		for i := 0; i < remaining; i++ {
			evicted := b.lines[0]
			b.lines = b.lines[1:]
			if useScrollback {
				freed := s.sb.Push(evicted)
				s.decrementAnchors(evicted)
				if freed != nil {
					s.retargetAnchorsOnEvict(freed)
				}
			}
			if b.cur.y > 0 {
				b.cur.y--
			}
			if b.savedCur.y > 0 {
				b.savedCur.y--
			}
		}
	}
}
