package tsm

// Line is one row of cells. size is the logical width of the row, which
// may exceed the screen's current column count: spec.md §4.3's resize
// semantics require content from a wider screen to survive a shrink and
// reappear on a later widen, so a Line remembers more columns than are
// currently visible rather than truncating them.
type Line struct {
	cells []Cell
	size  int32

	// lineAge is the max of its cells' ages, satisfying the universal
	// invariant `cell.age <= line.age <= age_counter` from spec.md §3/§8.
	lineAge AgeTick

	// wrapped marks that this line's last column was filled by a write
	// that continued onto the next line without an explicit newline.
	// Write does not set it and SelectionCopy does not read it: copied
	// lines are always joined with a line break.
	wrapped bool

	// sbIndex is -1 for a line that has never entered scroll-back; Push
	// sets it to the slice slot the line was appended at and stamps
	// generation. Neither is updated on eviction or compaction, and
	// nothing reads them.
	sbIndex    int32
	generation uint32
}

func newLine(cols int, attr CellAttr) *Line {
	l := &Line{cells: make([]Cell, cols), size: int32(cols), sbIndex: -1}
	for i := range l.cells {
		l.cells[i] = blankCell(attr)
	}
	return l
}

func (l *Line) ensureWidth(cols int, attr CellAttr) {
	if int(l.size) >= cols {
		return
	}
	grown := make([]Cell, cols)
	copy(grown, l.cells)
	for i := len(l.cells); i < cols; i++ {
		grown[i] = blankCell(attr)
	}
	l.cells = grown
	l.size = int32(cols)
}

// at returns the cell at column x, growing the backing slice if needed.
func (l *Line) at(x int, attr CellAttr) *Cell {
	if x >= len(l.cells) {
		l.ensureWidth(x+1, attr)
	}
	return &l.cells[x]
}

// visible returns the first `cols` cells of the line for drawing/resize
// purposes, padding with blanks if the line is currently narrower.
func (l *Line) visible(cols int, attr CellAttr) []Cell {
	if cols <= len(l.cells) {
		return l.cells[:cols]
	}
	out := make([]Cell, cols)
	copy(out, l.cells)
	for i := len(l.cells); i < cols; i++ {
		out[i] = blankCell(attr)
	}
	return out
}

// lastNonBlank returns the column index one past the last non-space
// symbol in the line, used by selection text extraction to trim trailing
// padding (mirrors original_source's "real length" rule for selection
// line endings).
func (l *Line) lastNonBlank(reg *Registry) int {
	for i := len(l.cells) - 1; i >= 0; i-- {
		if l.cells[i].Symbol != 0 && l.cells[i].Symbol != SymbolID(' ') {
			return i + 1
		}
	}
	return 0
}

// Age returns the line's own age stamp: the highest age of any cell
// touched since it was last reset to 0 by an age-wraparound reset.
func (l *Line) Age() AgeTick { return l.lineAge }

func (l *Line) clear(from, to int, attr CellAttr) {
	if to > len(l.cells) {
		l.ensureWidth(to, attr)
	}
	for i := from; i < to && i < len(l.cells); i++ {
		l.cells[i] = blankCell(attr)
	}
}
