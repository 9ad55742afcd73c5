package tsm

import "math"

// AgeTick is a monotonic mutation counter. Every Screen-mutating call
// stamps the cells (and lines) it touches with the counter's new value;
// Draw reports the counter sampled before the pass so a renderer can skip
// any cell whose Age is older than the age it last drew, per spec.md
// §4.3's age model.
type AgeTick uint32

// ageResetThreshold is where the counter wraps back to 1, clearing every
// stamp in the grid and scroll-back so the next Draw is forced to treat
// everything as new (spec.md §9, "age wraparound").
const ageResetThreshold = AgeTick(math.MaxUint32 / 2)

// Flags is a bitmask of screen-wide modes, bit-exact with the TSM_SCREEN_*
// constants in the original libtsm implementation that spec.md is modeled
// on.
type Flags uint32

const (
	FlagInsertMode Flags = 1 << iota
	FlagAutoWrap
	FlagRelOrigin
	FlagInverse
	FlagHideCursor
	FlagFixedPos
	FlagAlternate
)

// cursor is the active write position plus the pending-wrap flag that
// defers an auto-wrap until the next printable character (matching
// xterm/libtsm's "deferred wrap" behavior rather than wrapping eagerly on
// the last column).
type cursor struct {
	x, y      int32
	pendWrap  bool
}

// Screen is the virtual grid: the primary and alternate buffers, the
// scroll-back arena, cursor/margins/tab-stops, and the active selection.
// It implements spec.md §4.3 in full.
type Screen struct {
	refs int32

	reg *Registry
	log LogFunc

	cols, rows int32

	main *buffer
	alt  *buffer
	cur  *buffer // points at main or alt

	sb       *scrollback
	sbPos    int32 // lines scrolled back from live bottom; 0 == viewing main grid
	selActive bool
	selStart  anchor
	selEnd    anchor

	flags Flags

	ageCounter AgeTick

	tabs []bool // true where a tab stop is set, length == cols
}

// buffer holds one screen's worth of lines plus its own cursor, margins
// and default attribute — the primary and alternate screens each get one,
// matching the teacher's dual-Buffer design in spirit.
type buffer struct {
	lines []*Line
	cur   cursor
	top, bottom int32 // scroll region, 0-based inclusive
	defAttr     CellAttr
	savedCur    cursor
	savedAttr   CellAttr
}

// ScreenOption configures a Screen at construction time.
type ScreenOption func(*Screen)

// WithSize sets the initial grid dimensions (default 80x24).
func WithSize(cols, rows int) ScreenOption {
	return func(s *Screen) { s.cols, s.rows = int32(cols), int32(rows) }
}

// WithLog installs a logging callback.
func WithLog(f LogFunc) ScreenOption {
	return func(s *Screen) { s.log = f }
}

// WithRegistry shares a Registry across multiple Screens, instead of each
// allocating its own.
func WithRegistry(r *Registry) ScreenOption {
	return func(s *Screen) { s.reg = r }
}

// NewScreen constructs a Screen at its default 80x24 size, or as
// configured by opts.
func NewScreen(opts ...ScreenOption) *Screen {
	s := &Screen{cols: 80, rows: 24, refs: 1, sb: newScrollback()}
	for _, opt := range opts {
		opt(s)
	}
	if s.reg == nil {
		s.reg = NewRegistry()
	}
	s.main = newBuffer(int(s.cols), int(s.rows))
	s.alt = newBuffer(int(s.cols), int(s.rows))
	s.cur = s.main
	s.tabs = defaultTabs(int(s.cols))
	s.flags = FlagAutoWrap
	return s
}

func newBuffer(cols, rows int) *buffer {
	b := &buffer{bottom: int32(rows - 1), defAttr: DefaultAttr}
	b.lines = make([]*Line, rows)
	for i := range b.lines {
		b.lines[i] = newLine(cols, b.defAttr)
	}
	return b
}

func defaultTabs(cols int) []bool {
	t := make([]bool, cols)
	for i := 0; i < cols; i += 8 {
		t[i] = true
	}
	return t
}

// Ref increments the reference count and returns s, matching the
// reference-counted lifetime model of tsm_screen_ref/tsm_screen_unref.
func (s *Screen) Ref() *Screen { s.refs++; return s }

// Unref decrements the reference count; callers must stop using s once
// the count reaches zero.
func (s *Screen) Unref() { s.refs-- }

// Cols returns the current column count.
func (s *Screen) Cols() int { return int(s.cols) }

// Rows returns the current row count.
func (s *Screen) Rows() int { return int(s.rows) }

// Registry returns the symbol registry backing this screen's cells.
func (s *Screen) Registry() *Registry { return s.reg }

// HasFlag reports whether every bit of f is set in the screen's mode
// flags.
func (s *Screen) HasFlag(f Flags) bool { return s.flags&f == f }

func (s *Screen) setFlag(f Flags)   { s.flags |= f }
func (s *Screen) clearFlag(f Flags) { s.flags &^= f }

// tick advances the age counter, resetting every stamp in the grid and
// scroll-back if it would otherwise wrap.
func (s *Screen) tick() AgeTick {
	s.ageCounter++
	if s.ageCounter >= ageResetThreshold {
		s.resetAges()
		s.ageCounter = 1
	}
	return s.ageCounter
}

func (s *Screen) resetAges() {
	for _, b := range []*buffer{s.main, s.alt} {
		for _, l := range b.lines {
			for i := range l.cells {
				l.cells[i].Age = 0
			}
			l.lineAge = 0
		}
	}
	for i := 0; i < s.sb.Len(); i++ {
		if l := s.sb.At(i); l != nil {
			for j := range l.cells {
				l.cells[j].Age = 0
			}
			l.lineAge = 0
		}
	}
}

// CursorPosition returns the cursor's current 0-based column and row.
func (s *Screen) CursorPosition() (col, row int) {
	return int(s.cur.cur.x), int(s.cur.cur.y)
}

// IsAlternateScreen reports whether the alternate buffer is active.
func (s *Screen) IsAlternateScreen() bool { return s.cur == s.alt }

// Margins returns the current scroll region as 0-based inclusive rows.
func (s *Screen) Margins() (top, bottom int) {
	return int(s.cur.top), int(s.cur.bottom)
}

// DefAttr returns the attribute used to fill newly exposed cells.
func (s *Screen) DefAttr() CellAttr { return s.cur.defAttr }

// SetDefAttr sets the attribute used to fill newly exposed cells on this
// screen's currently active buffer.
func (s *Screen) SetDefAttr(attr CellAttr) { s.cur.defAttr = attr }

// ScrollbackLimit returns the configured scroll-back capacity, 0 meaning
// unbounded.
func (s *Screen) ScrollbackLimit() int { return s.sb.max }

// SetScrollbackLimit bounds the scroll-back ring, matching spec.md's
// DESIGN.md decision that 0 (the default) means unbounded.
func (s *Screen) SetScrollbackLimit(n int) {
	evicted := s.sb.SetMax(n)
	for _, l := range evicted {
		s.retargetAnchorsOnEvict(l)
	}
}

func (s *Screen) logf(sev Severity, format string, args ...any) {
	s.log.log(sev, "screen", format, args...)
}
