package tsm

import "testing"

func TestResizeGrowColumnsRevealsHiddenContent(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	writeString(s, "0123456789")
	s.Resize(5, 3)
	if s.Cols() != 5 {
		t.Fatalf("Cols() = %d, want 5", s.Cols())
	}
	s.Resize(10, 3)
	got := cellSymbols(s, 0)
	if string(got) != "0123456789" {
		t.Errorf("widening back should reveal the original row, got %q", string(got))
	}
}

func TestResizeGrowRowsPullsFromScrollback(t *testing.T) {
	s := NewScreen(WithSize(5, 2))
	writeString(s, "one")
	s.Newline(true)
	writeString(s, "two")
	s.Newline(true)
	writeString(s, "three")
	if s.sb.Len() == 0 {
		t.Fatal("setup: expected scroll-back to hold at least one evicted line")
	}
	before := s.sb.Len()
	s.Resize(5, 3)
	if s.sb.Len() >= before {
		t.Errorf("growing rows should pull lines back from scroll-back: before=%d, after=%d", before, s.sb.Len())
	}
}

func TestResizeShrinkRowsEvictsBelowCursorFirst(t *testing.T) {
	s := NewScreen(WithSize(5, 5))
	s.MoveTo(0, 0)
	s.Resize(5, 2)
	if s.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", s.Rows())
	}
	col, row := s.CursorPosition()
	if col != 0 || row != 0 {
		t.Errorf("cursor at the top should stay put when evicting from below: (%d,%d), want (0,0)", col, row)
	}
}

func TestResizeIsStableOnRepeat(t *testing.T) {
	s := NewScreen(WithSize(10, 4))
	writeString(s, "hello")
	s.Resize(6, 3)
	first := cellSymbols(s, 0)
	s.Resize(6, 3)
	second := cellSymbols(s, 0)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeating an identical Resize changed row 0 at cell %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestResizeClampsZeroOrNegative(t *testing.T) {
	s := NewScreen(WithSize(10, 10))
	s.Resize(0, -5)
	if s.Cols() != 1 || s.Rows() != 1 {
		t.Errorf("Resize(0,-5) = %dx%d, want 1x1", s.Cols(), s.Rows())
	}
}
