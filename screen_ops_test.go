package tsm

import "testing"

func cellSymbols(s *Screen, row int) []rune {
	l := s.cur.line(row)
	out := make([]rune, 0, len(l.cells))
	for _, c := range l.cells {
		runes := s.reg.Resolve(c.Symbol)
		if len(runes) == 0 {
			out = append(out, ' ')
		} else {
			out = append(out, runes[0])
		}
	}
	return out
}

func writeString(s *Screen, str string) {
	for _, r := range str {
		s.Write(r, s.DefAttr())
	}
}

func TestScreenWriteAdvancesCursor(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	writeString(s, "hi")
	col, row := s.CursorPosition()
	if col != 2 || row != 0 {
		t.Fatalf("cursor = (%d,%d), want (2,0)", col, row)
	}
	got := cellSymbols(s, 0)
	if got[0] != 'h' || got[1] != 'i' {
		t.Errorf("row 0 = %q, want starting with \"hi\"", string(got))
	}
}

func TestScreenWriteWrapsAtRightMargin(t *testing.T) {
	s := NewScreen(WithSize(4, 3))
	writeString(s, "abcd")
	col, row := s.CursorPosition()
	if col != 3 || row != 0 {
		t.Fatalf("after filling the line, cursor = (%d,%d), want (3,0) pending wrap", col, row)
	}
	if !s.cur.cur.pendWrap {
		t.Fatal("cursor should be pending wrap after exactly filling the line")
	}
	s.Write('e', s.DefAttr())
	col, row = s.CursorPosition()
	if row != 1 || col != 1 {
		t.Fatalf("after wrap-triggering write, cursor = (%d,%d), want (1,1)", col, row)
	}
	if got := cellSymbols(s, 1)[0]; got != 'e' {
		t.Errorf("wrapped char landed as %q, want 'e'", got)
	}
}

func TestScreenWriteCombiningMark(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	s.Write('e', s.DefAttr())
	s.Write(0x0301, s.DefAttr()) // combining acute accent, zero width
	col, _ := s.CursorPosition()
	if col != 1 {
		t.Fatalf("combining mark should not advance the cursor: col=%d, want 1", col)
	}
	l := s.cur.line(0)
	runes := s.reg.Resolve(l.cells[0].Symbol)
	if len(runes) != 2 || runes[0] != 'e' || runes[1] != 0x0301 {
		t.Errorf("cell 0 resolves to %v, want ['e', 0x0301]", runes)
	}
}

func TestScreenWriteWideGlyph(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	s.Write('中', s.DefAttr())
	l := s.cur.line(0)
	if !l.cells[0].IsWide() {
		t.Error("first cell of a wide glyph should carry AttrWide")
	}
	if !l.cells[1].IsWideSpacer() {
		t.Error("second cell of a wide glyph should be a spacer")
	}
	col, _ := s.CursorPosition()
	if col != 2 {
		t.Errorf("cursor after wide glyph = %d, want 2", col)
	}
}

func TestScreenNewlineScrollsAtBottomMargin(t *testing.T) {
	s := NewScreen(WithSize(5, 3))
	s.MoveTo(0, 2)
	writeString(s, "last")
	s.Newline(false)
	if got := cellSymbols(s, 1)[0]; got != 'l' {
		t.Errorf("after scrolling, row 1 should hold the old row 2's content, got %q", string(got))
	}
}

func TestScreenCarriageReturnAndBackspace(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	writeString(s, "abc")
	s.CarriageReturn()
	if col, _ := s.CursorPosition(); col != 0 {
		t.Fatalf("CarriageReturn: col=%d, want 0", col)
	}
	s.MoveTo(3, 0)
	s.Backspace()
	if col, _ := s.CursorPosition(); col != 2 {
		t.Errorf("Backspace: col=%d, want 2", col)
	}
}

func TestScreenMoveLeftRightClamped(t *testing.T) {
	s := NewScreen(WithSize(5, 3))
	s.MoveLeft(100)
	if col, _ := s.CursorPosition(); col != 0 {
		t.Errorf("MoveLeft clamp: col=%d, want 0", col)
	}
	s.MoveRight(100)
	if col, _ := s.CursorPosition(); col != 4 {
		t.Errorf("MoveRight clamp: col=%d, want 4", col)
	}
}

func TestScreenTabStops(t *testing.T) {
	s := NewScreen(WithSize(20, 3))
	s.TabRight(1)
	if col, _ := s.CursorPosition(); col != 8 {
		t.Fatalf("first default tab stop: col=%d, want 8", col)
	}
	s.TabRight(1)
	if col, _ := s.CursorPosition(); col != 16 {
		t.Fatalf("second default tab stop: col=%d, want 16", col)
	}
	s.TabLeft(1)
	if col, _ := s.CursorPosition(); col != 8 {
		t.Errorf("TabLeft back: col=%d, want 8", col)
	}
}

func TestScreenSetAndClearTabStop(t *testing.T) {
	s := NewScreen(WithSize(20, 3))
	s.MoveTo(5, 0)
	s.SetTabStop()
	s.MoveLineHome()
	s.TabRight(1)
	if col, _ := s.CursorPosition(); col != 5 {
		t.Fatalf("custom tab stop: col=%d, want 5", col)
	}
	s.ClearTabStop(3)
	s.MoveLineHome()
	s.TabRight(1)
	if col, _ := s.CursorPosition(); col != 19 {
		t.Errorf("after clearing all stops, tab should go to last column: col=%d, want 19", col)
	}
}

func TestScreenEraseCurrentLine(t *testing.T) {
	s := NewScreen(WithSize(5, 3))
	writeString(s, "abcde")
	s.EraseCurrentLine(false)
	got := cellSymbols(s, 0)
	for i, r := range got {
		if r != ' ' {
			t.Errorf("cell %d = %q after erase, want blank", i, r)
		}
	}
}

func TestScreenEraseScreen(t *testing.T) {
	s := NewScreen(WithSize(5, 3))
	writeString(s, "abcde")
	s.MoveTo(0, 1)
	writeString(s, "fghij")
	s.EraseScreen(false)
	for row := 0; row < 2; row++ {
		for i, r := range cellSymbols(s, row) {
			if r != ' ' {
				t.Errorf("row %d cell %d = %q, want blank after EraseScreen", row, i, r)
			}
		}
	}
}

func TestScreenInsertAndDeleteChars(t *testing.T) {
	s := NewScreen(WithSize(5, 3))
	writeString(s, "abcde")
	s.MoveTo(1, 0)
	s.InsertChars(1)
	got := cellSymbols(s, 0)
	want := []rune{'a', ' ', 'b', 'c', 'd'}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after InsertChars: row = %q, want %q", string(got), string(want))
		}
	}
	s.DeleteChars(1)
	got = cellSymbols(s, 0)
	want = []rune{'a', 'b', 'c', 'd', ' '}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("after DeleteChars: row = %q, want %q", string(got), string(want))
		}
	}
}

func TestScreenInsertAndDeleteLines(t *testing.T) {
	s := NewScreen(WithSize(5, 4))
	writeString(s, "one")
	s.MoveTo(0, 1)
	writeString(s, "two")
	s.MoveTo(0, 0)
	s.InsertLines(1)
	if got := cellSymbols(s, 0); got[0] != ' ' {
		t.Fatalf("after InsertLines at row 0, row 0 should be blank, got %q", string(got))
	}
	if got := cellSymbols(s, 1); got[0] != 'o' {
		t.Errorf("after InsertLines, old row 0 should have shifted to row 1, got %q", string(got))
	}
	s.DeleteLines(1)
	if got := cellSymbols(s, 0); got[0] != 'o' {
		t.Errorf("after DeleteLines, row 0 should be restored, got %q", string(got))
	}
}

func TestScreenSetAlternateClearsAndRestores(t *testing.T) {
	s := NewScreen(WithSize(5, 3))
	writeString(s, "main")
	s.SetAlternate(true, false)
	if !s.IsAlternateScreen() {
		t.Fatal("SetAlternate(true) did not switch to the alternate buffer")
	}
	got := cellSymbols(s, 0)
	for i, r := range got {
		if r != ' ' {
			t.Fatalf("alternate screen should start blank, cell %d = %q", i, r)
		}
	}
	writeString(s, "alt")
	s.SetAlternate(false, false)
	if s.IsAlternateScreen() {
		t.Fatal("SetAlternate(false) did not return to the main buffer")
	}
	got = cellSymbols(s, 0)
	if got[0] != 'm' {
		t.Errorf("main buffer content should survive the alternate-screen excursion, got %q", string(got))
	}
}

func TestScreenSaveRestoreCursor(t *testing.T) {
	s := NewScreen(WithSize(10, 5))
	s.MoveTo(3, 2)
	s.SaveCursor()
	s.MoveTo(0, 0)
	s.RestoreCursor()
	col, row := s.CursorPosition()
	if col != 3 || row != 2 {
		t.Errorf("RestoreCursor = (%d,%d), want (3,2)", col, row)
	}
}

func TestScreenResetIsIdempotent(t *testing.T) {
	s := NewScreen(WithSize(5, 3))
	writeString(s, "hi")
	s.Reset()
	first := cellSymbols(s, 0)
	s.Reset()
	second := cellSymbols(s, 0)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Reset is not idempotent at cell %d: %q vs %q", i, first[i], second[i])
		}
	}
	if !s.HasFlag(FlagAutoWrap) {
		t.Error("Reset should restore default auto-wrap")
	}
}

func TestScreenScrollbackOnMainOnly(t *testing.T) {
	s := NewScreen(WithSize(5, 2))
	writeString(s, "one")
	s.Newline(true)
	writeString(s, "two")
	s.Newline(true)
	writeString(s, "three")
	if s.sb.Len() == 0 {
		t.Fatal("scrolling the main buffer should push evicted lines to scroll-back")
	}
}

func TestScreenScrollbackNotOnAlternate(t *testing.T) {
	s := NewScreen(WithSize(5, 2))
	s.SetAlternate(true, false)
	for i := 0; i < 5; i++ {
		s.Newline(true)
	}
	if s.sb.Len() != 0 {
		t.Errorf("scrolling the alternate buffer should never populate scroll-back, got %d lines", s.sb.Len())
	}
}

func TestScreenSbUpDownReset(t *testing.T) {
	s := NewScreen(WithSize(5, 2))
	for i := 0; i < 10; i++ {
		s.Newline(true)
	}
	s.SbUp(3)
	if !s.IsScrolledBack() {
		t.Fatal("SbUp should leave the view scrolled back")
	}
	s.SbReset()
	if s.IsScrolledBack() {
		t.Error("SbReset should return to the live view")
	}
}
