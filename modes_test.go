package tsm

import "testing"

func TestModesDECCKMTogglesCursorKeyMode(t *testing.T) {
	_, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?1h"))
	if !v.cursorKeyMode {
		t.Fatal("CSI ?1h should enable DECCKM")
	}
	v.Input([]byte("\x1b[?1l"))
	if v.cursorKeyMode {
		t.Fatal("CSI ?1l should disable DECCKM")
	}
}

func TestModesDECCOLMResizesColumns(t *testing.T) {
	s, v, _ := newTestVTE(80, 24)
	v.Input([]byte("\x1b[?3h"))
	if s.Cols() != 132 {
		t.Errorf("DECCOLM set should resize to 132 columns, got %d", s.Cols())
	}
	v.Input([]byte("\x1b[?3l"))
	if s.Cols() != 80 {
		t.Errorf("DECCOLM reset should resize to 80 columns, got %d", s.Cols())
	}
}

func TestModesDECSCNMSetsInverseFlag(t *testing.T) {
	s, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?5h"))
	if !s.HasFlag(FlagInverse) {
		t.Error("CSI ?5h should set FlagInverse")
	}
	v.Input([]byte("\x1b[?5l"))
	if s.HasFlag(FlagInverse) {
		t.Error("CSI ?5l should clear FlagInverse")
	}
}

func TestModesDECOMHomesCursor(t *testing.T) {
	s, v, _ := newTestVTE(10, 10)
	s.MoveTo(5, 5)
	v.Input([]byte("\x1b[?6h"))
	col, row := s.CursorPosition()
	if col != 0 || row != 0 {
		t.Errorf("DECOM should home the cursor, got (%d,%d)", col, row)
	}
	if !s.HasFlag(FlagRelOrigin) {
		t.Error("CSI ?6h should set FlagRelOrigin")
	}
}

func TestModesDECAWMTogglesAutoWrap(t *testing.T) {
	s, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?7l"))
	if s.HasFlag(FlagAutoWrap) {
		t.Error("CSI ?7l should clear FlagAutoWrap")
	}
	v.Input([]byte("\x1b[?7h"))
	if !s.HasFlag(FlagAutoWrap) {
		t.Error("CSI ?7h should set FlagAutoWrap")
	}
}

func TestModesDECTCEMHidesCursor(t *testing.T) {
	s, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?25l"))
	if !s.HasFlag(FlagHideCursor) {
		t.Error("CSI ?25l should set FlagHideCursor")
	}
	v.Input([]byte("\x1b[?25h"))
	if s.HasFlag(FlagHideCursor) {
		t.Error("CSI ?25h should clear FlagHideCursor")
	}
}

func TestModesX10MouseTracking(t *testing.T) {
	_, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?9h"))
	if v.mouseMode != MouseModeX10 {
		t.Fatalf("mouseMode = %v, want MouseModeX10", v.mouseMode)
	}
	v.Input([]byte("\x1b[?9l"))
	if v.mouseMode != MouseModeNone {
		t.Fatalf("mouseMode after ?9l = %v, want MouseModeNone", v.mouseMode)
	}
}

func TestModesClickButtonAndAnyMotionMouseTracking(t *testing.T) {
	_, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?1000h"))
	if v.mouseMode != MouseModeClick {
		t.Fatalf("mouseMode after ?1000h = %v, want MouseModeClick", v.mouseMode)
	}
	v.Input([]byte("\x1b[?1000l"))
	if v.mouseMode != MouseModeNone {
		t.Fatalf("mouseMode after ?1000l = %v, want MouseModeNone", v.mouseMode)
	}
	v.Input([]byte("\x1b[?1002h"))
	if v.mouseMode != MouseModeButton {
		t.Fatalf("mouseMode after ?1002h = %v, want MouseModeButton", v.mouseMode)
	}
	v.Input([]byte("\x1b[?1003h"))
	if v.mouseMode != MouseModeAny {
		t.Fatalf("mouseMode after ?1003h = %v, want MouseModeAny", v.mouseMode)
	}
	v.Input([]byte("\x1b[?1003l"))
	if v.mouseMode != MouseModeNone {
		t.Fatalf("mouseMode after ?1003l = %v, want MouseModeNone", v.mouseMode)
	}
}

func TestModesSGRAndPixelMouseCoordinates(t *testing.T) {
	_, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?1006h"))
	if !v.mouseSGR {
		t.Error("CSI ?1006h should enable SGR mouse coordinates")
	}
	v.Input([]byte("\x1b[?1016h"))
	if !v.mousePixel {
		t.Error("CSI ?1016h should enable SGR-pixel mouse coordinates")
	}
}

func TestModesAlternateScreenWithoutCursorSaveRestore(t *testing.T) {
	s, v, _ := newTestVTE(10, 3)
	s.MoveTo(3, 1)
	v.Input([]byte("\x1b[?47h"))
	if !s.IsAlternateScreen() {
		t.Fatal("CSI ?47h should switch to the alternate buffer")
	}
	v.Input([]byte("\x1b[?47l"))
	if s.IsAlternateScreen() {
		t.Fatal("CSI ?47l should return to the main buffer")
	}
}

func TestModesAlternateScreenWithCursorSaveRestore1049(t *testing.T) {
	s, v, _ := newTestVTE(10, 3)
	s.MoveTo(4, 2)
	v.Input([]byte("\x1b[?1049h"))
	if !s.IsAlternateScreen() {
		t.Fatal("CSI ?1049h should switch to the alternate buffer")
	}
	s.MoveTo(0, 0)
	v.Input([]byte("\x1b[?1049l"))
	col, row := s.CursorPosition()
	if col != 4 || row != 2 {
		t.Errorf("CSI ?1049l should restore the saved cursor position, got (%d,%d), want (4,2)", col, row)
	}
}

func TestModesBracketedPaste(t *testing.T) {
	_, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?2004h"))
	if !v.bracketedPaste {
		t.Error("CSI ?2004h should enable bracketed paste")
	}
	v.Input([]byte("\x1b[?2004l"))
	if v.bracketedPaste {
		t.Error("CSI ?2004l should disable bracketed paste")
	}
}

func TestModesANSIInsertMode(t *testing.T) {
	s, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[4h"))
	if !s.HasFlag(FlagInsertMode) {
		t.Error("CSI 4h should set FlagInsertMode")
	}
	v.Input([]byte("\x1b[4l"))
	if s.HasFlag(FlagInsertMode) {
		t.Error("CSI 4l should clear FlagInsertMode")
	}
}

func TestModesANSILineFeedNewLineMode(t *testing.T) {
	_, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[20h"))
	if v.flags&VTEFlagLineFeedNewLine == 0 {
		t.Error("CSI 20h should set VTEFlagLineFeedNewLine")
	}
	v.Input([]byte("\x1b[20l"))
	if v.flags&VTEFlagLineFeedNewLine != 0 {
		t.Error("CSI 20l should clear VTEFlagLineFeedNewLine")
	}
}

func TestModesUnknownPrivateModeIgnored(t *testing.T) {
	s, v, _ := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?9999hX"))
	got := cellSymbols(s, 0)
	if got[0] != 'X' {
		t.Errorf("unknown private mode should not disturb subsequent input: got %q", got[0])
	}
}
