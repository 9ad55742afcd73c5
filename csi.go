package tsm

import "fmt"

// csiDispatch routes a completed CSI sequence (parameters, intermediates,
// private marker and final byte all collected) to its handler, per
// spec.md §4.4's "canonical handler table".
func (v *VTE) csiDispatch(final byte) {
	switch final {
	case 'A': // CUU
		v.screen.MoveUp(v.paramOr(0, 1), false)
	case 'B', 'e': // CUD, VPR
		v.screen.MoveDown(v.paramOr(0, 1), false)
	case 'C', 'a': // CUF, HPR
		v.screen.MoveRight(v.paramOr(0, 1))
	case 'D': // CUB
		v.screen.MoveLeft(v.paramOr(0, 1))
	case 'H', 'f': // CUP, HVP
		row := v.paramOr(0, 1) - 1
		col := v.paramOr(1, 1) - 1
		v.screen.MoveTo(col, row)
	case 'G', '`': // CHA, HPA
		v.screen.MoveTo(v.paramOr(0, 1)-1, v.screen.cursorRow())
	case 'd': // VPA
		v.screen.MoveTo(v.screen.cursorCol(), v.paramOr(0, 1)-1)
	case 'I': // CHT - tab forward
		v.screen.TabRight(v.paramOr(0, 1))
	case 'Z': // CBT - tab backward
		v.screen.TabLeft(v.paramOr(0, 1))
	case 'J': // ED
		v.edDispatch()
	case 'K': // EL
		v.elDispatch()
	case 'L': // IL
		v.screen.InsertLines(v.paramOr(0, 1))
	case 'M': // DL
		v.screen.DeleteLines(v.paramOr(0, 1))
	case '@': // ICH
		v.screen.InsertChars(v.paramOr(0, 1))
	case 'P': // DCH
		v.screen.DeleteChars(v.paramOr(0, 1))
	case 'S': // SU
		v.screen.ScrollUp(v.paramOr(0, 1))
	case 'T': // SD
		v.screen.ScrollDown(v.paramOr(0, 1))
	case 'g': // TBC
		v.screen.ClearTabStop(v.paramRaw(0))
	case 'h': // SM
		v.csiSetMode(true)
	case 'l': // RM
		v.csiSetMode(false)
	case 'r': // DECSTBM
		top := v.paramOr(0, 1) - 1
		bottom := v.paramOr(1, v.screen.Rows()) - 1
		v.screen.SetScrollRegion(top, bottom)
	case 'n': // DSR
		v.dsrDispatch()
	case 'c': // DA
		if v.private == 0 {
			v.replyDA()
		}
	case 'm': // SGR
		v.sgrDispatch()
	default:
		v.logf(SeverityDebug, "unknown CSI final byte %q", final)
	}
}

func (s *Screen) cursorCol() int { c, _ := s.CursorPosition(); return c }
func (s *Screen) cursorRow() int { _, r := s.CursorPosition(); return r }

// edDispatch implements ED (erase in display): 0 cursor-to-screen-end,
// 1 screen-home-to-cursor, 2 (and xterm's 3) whole screen.
func (v *VTE) edDispatch() {
	protect := v.private == '?' // xterm's "selective erase" variants (? J)
	switch v.paramRaw(0) {
	case 0:
		v.screen.EraseCursorToScreen(protect)
	case 1:
		v.screen.EraseScreenToCursor(protect)
	case 2, 3:
		v.screen.EraseScreen(protect)
	}
}

// elDispatch implements EL (erase in line): 0 cursor-to-end, 1
// home-to-cursor, 2 whole line.
func (v *VTE) elDispatch() {
	protect := v.paramRaw(0) >= 10
	switch v.paramRaw(0) % 10 {
	case 0:
		v.screen.EraseCursorToEnd(protect)
	case 1:
		v.screen.EraseHomeToCursor(protect)
	case 2:
		v.screen.EraseCurrentLine(protect)
	}
}

// dsrDispatch implements DSR (device status report): 5 reports terminal
// OK, 6 reports the cursor position (CPR), both via the write callback.
func (v *VTE) dsrDispatch() {
	switch v.paramRaw(0) {
	case 5:
		v.reply([]byte("\x1b[0n"))
	case 6:
		col, row := v.screen.CursorPosition()
		v.reply([]byte(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1)))
	}
}

// replyDA answers Device Attributes with a VT220-class response, per
// spec.md §4.4.
func (v *VTE) replyDA() {
	v.reply([]byte("\x1b[?62;1;2;6;8;9c"))
}

// sgrDispatch implements SGR (select graphic rendition): attribute bits,
// the 16-color palette, 256-color (38;5;n / 48;5;n) and 24-bit RGB
// (38;2;r;g;b / 48;2;r;g;b) forms, per spec.md §4.4.
func (v *VTE) sgrDispatch() {
	n := v.nparam()
	if n == 0 {
		v.curAttr = DefaultAttr
		return
	}
	for i := 0; i < n; i++ {
		p := v.paramRaw(i)
		switch {
		case p == 0:
			v.curAttr = DefaultAttr
		case p == 1:
			v.curAttr = v.curAttr.WithFlag(AttrBold)
		case p == 2:
			v.curAttr = v.curAttr.WithFlag(AttrDim)
		case p == 3:
			v.curAttr = v.curAttr.WithFlag(AttrItalic)
		case p == 4:
			v.curAttr = v.curAttr.WithFlag(AttrUnderline)
		case p == 5 || p == 6:
			v.curAttr = v.curAttr.WithFlag(AttrBlink)
		case p == 7:
			v.curAttr = v.curAttr.WithFlag(AttrInverse)
		case p == 8:
			v.curAttr = v.curAttr.WithFlag(AttrHidden)
		case p == 9:
			v.curAttr = v.curAttr.WithFlag(AttrStrike)
		case p == 21:
			v.curAttr = v.curAttr.WithFlag(AttrDoubleUnderline)
		case p == 22:
			v.curAttr = v.curAttr.WithoutFlag(AttrBold).WithoutFlag(AttrDim)
		case p == 23:
			v.curAttr = v.curAttr.WithoutFlag(AttrItalic)
		case p == 24:
			v.curAttr = v.curAttr.WithoutFlag(AttrUnderline).WithoutFlag(AttrDoubleUnderline).WithoutFlag(AttrCurlyUnderline)
		case p == 25:
			v.curAttr = v.curAttr.WithoutFlag(AttrBlink)
		case p == 27:
			v.curAttr = v.curAttr.WithoutFlag(AttrInverse)
		case p == 28:
			v.curAttr = v.curAttr.WithoutFlag(AttrHidden)
		case p == 29:
			v.curAttr = v.curAttr.WithoutFlag(AttrStrike)
		case p >= 30 && p <= 37:
			v.curAttr.FGCode = int16(p - 30)
		case p == 38:
			i = v.sgrExtendedColor(i, true)
		case p == 39:
			v.curAttr.FGCode = -1
			v.curAttr.FR, v.curAttr.FG, v.curAttr.FB = 0, 0, 0
		case p >= 40 && p <= 47:
			v.curAttr.BGCode = int16(p - 40)
		case p == 48:
			i = v.sgrExtendedColor(i, false)
		case p == 49:
			v.curAttr.BGCode = -1
			v.curAttr.BR, v.curAttr.BG, v.curAttr.BB = 0, 0, 0
		case p >= 90 && p <= 97:
			v.curAttr.FGCode = int16(p - 90 + 8)
		case p >= 100 && p <= 107:
			v.curAttr.BGCode = int16(p - 100 + 8)
		}
	}
}

// sgrExtendedColor consumes the `5;n` or `2;r;g;b` sub-parameters
// following a 38 or 48 parameter and returns the index of the last
// sub-parameter consumed, so the caller's loop can skip past it.
func (v *VTE) sgrExtendedColor(i int, fg bool) int {
	if i+1 > v.nparams {
		return i
	}
	switch v.paramRaw(i + 1) {
	case 5:
		if i+2 > v.nparams {
			return i + 1
		}
		idx := int16(v.paramRaw(i + 2))
		if fg {
			v.curAttr.FGCode = idx
		} else {
			v.curAttr.BGCode = idx
		}
		return i + 2
	case 2:
		if i+4 > v.nparams {
			return i + 1
		}
		r, g, b := byte(v.paramRaw(i+2)), byte(v.paramRaw(i+3)), byte(v.paramRaw(i+4))
		if fg {
			v.curAttr.FGCode = -1
			v.curAttr.FR, v.curAttr.FG, v.curAttr.FB = r, g, b
		} else {
			v.curAttr.BGCode = -1
			v.curAttr.BR, v.curAttr.BG, v.curAttr.BB = r, g, b
		}
		return i + 4
	}
	return i + 1
}
