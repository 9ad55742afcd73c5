package tsm

// escDispatch handles a bare ESC sequence (ESC + optional intermediates +
// final byte), once the full sequence has been collected by the parser,
// per spec.md §4.4.
func (v *VTE) escDispatch(final byte) {
	if len(v.intermediates) == 1 {
		if v.scsDispatch(v.intermediates[0], final) {
			return
		}
		if v.intermediates[0] == '#' {
			return // ESC # n (DECALN and friends): not implemented, no-op
		}
	}
	switch final {
	case 'D': // IND - index
		v.screen.Newline(false)
	case 'E': // NEL - next line
		v.screen.Newline(true)
	case 'H': // HTS - horizontal tab set
		v.screen.SetTabStop()
	case 'M': // RI - reverse index
		v.screen.MoveUp(1, true)
	case 'Z': // DECID - identify terminal (legacy form of DA)
		v.replyDA()
	case 'c': // RIS - full reset
		v.resetAll()
	case '=': // DECKPAM - application keypad
		v.keypadApplication = true
	case '>': // DECKPNM - normal keypad
		v.keypadApplication = false
	case '7': // DECSC - save cursor
		v.saveCursor()
	case '8': // DECRC - restore cursor
		v.restoreCursor()
	case 'n': // LS2
		v.gl = 2
	case 'o': // LS3
		v.gl = 3
	case '~': // LS1R
		v.gr = 1
	case '}': // LS2R
		v.gr = 2
	case '|': // LS3R
		v.gr = 3
	case 'N': // SS2 - single shift G2
		v.glt, v.gltSet = 2, true
	case 'O': // SS3 - single shift G3
		v.glt, v.gltSet = 3, true
	case '\\': // ST with nothing open: ignore
	default:
		v.logf(SeverityDebug, "unknown ESC final byte %q", final)
	}
}

// saveCursor implements DECSC: cursor position, attribute, charset slots
// and origin mode, per spec.md §3's SavedCursor.
func (v *VTE) saveCursor() {
	x, y := v.screen.CursorPosition()
	v.saved = savedCursorState{
		x: int32(x), y: int32(y),
		attr:   v.curAttr,
		gl:     v.gl,
		gr:     v.gr,
		origin: v.screen.HasFlag(FlagRelOrigin),
		valid:  true,
	}
	v.screen.SaveCursor()
}

// restoreCursor implements DECRC, restoring what DECSC saved and
// defaulting to the home position if nothing was saved yet.
func (v *VTE) restoreCursor() {
	if !v.saved.valid {
		v.screen.MoveTo(0, 0)
		return
	}
	v.curAttr = v.saved.attr
	v.gl, v.gr = v.saved.gl, v.saved.gr
	v.setScreenFlag(FlagRelOrigin, v.saved.origin)
	v.screen.RestoreCursor()
}

// resetAll implements RIS: the screen resets to power-on state and the
// VTE's own parser/charset/mode state returns to its defaults.
func (v *VTE) resetAll() {
	v.screen.Reset()
	v.clearParams()
	v.state = v.ground
	v.utf8.Reset()
	for i := range v.g {
		v.g[i] = charsetASCII
	}
	v.gl, v.gr, v.gltSet = 0, 0, false
	v.saved = savedCursorState{}
	v.curAttr = DefaultAttr
	v.flags = VTEFlag7Bit
	v.cursorKeyMode = false
	v.keypadApplication = false
	v.bracketedPaste = false
	v.mouseMode = MouseModeNone
	v.mouseSGR, v.mousePixel = false, false
	v.haveLastMouse = false
	v.notifyMouseMode()
}
