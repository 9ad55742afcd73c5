package tsm

// csiSetMode implements SM (enable=true) and RM (enable=false), routing
// through the private-mode table when the sequence carried a `?` marker
// and the ANSI-mode table otherwise, per spec.md §4.4.
func (v *VTE) csiSetMode(enable bool) {
	priv := v.private == '?'
	n := v.nparam()
	if n == 0 {
		n = 1 // a bare "CSI h"/"CSI l" with no params still names mode 0
	}
	for i := 0; i < n; i++ {
		p := v.paramRaw(i)
		if priv {
			v.setPrivateMode(p, enable)
		} else {
			v.setAnsiMode(p, enable)
		}
	}
}

// setAnsiMode handles the (non-private) ANSI modes spec.md §4.4 names:
// IRM (4) and LNM (20).
func (v *VTE) setAnsiMode(mode int, enable bool) {
	switch mode {
	case 4: // IRM - insert mode
		v.setScreenFlag(FlagInsertMode, enable)
	case 20: // LNM - line feed / new line mode
		if enable {
			v.flags |= VTEFlagLineFeedNewLine
		} else {
			v.flags &^= VTEFlagLineFeedNewLine
		}
	default:
		v.logf(SeverityDebug, "unknown ANSI mode %d", mode)
	}
}

func (v *VTE) setScreenFlag(f Flags, enable bool) {
	if enable {
		v.screen.setFlag(f)
	} else {
		v.screen.clearFlag(f)
	}
}

// setPrivateMode handles the DEC private (`?`-prefixed) modes spec.md
// §4.4 enumerates: DECOM, DECAWM, DECTCEM, DECCOLM, the three
// alternate-screen variants, bracketed paste, cursor-keys mode, and the
// mouse-mode switches.
func (v *VTE) setPrivateMode(mode int, enable bool) {
	switch mode {
	case 1: // DECCKM - cursor key mode
		v.cursorKeyMode = enable
	case 3: // DECCOLM - 80/132 column mode
		cols := 80
		if enable {
			cols = 132
		}
		v.screen.Resize(cols, v.screen.Rows())
		v.screen.EraseScreen(false)
		v.screen.MoveTo(0, 0)
	case 5: // DECSCNM - reverse screen
		v.setScreenFlag(FlagInverse, enable)
	case 6: // DECOM - origin mode
		v.setScreenFlag(FlagRelOrigin, enable)
		v.screen.MoveTo(0, 0)
	case 7: // DECAWM - auto wrap
		v.setScreenFlag(FlagAutoWrap, enable)
	case 9: // X10 mouse mode
		if enable {
			v.mouseMode = MouseModeX10
		} else if v.mouseMode == MouseModeX10 {
			v.mouseMode = MouseModeNone
		}
		v.notifyMouseMode()
	case 25: // DECTCEM - cursor visible
		v.setScreenFlag(FlagHideCursor, !enable)
	case 47, 1047: // alternate screen (no cursor save/restore)
		v.screen.SetAlternate(enable, false)
	case 1000: // click-only mouse tracking (press/release, no motion)
		if enable {
			v.mouseMode = MouseModeClick
		} else if v.mouseMode == MouseModeClick {
			v.mouseMode = MouseModeNone
		}
		v.notifyMouseMode()
	case 1002: // button-motion mouse tracking
		if enable {
			v.mouseMode = MouseModeButton
		} else if v.mouseMode == MouseModeButton {
			v.mouseMode = MouseModeNone
		}
		v.notifyMouseMode()
	case 1003: // any-motion mouse tracking
		if enable {
			v.mouseMode = MouseModeAny
		} else if v.mouseMode == MouseModeAny {
			v.mouseMode = MouseModeNone
		}
		v.notifyMouseMode()
	case 1005: // UTF-8 extended mouse coordinates (legacy; superseded by 1006)
		// no dedicated encoding path: SGR (1006) is preferred and
		// unaffected by this mode.
	case 1006: // SGR extended mouse coordinates
		v.mouseSGR = enable
		v.notifyMouseMode()
	case 1015: // urxvt extended mouse coordinates (not implemented)
		v.logf(SeverityDebug, "urxvt mouse extension (1015) not implemented")
	case 1016: // SGR-pixel extended mouse coordinates
		v.mousePixel = enable
		v.notifyMouseMode()
	case 1049: // alternate screen + cursor save/restore
		if enable {
			v.saveCursor()
			v.screen.SetAlternate(true, false)
		} else {
			v.screen.SetAlternate(false, false)
			v.restoreCursor()
		}
	case 2004: // bracketed paste
		v.bracketedPaste = enable
	default:
		v.logf(SeverityDebug, "unknown private mode %d", mode)
	}
}
