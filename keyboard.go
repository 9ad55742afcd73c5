package tsm

import "fmt"

// Modifier is a bitmask of held modifier keys, matching the
// TSM_SHIFT_MASK/TSM_CONTROL_MASK/TSM_ALT_MASK/TSM_LOGO_MASK enum
// original_source/src/tsm/libtsm.h defines (spec.md §4.4 mentions "mods"
// only in passing; the exact bitmask is supplemented from the original
// header per SPEC_FULL.md).
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModLogo
	ModControl
	ModAlt
)

// Keysym identifies a non-printable key for HandleKeyboard. Printable
// input is passed through the unicode parameter instead; KeyNone means
// "this event carries no special key, just a code point".
type Keysym int

const (
	KeyNone Keysym = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyTab
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// BackspaceSendsDelete configures whether a keyboard Backspace emits 0x7F
// (delete) instead of 0x08, matching tsm_vte_set_backspace_sends_delete.
func (v *VTE) BackspaceSendsDelete(on bool) {
	if on {
		v.flags |= VTEFlagBackspaceSendsDelete
	} else {
		v.flags &^= VTEFlagBackspaceSendsDelete
	}
}

// xtermModParam returns the 1+mods modifier parameter xterm-style
// sequences append when Shift, Alt or Control is held (Alt counts as bit
// 2, so Alt alone gives 3; Logo is not encoded), or 0 if none of them is.
func xtermModParam(mods Modifier) int {
	bits := 0
	if mods&ModShift != 0 {
		bits |= 1
	}
	if mods&ModAlt != 0 {
		bits |= 2
	}
	if mods&ModControl != 0 {
		bits |= 4
	}
	if bits == 0 {
		return 0
	}
	return 1 + bits
}

// cursorSeq builds the bytes for an arrow/Home/End key: plain "ESC [ f"
// (or "ESC O f" in application cursor-key mode) with no modifiers, else
// "ESC [ 1 ; n f" carrying the modifier parameter, per spec.md §4.4 and
// its note that an ESC-led sequence's parameters carry "1+mods" instead
// of an ESC-prefix when the key already emits one.
func (v *VTE) cursorSeq(final byte, mods Modifier) []byte {
	if m := xtermModParam(mods); m != 0 {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", m, final))
	}
	if v.cursorKeyMode {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

// tildeSeq builds a "ESC [ n ~" sequence (PageUp/PageDown/Insert/Delete/
// F5-F12), appending a modifier parameter when any is held.
func tildeSeq(n int, mods Modifier) []byte {
	if m := xtermModParam(mods); m != 0 {
		return []byte(fmt.Sprintf("\x1b[%d;%d~", n, m))
	}
	return []byte(fmt.Sprintf("\x1b[%d~", n))
}

// HandleKeyboard translates one keyboard event into wire bytes written
// via the VTE's WriteFunc, per spec.md §4.4. key names a special key;
// for ordinary character input, pass KeyNone and the typed code point in
// unicode. Shift+Insert and Ctrl+Shift+C/V are deliberately not consumed
// here, matching spec.md's note that the widget layer owns clipboard
// shortcuts.
func (v *VTE) HandleKeyboard(key Keysym, mods Modifier, unicode rune) {
	if key == KeyInsert && mods == ModShift {
		return
	}
	if mods&ModControl != 0 && mods&ModShift != 0 && (unicode == 'c' || unicode == 'C' || unicode == 'v' || unicode == 'V') {
		return
	}

	switch key {
	case KeyUp:
		v.reply(v.cursorSeq('A', mods))
		return
	case KeyDown:
		v.reply(v.cursorSeq('B', mods))
		return
	case KeyRight:
		v.reply(v.cursorSeq('C', mods))
		return
	case KeyLeft:
		v.reply(v.cursorSeq('D', mods))
		return
	case KeyHome:
		v.reply(v.cursorSeq('H', mods))
		return
	case KeyEnd:
		v.reply(v.cursorSeq('F', mods))
		return
	case KeyPageUp:
		v.reply(tildeSeq(5, mods))
		return
	case KeyPageDown:
		v.reply(tildeSeq(6, mods))
		return
	case KeyInsert:
		v.reply(tildeSeq(2, mods))
		return
	case KeyDelete:
		v.reply(tildeSeq(3, mods))
		return
	case KeyBackspace:
		if v.flags&VTEFlagBackspaceSendsDelete != 0 {
			v.reply([]byte{0x7f})
		} else {
			v.reply([]byte{0x08})
		}
		return
	case KeyTab:
		if mods&ModShift != 0 {
			v.reply([]byte("\x1b[Z"))
		} else {
			v.reply([]byte{0x09})
		}
		return
	case KeyEnter:
		v.reply([]byte{0x0d})
		return
	case KeyEscape:
		v.reply([]byte{0x1b})
		return
	case KeyF1, KeyF2, KeyF3, KeyF4:
		final := byte('P' + (key - KeyF1))
		if m := xtermModParam(mods); m != 0 {
			v.reply([]byte(fmt.Sprintf("\x1b[1;%d%c", m, final)))
		} else {
			v.reply([]byte{0x1b, 'O', final})
		}
		return
	case KeyF5:
		v.reply(tildeSeq(15, mods))
		return
	case KeyF6, KeyF7, KeyF8:
		v.reply(tildeSeq(17+int(key-KeyF6), mods))
		return
	case KeyF9, KeyF10:
		v.reply(tildeSeq(20+int(key-KeyF9), mods))
		return
	case KeyF11, KeyF12:
		v.reply(tildeSeq(23+int(key-KeyF11), mods))
		return
	}

	v.handlePrintableKey(mods, unicode)
}

// handlePrintableKey encodes ordinary character input: a bare Ctrl
// combination maps a letter to its control code; an Alt combination
// prefixes the byte with ESC; otherwise the code point is sent verbatim,
// UTF-8 encoded.
func (v *VTE) handlePrintableKey(mods Modifier, unicode rune) {
	if unicode == 0 {
		return
	}
	b := unicode
	if mods&ModControl != 0 {
		upper := b
		if upper >= 'a' && upper <= 'z' {
			upper -= 'a' - 'A'
		}
		if upper >= '@' && upper <= '_' {
			b = rune(upper & 0x1f)
		}
	}
	out := EncodeUCS4(b)
	if mods&ModAlt != 0 {
		out = append([]byte{0x1b}, out...)
	}
	v.reply(out)
}
