// Package tsm implements the state-machine core of a VT100-VT520-compatible
// terminal emulator: a byte-driven escape-sequence parser (VTE) driving a
// cell-grid model (Screen) with scroll-back, alternate-buffer, selection and
// age-based dirty tracking. It renders nothing itself; callers drive a VTE
// with a PTY's output and read cells back out via Screen.Draw.
//
// # Quick start
//
//	screen := tsm.NewScreen(tsm.WithSize(80, 24))
//	vte := tsm.NewVTE(screen, func(p []byte) {
//	    pty.Write(p) // write DSR/DA replies and keyboard/mouse bytes back
//	})
//	vte.Input([]byte("\x1b[31mHello\x1b[0m"))
//	screen.Draw(func(sym tsm.SymbolID, runes []rune, w, col, row int, attr tsm.CellAttr, age tsm.AgeTick) bool {
//	    // render cell (col, row)
//	    return false
//	})
//
// # Architecture
//
//   - [VTE]: decodes UTF-8 and dispatches C0/C1, CSI, OSC, DCS and charset
//     sequences against a Screen, and translates keyboard/mouse events back
//     into wire bytes.
//   - [Screen]: the cell grid — main and alternate buffers, scroll-back,
//     margins, tab stops, selection, and the age counter driving [Screen.Draw].
//   - [Registry]: interns code points and combining-mark sequences into
//     stable [SymbolID] values so a [Cell] never needs a variable-length
//     payload.
//
// # Lifetimes
//
// Screen and VTE are reference-counted: NewVTE takes its own reference on
// the Screen it is given, so a Screen survives its VTE's lifetime as long as
// a caller still holds a reference via [Screen.Ref]. Release both with
// [Screen.Unref] / [VTE.Unref].
//
// # Errors
//
// Facade-level failures (an unknown palette name, a selection copy with
// nothing selected) are returned as *[Error], comparable via errors.Is
// against the Err* sentinels. Malformed escape sequences from the byte
// stream are never surfaced as errors — they are tolerated and logged, per
// a terminal emulator's obligation to survive arbitrary/garbled input.
package tsm
