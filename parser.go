package tsm

// This file implements spec.md §4.4's parser state machine: one method
// per DEC/ECMA-48 parser state, each a parseState bound to the VTE and
// called once per input byte. States are named for the well-known DEC
// parser diagram spec.md cites directly (GROUND, ESC, CSI_ENTRY, ...).

// handleCommonControls implements the actions that fire from *any* state:
// CAN/SUB abort the sequence in progress back to GROUND, ESC always
// starts a fresh escape sequence, and every other C0 control (plus DEL)
// executes immediately without disturbing the current state. Reports
// whether b was consumed this way.
func (v *VTE) handleCommonControls(b byte) bool {
	switch {
	case b == 0x1b:
		v.clearParams()
		v.state = v.escape
		return true
	case b == 0x18 || b == 0x1a:
		v.state = v.ground
		return true
	case b < 0x20 || b == 0x7f:
		v.executeC0(b)
		return true
	}
	return false
}

// executeC0 performs the C0 execution actions of spec.md §4.4, available
// in any parser state.
func (v *VTE) executeC0(b byte) {
	switch b {
	case 0x07: // BEL
		v.logf(SeverityDebug, "BEL")
	case 0x08: // BS
		v.screen.Backspace()
	case 0x09: // HT
		v.screen.TabRight(1)
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		v.screen.Newline(v.flags&VTEFlagLineFeedNewLine != 0)
	case 0x0d: // CR
		v.screen.CarriageReturn()
	case 0x0e: // SO -> invoke G1 into GL
		v.gl = 1
	case 0x0f: // SI -> invoke G0 into GL
		v.gl = 0
	default:
		// NUL and other unassigned C0 controls: no-op.
	}
}

// ground decodes UTF-8 text and starts new escape sequences.
func (v *VTE) ground(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	if v.flags&VTEFlag7Bit == 0 && b >= 0x80 && b <= 0x9f {
		v.handleC1(b)
		return
	}
	if r, complete := v.utf8.Decode(b); complete {
		v.printRune(r)
	}
}

// handleC1 synthesizes the escape-intro equivalent of an 8-bit C1 control
// byte, per spec.md §4.4's C1 handling (only reached with 7BIT_MODE off).
func (v *VTE) handleC1(b byte) {
	switch b {
	case 0x9b: // CSI
		v.clearParams()
		v.state = v.csiEntry
	case 0x9d: // OSC
		v.oscStart()
		v.state = v.oscString
	case 0x90: // DCS
		v.clearParams()
		v.dcsBuf = v.dcsBuf[:0]
		v.state = v.dcsEntry
	case 0x9c: // ST with nothing open: ignore
	case 0x98, 0x9e, 0x9f: // SOS, PM, APC
		v.state = v.sosPmApc
	default:
		v.escDispatch(b - 0x40)
	}
}

// escape follows ESC: collects intermediates, or routes to CSI/OSC/DCS/
// string entry, or dispatches a bare ESC sequence.
func (v *VTE) escape(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	switch {
	case b >= 0x20 && b <= 0x2f:
		v.collect(b)
		v.state = v.escapeIntermediate
	case b == '[':
		v.clearParams()
		v.state = v.csiEntry
	case b == ']':
		v.oscStart()
		v.state = v.oscString
	case b == 'P':
		v.dcsBuf = v.dcsBuf[:0]
		v.state = v.dcsEntry
	case b == 'X' || b == '^' || b == '_':
		v.state = v.sosPmApc
	case b >= 0x30 && b <= 0x7e:
		v.escDispatch(b)
		v.state = v.ground
	default:
		v.state = v.ground
	}
}

func (v *VTE) escapeIntermediate(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	switch {
	case b >= 0x20 && b <= 0x2f:
		v.collect(b)
	case b >= 0x30 && b <= 0x7e:
		v.escDispatch(b)
		v.state = v.ground
	default:
		v.state = v.ground
	}
}

func (v *VTE) csiEntry(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	switch {
	case (b >= '0' && b <= '9') || b == ';' || b == ':':
		v.param(b)
		v.state = v.csiParam
	case b >= 0x3c && b <= 0x3f:
		v.private = b
		v.state = v.csiParam
	case b >= 0x20 && b <= 0x2f:
		v.collect(b)
		v.state = v.csiIntermediate
	case b >= 0x40 && b <= 0x7e:
		v.csiDispatch(b)
		v.state = v.ground
	default:
		v.state = v.csiIgnore
	}
}

func (v *VTE) csiParam(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	switch {
	case (b == ';' || b == ':') && v.nparams >= len(v.params)-1:
		v.state = v.csiIgnore // too many parameters: malformed
	case (b >= '0' && b <= '9') || b == ';' || b == ':':
		v.param(b)
	case b >= 0x3c && b <= 0x3f:
		v.state = v.csiIgnore // a second private marker: malformed
	case b >= 0x20 && b <= 0x2f:
		v.collect(b)
		v.state = v.csiIntermediate
	case b >= 0x40 && b <= 0x7e:
		v.csiDispatch(b)
		v.state = v.ground
	default:
		v.state = v.csiIgnore
	}
}

func (v *VTE) csiIntermediate(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	switch {
	case b >= 0x20 && b <= 0x2f:
		v.collect(b)
	case b >= 0x40 && b <= 0x7e:
		v.csiDispatch(b)
		v.state = v.ground
	default:
		v.state = v.csiIgnore
	}
}

// csiIgnore absorbs the remainder of a malformed CSI sequence (too many
// parameters, an invalid intermediate) and drops it silently once the
// final byte arrives, per spec.md §4.4's failure semantics.
func (v *VTE) csiIgnore(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	if b >= 0x40 && b <= 0x7e {
		v.state = v.ground
	}
}

func (v *VTE) oscStart() {
	v.oscBuf = v.oscBuf[:0]
	v.oscActive = true
}

// oscString buffers an OSC payload until ST (ESC \) or BEL, per spec.md
// §9's open question decision to accept both.
func (v *VTE) oscString(b byte) {
	switch {
	case b == 0x07:
		v.oscDispatch()
		v.state = v.ground
	case b == 0x1b:
		v.state = v.oscEscape
	case b == 0x18 || b == 0x1a: // CAN/SUB abort the OSC
		v.state = v.ground
	case b < 0x20:
		// other C0 controls inside an OSC payload are dropped.
	default:
		v.oscBuf = append(v.oscBuf, b)
	}
}

func (v *VTE) oscEscape(b byte) {
	if b == '\\' {
		v.oscDispatch()
		v.state = v.ground
		return
	}
	// Not a valid ST: abort the OSC and reprocess b as a fresh ESC byte.
	v.clearParams()
	v.state = v.escape
	v.escape(b)
}

func (v *VTE) dcsEntry(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	switch {
	case (b >= '0' && b <= '9') || b == ';' || b == ':':
		v.param(b)
		v.state = v.dcsParam
	case b >= 0x3c && b <= 0x3f:
		v.private = b
		v.state = v.dcsParam
	case b >= 0x20 && b <= 0x2f:
		v.collect(b)
		v.state = v.dcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		v.dcsBuf = v.dcsBuf[:0]
		v.state = v.dcsPassthrough
	default:
		v.state = v.dcsIgnore
	}
}

func (v *VTE) dcsParam(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	switch {
	case (b >= '0' && b <= '9') || b == ';' || b == ':':
		v.param(b)
	case b >= 0x20 && b <= 0x2f:
		v.collect(b)
		v.state = v.dcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		v.dcsBuf = v.dcsBuf[:0]
		v.state = v.dcsPassthrough
	default:
		v.state = v.dcsIgnore
	}
}

func (v *VTE) dcsIntermediate(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	switch {
	case b >= 0x20 && b <= 0x2f:
		v.collect(b)
	case b >= 0x40 && b <= 0x7e:
		v.dcsBuf = v.dcsBuf[:0]
		v.state = v.dcsPassthrough
	default:
		v.state = v.dcsIgnore
	}
}

// dcsPassthrough buffers a DCS payload. This module does not implement
// any DCS-addressed feature (Sixel/DECRQSS and similar are out of
// spec.md's scope); the payload is logged at DEBUG and dropped once
// terminated, per spec.md §4.4's "unknown final bytes are logged at
// DEBUG and ignored".
func (v *VTE) dcsPassthrough(b byte) {
	switch {
	case b == 0x1b:
		v.state = v.dcsPassthroughEscape
	case b == 0x18 || b == 0x1a:
		v.state = v.ground
	default:
		v.dcsBuf = append(v.dcsBuf, b)
	}
}

func (v *VTE) dcsPassthroughEscape(b byte) {
	if b == '\\' {
		v.logf(SeverityDebug, "unhandled DCS %q", string(v.dcsBuf))
		v.state = v.ground
		return
	}
	v.clearParams()
	v.state = v.escape
	v.escape(b)
}

func (v *VTE) dcsIgnore(b byte) {
	if v.handleCommonControls(b) {
		return
	}
	if b == 0x1b {
		v.state = v.dcsIgnoreEscape
	}
}

func (v *VTE) dcsIgnoreEscape(b byte) {
	if b == '\\' {
		v.state = v.ground
		return
	}
	v.clearParams()
	v.state = v.escape
	v.escape(b)
}

// sosPmApc discards SOS/PM/APC payloads: spec.md names no feature for
// them, so the parser only needs to consume and terminate the sequence
// correctly.
func (v *VTE) sosPmApc(b byte) {
	if b == 0x1b {
		v.state = v.sosPmApcEscape
	}
}

func (v *VTE) sosPmApcEscape(b byte) {
	if b == '\\' {
		v.state = v.ground
		return
	}
	v.clearParams()
	v.state = v.escape
	v.escape(b)
}
