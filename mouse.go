package tsm

import "fmt"

// MouseMode is the VTE's effective mouse-tracking mode, using the wire
// values spec.md §6 fixes for compatibility: X10=9, click-only=1000,
// button-event=1002, any-event=1003.
type MouseMode int

const (
	MouseModeNone   MouseMode = 0
	MouseModeX10    MouseMode = 9
	MouseModeClick  MouseMode = 1000
	MouseModeButton MouseMode = 1002
	MouseModeAny    MouseMode = 1003
)

// MouseButton identifies which button a mouse event reports, using the
// wire encoding of spec.md §4.4's mouse encoder table.
type MouseButton int

const (
	MouseLeft      MouseButton = 0
	MouseMiddle    MouseButton = 1
	MouseRight     MouseButton = 2
	MouseWheelUp   MouseButton = 64
	MouseWheelDown MouseButton = 65
	// MouseNone marks a motion event with no button held, relevant only
	// to MouseModeButton's "track motion while a button is down" rule.
	MouseNone MouseButton = -1
)

// MouseEventKind distinguishes press, release, and motion mouse events.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

// notifyMouseMode invokes the mouse-mode-change callback with the VTE's
// current effective tracking mode and coordinate kind, per spec.md
// §4.4's "the emulator informs the outer layer via a mouse_cb callback
// whenever the effective tracking mode... or coordinate kind... changes".
func (v *VTE) notifyMouseMode() {
	if v.mouseCB != nil {
		v.mouseCB(v.mouseMode, v.mousePixel)
	}
}

// HandleMouse translates one mouse event into the wire bytes the active
// tracking mode expects, per spec.md §4.4's mouse encoder. cellX/cellY
// are 0-based grid coordinates; pixelX/pixelY are caller-supplied real
// pixel offsets, used only when the SGR-pixel extension (1016) is
// active. Motion events are ignored unless the current mode wants them,
// and are deduplicated against the last reported cell; a press or
// release is always reported.
func (v *VTE) HandleMouse(cellX, cellY, pixelX, pixelY int, button MouseButton, event MouseEventKind, mods Modifier) {
	if v.mouseMode == MouseModeNone {
		return
	}
	if event == MouseMotion {
		if v.mouseMode == MouseModeClick {
			// Click-only tracking (1000) never reports motion, pressed or not.
			return
		}
		if v.mouseMode == MouseModeButton && button == MouseNone {
			return
		}
		if v.mouseMode != MouseModeAny && v.mouseMode != MouseModeButton {
			return
		}
		if v.haveLastMouse && v.lastMouseX == cellX && v.lastMouseY == cellY {
			return
		}
	}
	v.lastMouseX, v.lastMouseY, v.haveLastMouse = cellX, cellY, true

	b := v.encodeMouseButton(button, event, mods)

	if v.mouseSGR {
		x, y := cellX, cellY
		if v.mousePixel {
			x, y = pixelX, pixelY
		}
		suffix := byte('M')
		if event == MouseRelease {
			suffix = 'm'
		}
		v.reply([]byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", b, x+1, y+1, suffix)))
		return
	}

	// X10 encoding: always cell coordinates, release reported as button 3.
	wb := b
	if event == MouseRelease {
		wb = 3
	}
	x := clampByteCoord(cellX + 33)
	y := clampByteCoord(cellY + 33)
	v.reply([]byte{0x1b, '[', 'M', byte(wb + 32), byte(x), byte(y)})
}

func clampByteCoord(v int) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return v
}

// encodeMouseButton builds the wire button value: the base button code,
// +32 for motion, and the shift(4)/meta(8)/ctrl(16) modifier bits OR'd
// in, per spec.md §4.4.
func (v *VTE) encodeMouseButton(button MouseButton, event MouseEventKind, mods Modifier) int {
	b := int(button)
	if button == MouseNone {
		b = 0
	}
	if event == MouseMotion {
		b += 32
	}
	if mods&ModShift != 0 {
		b += 4
	}
	if mods&ModAlt != 0 {
		b += 8
	}
	if mods&ModControl != 0 {
		b += 16
	}
	return b
}
