package tsm

// Emulator pairs a Screen with the VTE that drives it, the common case of
// wiring NewScreen and NewVTE together for a single PTY session. Most
// callers with more than one screen (split panes, a recorder overlaying a
// live session) construct Screen and VTE separately instead.
type Emulator struct {
	Screen *Screen
	VTE    *VTE
}

// NewEmulator constructs a Screen and a VTE bound to it, applying screenOpts
// to the Screen and vteOpts to the VTE.
func NewEmulator(write WriteFunc, screenOpts []ScreenOption, vteOpts []Option) *Emulator {
	screen := NewScreen(screenOpts...)
	vte := NewVTE(screen, write, vteOpts...)
	return &Emulator{Screen: screen, VTE: vte}
}

// Close releases the Emulator's references to its VTE and Screen. Callers
// that took their own additional Ref on either must Unref those separately.
func (e *Emulator) Close() {
	e.VTE.Unref()
	e.Screen.Unref()
}
