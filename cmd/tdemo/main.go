// Command tdemo is a minimal interactive terminal built on tsm: it spawns
// the user's shell under a pty, feeds the shell's raw output into a
// tsm.VTE, and paints the resulting tsm.Screen onto a real terminal via
// tcell. It exists to exercise the library end to end, not as a
// full-featured terminal emulator.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tsmgo/tsm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	cols, rows := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return fmt.Errorf("start shell: %w", err)
	}
	defer ptmx.Close()

	tscreen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new tcell screen: %w", err)
	}
	if err := tscreen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}
	defer tscreen.Fini()
	tscreen.EnableMouse()

	screen := tsm.NewScreen(tsm.WithSize(cols, rows))
	defer screen.Unref()

	vte := tsm.NewVTE(screen, func(p []byte) { ptmx.Write(p) })
	defer vte.Unref()

	draws := make(chan struct{}, 1)
	requestDraw := func() {
		select {
		case draws <- struct{}{}:
		default:
		}
	}

	done := make(chan struct{})
	go func() {
		pumpPTY(ptmx, vte, requestDraw)
		close(done)
	}()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := tscreen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	requestDraw()
	for {
		select {
		case <-done:
			cmd.Wait()
			return nil
		case <-draws:
			paint(screen, vte, tscreen)
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				cols, rows = e.Size()
				pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
				screen.Resize(cols, rows)
				requestDraw()
			case *tcell.EventKey:
				handleKey(vte, e)
			case *tcell.EventMouse:
				handleMouse(vte, e)
			}
		}
	}
}

// pumpPTY reads raw bytes from the pty and feeds them straight into the
// VTE's own UTF-8 decoder; it deliberately does not pre-decode runes, so
// a multi-byte sequence split across two reads still decodes correctly.
func pumpPTY(ptmx *os.File, vte *tsm.VTE, requestDraw func()) {
	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			vte.Input(buf[:n])
			requestDraw()
		}
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(os.Stderr, "tdemo: pty read:", err)
			}
			return
		}
	}
}

func paint(screen *tsm.Screen, vte *tsm.VTE, tscreen tcell.Screen) {
	tscreen.Clear()
	screen.Draw(func(sym tsm.SymbolID, runes []rune, width, col, row int, attr tsm.CellAttr, age tsm.AgeTick) bool {
		style := cellStyle(vte, attr)
		r := ' '
		if len(runes) > 0 {
			r = runes[0]
		}
		tscreen.SetContent(col, row, r, runes[1:], style)
		return false
	})
	if cx, cy := screen.CursorPosition(); !screen.HasFlag(tsm.FlagHideCursor) {
		tscreen.ShowCursor(cx, cy)
	} else {
		tscreen.HideCursor()
	}
	tscreen.Show()
}

func cellStyle(vte *tsm.VTE, attr tsm.CellAttr) tcell.Style {
	style := tcell.StyleDefault
	style = style.Foreground(tdemoColor(attr.FGCode, attr.FR, attr.FG, attr.FB, vte))
	style = style.Background(tdemoColor(attr.BGCode, attr.BR, attr.BG, attr.BB, vte))
	style = style.
		Bold(attr.HasFlag(tsm.AttrBold)).
		Italic(attr.HasFlag(tsm.AttrItalic)).
		Underline(attr.HasFlag(tsm.AttrUnderline) || attr.HasFlag(tsm.AttrDoubleUnderline) || attr.HasFlag(tsm.AttrCurlyUnderline)).
		Reverse(attr.HasFlag(tsm.AttrInverse)).
		Blink(attr.HasFlag(tsm.AttrBlink)).
		Dim(attr.HasFlag(tsm.AttrDim)).
		StrikeThrough(attr.HasFlag(tsm.AttrStrike))
	return style
}

// tdemoColor resolves one attribute color for tcell. A negative code with
// no literal RGB bytes means "never set", left to the terminal's own
// default color; a negative code with RGB bytes means a literal 38;2/48;2
// color; a non-negative code is a palette lookup.
func tdemoColor(code int16, r, g, b byte, vte *tsm.VTE) tcell.Color {
	if code < 0 && r == 0 && g == 0 && b == 0 {
		return tcell.ColorDefault
	}
	cr, cg, cb := vte.ResolveColor(code, [3]byte{r, g, b})
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

func handleKey(vte *tsm.VTE, e *tcell.EventKey) {
	mods := tcellMods(e.Modifiers())
	if key, ok := tcellKeysym(e.Key()); ok {
		vte.HandleKeyboard(key, mods, 0)
		return
	}
	vte.HandleKeyboard(tsm.KeyNone, mods, e.Rune())
}

func tcellMods(m tcell.ModMask) tsm.Modifier {
	var mods tsm.Modifier
	if m&tcell.ModShift != 0 {
		mods |= tsm.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mods |= tsm.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mods |= tsm.ModControl
	}
	if m&tcell.ModMeta != 0 {
		mods |= tsm.ModLogo
	}
	return mods
}

func tcellKeysym(k tcell.Key) (tsm.Keysym, bool) {
	switch k {
	case tcell.KeyUp:
		return tsm.KeyUp, true
	case tcell.KeyDown:
		return tsm.KeyDown, true
	case tcell.KeyLeft:
		return tsm.KeyLeft, true
	case tcell.KeyRight:
		return tsm.KeyRight, true
	case tcell.KeyHome:
		return tsm.KeyHome, true
	case tcell.KeyEnd:
		return tsm.KeyEnd, true
	case tcell.KeyPgUp:
		return tsm.KeyPageUp, true
	case tcell.KeyPgDn:
		return tsm.KeyPageDown, true
	case tcell.KeyInsert:
		return tsm.KeyInsert, true
	case tcell.KeyDelete:
		return tsm.KeyDelete, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return tsm.KeyBackspace, true
	case tcell.KeyTab, tcell.KeyBacktab:
		return tsm.KeyTab, true
	case tcell.KeyEnter:
		return tsm.KeyEnter, true
	case tcell.KeyEscape:
		return tsm.KeyEscape, true
	case tcell.KeyF1:
		return tsm.KeyF1, true
	case tcell.KeyF2:
		return tsm.KeyF2, true
	case tcell.KeyF3:
		return tsm.KeyF3, true
	case tcell.KeyF4:
		return tsm.KeyF4, true
	case tcell.KeyF5:
		return tsm.KeyF5, true
	case tcell.KeyF6:
		return tsm.KeyF6, true
	case tcell.KeyF7:
		return tsm.KeyF7, true
	case tcell.KeyF8:
		return tsm.KeyF8, true
	case tcell.KeyF9:
		return tsm.KeyF9, true
	case tcell.KeyF10:
		return tsm.KeyF10, true
	case tcell.KeyF11:
		return tsm.KeyF11, true
	case tcell.KeyF12:
		return tsm.KeyF12, true
	}
	return tsm.KeyNone, false
}

func handleMouse(vte *tsm.VTE, e *tcell.EventMouse) {
	x, y := e.Position()
	mods := tcellMods(e.Modifiers())

	if wheel := e.Buttons() & (tcell.WheelUp | tcell.WheelDown); wheel != 0 {
		button := tsm.MouseWheelUp
		if wheel&tcell.WheelDown != 0 {
			button = tsm.MouseWheelDown
		}
		vte.HandleMouse(x, y, 0, 0, button, tsm.MousePress, mods)
		return
	}

	button, kind, ok := tcellButton(e.Buttons())
	if !ok {
		vte.HandleMouse(x, y, 0, 0, tsm.MouseNone, tsm.MouseMotion, mods)
		return
	}
	vte.HandleMouse(x, y, 0, 0, button, kind, mods)
}

var lastButtons tcell.ButtonMask

func tcellButton(b tcell.ButtonMask) (tsm.MouseButton, tsm.MouseEventKind, bool) {
	defer func() { lastButtons = b }()

	switch {
	case b&tcell.Button1 != 0:
		return tsm.MouseLeft, pressOrMotion(lastButtons&tcell.Button1 != 0), true
	case b&tcell.Button2 != 0:
		return tsm.MouseMiddle, pressOrMotion(lastButtons&tcell.Button2 != 0), true
	case b&tcell.Button3 != 0:
		return tsm.MouseRight, pressOrMotion(lastButtons&tcell.Button3 != 0), true
	case lastButtons != 0 && b == 0:
		return tsm.MouseNone, tsm.MouseRelease, true
	}
	return tsm.MouseNone, tsm.MouseMotion, false
}

func pressOrMotion(alreadyDown bool) tsm.MouseEventKind {
	if alreadyDown {
		return tsm.MouseMotion
	}
	return tsm.MousePress
}
