package tsm

// WriteFunc is the VTE's single write-back callback: bytes the caller
// must write verbatim to the child process (DSR/DA replies, keyboard and
// mouse translations), per spec.md §6.
type WriteFunc func(p []byte)

// MouseModeFunc is invoked whenever the VTE's effective mouse-tracking
// mode or coordinate kind changes, so the collaborator layer can
// install/remove pointer hooks, per spec.md §4.4's mouse encoder table.
type MouseModeFunc func(mode MouseMode, pixel bool)

// VTEFlags mirror the VTE-level flags of the original libtsm
// implementation's public header (TSM_VTE_FLAG_*), kept bit-compatible
// per spec.md §6's "part of the ABI of the library surface".
type VTEFlags uint32

const (
	VTEFlag7Bit VTEFlags = 1 << iota
	VTEFlagLineFeedNewLine
	VTEFlagBackspaceSendsDelete
)

// parseState is one state of the byte-driven parser, named for the
// DEC/ECMA-48 parser diagram states spec.md §4.4 enumerates. Each state
// is a method value bound to the VTE, called once per input byte.
type parseState func(b byte)

// savedCursorState holds what DECSC/DECRC save and restore, per spec.md
// §3's SavedCursor.
type savedCursorState struct {
	x, y       int32
	attr       CellAttr
	gl, gr     int
	origin     bool
	valid      bool
}

// VTE is the byte-driven virtual terminal emulator: it decodes a byte
// stream into UTF-8 code points, tracks parser/escape state, and
// dispatches parsed operations to its Screen, per spec.md §4.4.
type VTE struct {
	refs int32

	screen  *Screen
	write   WriteFunc
	log     LogFunc
	mouseCB MouseModeFunc
	oscCB   OSCFunc

	state parseState

	intermediates []byte
	params        [16]int
	hasParam      [16]bool
	nparams       int
	private       byte // '?', '>', '=' or 0

	oscBuf    []byte
	oscActive bool

	dcsBuf []byte

	utf8 UTF8Decoder

	// charsets: four designator slots plus which are invoked into GL/GR,
	// and a pending single-shift target (SS2/SS3), per spec.md §3.
	g        [4]charset
	gl, gr   int
	glt      int
	gltSet   bool

	saved savedCursorState

	flags VTEFlags

	palette       [numPaletteColors][3]byte
	customPalette [numPaletteColors][3]byte
	hasCustom     bool

	curAttr CellAttr

	cursorKeyMode     bool
	keypadApplication bool
	bracketedPaste    bool

	mouseMode     MouseMode
	mouseSGR      bool
	mousePixel    bool
	lastMouseX    int
	lastMouseY    int
	haveLastMouse bool
}

// Option configures a VTE at construction time, matching the teacher's
// functional-option pattern. Screens take ScreenOption instead.
type Option func(*VTE)

// WithVTELog installs a logging callback on the VTE.
func WithVTELog(f LogFunc) Option {
	return func(v *VTE) { v.log = f }
}

// WithMouseModeFunc installs the mode-change notification callback.
func WithMouseModeFunc(f MouseModeFunc) Option {
	return func(v *VTE) { v.mouseCB = f }
}

// With7BitMode forces 7-bit C1 handling (escape-intro synthesis only;
// raw 0x80-0x9F bytes are never treated as C1 controls).
func With7BitMode(on bool) Option {
	return func(v *VTE) {
		if on {
			v.flags |= VTEFlag7Bit
		} else {
			v.flags &^= VTEFlag7Bit
		}
	}
}

// NewVTE constructs a VTE bound to screen, writing replies via write.
func NewVTE(screen *Screen, write WriteFunc, opts ...Option) *VTE {
	v := &VTE{
		refs:    1,
		screen:  screen.Ref(),
		write:   write,
		curAttr: DefaultAttr,
		flags:   VTEFlag7Bit,
	}
	v.palette = defaultPalette
	for i := range v.g {
		v.g[i] = charsetASCII
	}
	v.state = v.ground
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Ref increments the reference count and returns v.
func (v *VTE) Ref() *VTE { v.refs++; return v }

// Unref decrements the reference count and releases the Screen reference
// once it reaches zero.
func (v *VTE) Unref() {
	v.refs--
	if v.refs <= 0 {
		v.screen.Unref()
	}
}

// Screen returns the Screen this VTE drives.
func (v *VTE) Screen() *Screen { return v.screen }

func (v *VTE) logf(sev Severity, format string, args ...any) {
	v.log.log(sev, "vte", format, args...)
}

func (v *VTE) reply(p []byte) {
	if v.write != nil {
		v.write(p)
	}
}

// Input feeds bytes into the parser. Per spec.md §5's critical test
// invariant, splitting a byte stream at any boundary and calling Input
// once per piece produces the same final Screen state and the same
// write-callback output (with the same byte boundaries) as calling it
// once with the concatenation.
func (v *VTE) Input(data []byte) {
	for _, b := range data {
		v.state(b)
	}
}

// clearParams resets the parser's collected intermediates/params, the DEC
// parser diagram's "clear" action performed on entry to *_ENTRY states.
func (v *VTE) clearParams() {
	v.intermediates = v.intermediates[:0]
	v.nparams = 0
	v.private = 0
	for i := range v.params {
		v.params[i] = 0
		v.hasParam[i] = false
	}
}

func (v *VTE) collect(b byte) {
	if len(v.intermediates) < 2 {
		v.intermediates = append(v.intermediates, b)
	}
}

func (v *VTE) param(b byte) {
	if b == ';' || b == ':' {
		if v.nparams < len(v.params)-1 {
			v.nparams++
		}
		return
	}
	if v.nparams >= len(v.params) {
		return
	}
	v.params[v.nparams] = v.params[v.nparams]*10 + int(b-'0')
	v.hasParam[v.nparams] = true
}

// paramOr returns the i'th CSI parameter, or def if it was not supplied
// (or is explicitly 0 where 0 is not meaningful for that sequence).
func (v *VTE) paramOr(i, def int) int {
	if i > v.nparams || !v.hasParam[i] {
		return def
	}
	if v.params[i] == 0 {
		return def
	}
	return v.params[i]
}

// paramRaw returns the i'th parameter's literal value (0 if unset),
// for sequences (SM/RM, SGR) where 0 is itself meaningful.
func (v *VTE) paramRaw(i int) int {
	if i > v.nparams {
		return 0
	}
	return v.params[i]
}

func (v *VTE) nparam() int {
	if v.nparams == 0 && !v.hasParam[0] {
		return 0
	}
	return v.nparams + 1
}
