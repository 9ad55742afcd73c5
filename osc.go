package tsm

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// OSCFunc receives a recognized-but-forwarded OSC payload: window/icon
// title changes (Ps 0/1/2), per spec.md §4.4's "currently forwarded
// only".
type OSCFunc func(ps int, text string)

// WithOSCFunc installs the title-forwarding callback.
func WithOSCFunc(f OSCFunc) Option {
	return func(v *VTE) { v.oscCB = f }
}

// oscDispatch parses a buffered OSC payload ("Ps;Pt[;Pt...]") and applies
// the internally recognized forms spec.md §4.4 lists; anything else is
// forwarded to oscCB only if it looks like a title-setting sequence (Ps
// 0/1/2), matching "currently forwarded only".
func (v *VTE) oscDispatch() {
	payload := string(v.oscBuf)
	parts := strings.SplitN(payload, ";", 2)
	ps, err := strconv.Atoi(parts[0])
	if err != nil {
		v.logf(SeverityDebug, "malformed OSC %q", payload)
		return
	}
	rest := ""
	if len(parts) > 1 {
		rest = parts[1]
	}

	switch ps {
	case 0, 1, 2:
		if v.oscCB != nil {
			v.oscCB(ps, rest)
		}
	case 4:
		v.oscSetPaletteEntry(rest)
	case 10:
		v.oscSetDefaultColor(rest, true)
	case 11:
		v.oscSetDefaultColor(rest, false)
	case 104:
		v.palette = defaultPalette
	default:
		v.logf(SeverityDebug, "unhandled OSC %d", ps)
	}
}

// oscSetPaletteEntry implements "4;n;#RRGGBB": palette entry override.
func (v *VTE) oscSetPaletteEntry(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 {
		return
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil || idx < 0 || idx >= numPaletteColors {
		return
	}
	c, err := colorful.Hex(parts[1])
	if err != nil {
		v.logf(SeverityDebug, "OSC 4: bad color %q", parts[1])
		return
	}
	r, g, b := c.RGB255()
	v.palette[idx] = [3]byte{r, g, b}
}

// oscSetDefaultColor implements OSC 10/11 (default foreground/
// background).
func (v *VTE) oscSetDefaultColor(rest string, fg bool) {
	c, err := colorful.Hex(rest)
	if err != nil {
		v.logf(SeverityDebug, "OSC 10/11: bad color %q", rest)
		return
	}
	r, g, b := c.RGB255()
	if fg {
		v.curAttr.FGCode = -1
		v.curAttr.FR, v.curAttr.FG, v.curAttr.FB = r, g, b
	} else {
		v.curAttr.BGCode = -1
		v.curAttr.BR, v.curAttr.BG, v.curAttr.BB = r, g, b
	}
}
