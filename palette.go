package tsm

import colorful "github.com/lucasb-eyer/go-colorful"

// numPaletteColors is the size of the indexed-color table: the 16
// ANSI colors plus the 240 extended indices SGR's `38;5;n`/`48;5;n` form
// can address.
const numPaletteColors = 256

// defaultPalette is the standard 16-color ANSI palette (indices 16-255
// are filled in by init() with the 6x6x6 cube + grayscale ramp, matching
// xterm's 256-color layout).
var defaultPalette [numPaletteColors][3]byte

func init() {
	base := [16][3]byte{
		{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
		{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
		{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	for i, c := range base {
		defaultPalette[i] = c
	}
	ramp := [6]byte{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				defaultPalette[i] = [3]byte{ramp[r], ramp[g], ramp[b]}
				i++
			}
		}
	}
	for g := 0; g < 24; g++ {
		v := byte(8 + g*10)
		defaultPalette[i] = [3]byte{v, v, v}
		i++
	}
}

// namedPalettes are the alternative 16-color ANSI palettes spec.md §6
// names, keyed by the hex literals of their 16 base colors (indices
// 0-15), parsed through go-colorful the way a CSS/terminal-theme loader
// would rather than hand-typed byte triples.
var namedPalettes = map[string][16]string{
	"solarized": {
		"#073642", "#dc322f", "#859900", "#b58900",
		"#268bd2", "#d33682", "#2aa198", "#eee8d5",
		"#002b36", "#cb4b16", "#586e75", "#657b83",
		"#839496", "#6c71c4", "#93a1a1", "#fdf6e3",
	},
	"solarized-black": {
		"#073642", "#dc322f", "#859900", "#b58900",
		"#268bd2", "#d33682", "#2aa198", "#002b36",
		"#002b36", "#cb4b16", "#586e75", "#657b83",
		"#839496", "#6c71c4", "#93a1a1", "#fdf6e3",
	},
	"solarized-white": {
		"#073642", "#dc322f", "#859900", "#b58900",
		"#268bd2", "#d33682", "#2aa198", "#fdf6e3",
		"#002b36", "#cb4b16", "#586e75", "#657b83",
		"#839496", "#6c71c4", "#93a1a1", "#fdf6e3",
	},
	"soft-black": {
		"#262626", "#d78787", "#87af87", "#d7af87",
		"#8787af", "#af87af", "#87afaf", "#d0d0d0",
		"#626262", "#d78787", "#87af87", "#d7af87",
		"#8787af", "#af87af", "#87afaf", "#e4e4e4",
	},
	"base16-dark": {
		"#181818", "#ab4642", "#a1b56c", "#f7ca88",
		"#7cafc2", "#ba8baf", "#86c1b9", "#d8d8d8",
		"#585858", "#ab4642", "#a1b56c", "#f7ca88",
		"#7cafc2", "#ba8baf", "#86c1b9", "#f8f8f8",
	},
	"base16-light": {
		"#d8d8d8", "#ab4642", "#a1b56c", "#f7ca88",
		"#7cafc2", "#ba8baf", "#86c1b9", "#181818",
		"#585858", "#ab4642", "#a1b56c", "#f7ca88",
		"#7cafc2", "#ba8baf", "#86c1b9", "#181818",
	},
}

// SetPalette installs one of spec.md §6's named palettes ("solarized",
// "solarized-black", "solarized-white", "soft-black", "base16-dark",
// "base16-light", "custom", or "" for the compiled-in default) as the
// VTE's indexed-color table. "custom" re-applies the most recently
// installed SetCustomPalette table.
func (v *VTE) SetPalette(name string) error {
	switch name {
	case "", "default":
		v.palette = defaultPalette
		return nil
	case "custom":
		if !v.hasCustom {
			return newErr("set_palette", CodeNotFound, "no custom palette installed")
		}
		v.palette = v.customPalette
		return nil
	}
	hexes, ok := namedPalettes[name]
	if !ok {
		return newErr("set_palette", CodeNotFound, "unknown palette %q", name)
	}
	p := defaultPalette
	for i, hex := range hexes {
		c, err := colorful.Hex(hex)
		if err != nil {
			return newErr("set_palette", CodeInvalidArgument, "palette %q entry %d: %v", name, i, err)
		}
		r, g, b := c.RGB255()
		p[i] = [3]byte{r, g, b}
	}
	v.palette = p
	return nil
}

// SetCustomPalette installs a caller-provided full 256-entry palette and
// selects it, addressable again later via SetPalette("custom").
func (v *VTE) SetCustomPalette(p [numPaletteColors][3]byte) {
	v.customPalette = p
	v.hasCustom = true
	v.palette = p
}

// PaletteColor returns the RGB triple for indexed color code (0-255).
func (v *VTE) PaletteColor(code int) (r, g, b byte) {
	if code < 0 || code >= numPaletteColors {
		return 0, 0, 0
	}
	c := v.palette[code]
	return c[0], c[1], c[2]
}

// ResolveColor returns attr's foreground (or background) as an RGB
// triple: the literal RGB bytes if the code is negative, else a palette
// lookup.
func (v *VTE) ResolveColor(code int16, rgb [3]byte) (r, g, b byte) {
	if code < 0 {
		return rgb[0], rgb[1], rgb[2]
	}
	return v.PaletteColor(int(code))
}
