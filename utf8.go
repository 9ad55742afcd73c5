package tsm

// ReplacementChar is substituted for any malformed byte sequence, matching
// Unicode's recommendation and TSM_UCS4_REPLACEMENT.
const ReplacementChar rune = 0xfffd

// utf8State tracks the in-progress decode across successive Decode calls.
type utf8State int

const (
	utf8Ground utf8State = iota
	utf8Need1
	utf8Need2
	utf8Need3
)

// UTF8Decoder turns a byte stream into code points one byte at a time,
// substituting ReplacementChar for any invalid sequence and resuming
// cleanly on the next leader byte, as spec.md §4.1 requires.
type UTF8Decoder struct {
	state utf8State
	accum uint32
	need  int
	// min is the lowest valid code point for the sequence length started,
	// used to reject overlong encodings.
	min uint32
	// pending holds a code point decoded while resynchronizing after a
	// broken sequence, to be returned on the following Decode call.
	pending    rune
	hasPending bool
}

// Decode feeds one byte and reports whether it completed a code point. When
// complete is false, r is meaningless and more bytes are required. A byte
// that cannot continue the sequence in progress yields ReplacementChar for
// the broken sequence; b is still fed into the state machine via step, and
// if that immediately resolves a code point too, it is queued and surfaces
// on the following Decode call instead of being dropped.
func (d *UTF8Decoder) Decode(b byte) (r rune, complete bool) {
	if d.hasPending {
		pending := d.pending
		d.hasPending = false
		if r2, c2 := d.step(b); c2 {
			d.pending, d.hasPending = r2, true
		}
		return pending, true
	}
	return d.step(b)
}

// step runs b through the state machine from wherever it currently sits.
func (d *UTF8Decoder) step(b byte) (rune, bool) {
	switch d.state {
	case utf8Ground:
		return d.lead(b)
	default:
		if b&0xc0 != 0x80 {
			// Not a continuation byte: the in-progress sequence is broken.
			// Reprocess b as a fresh leader; if that completes immediately
			// (ASCII, or itself invalid), stash it for the next call so
			// this call can still report the aborted run as replacement.
			d.state = utf8Ground
			d.accum, d.need, d.min = 0, 0, 0
			if r2, c2 := d.lead(b); c2 {
				d.pending, d.hasPending = r2, true
			}
			return ReplacementChar, true
		}
		d.accum = d.accum<<6 | uint32(b&0x3f)
		d.need--
		if d.need > 0 {
			return 0, false
		}
		cp := d.accum
		d.state = utf8Ground
		d.accum, d.need = 0, 0
		if cp < d.min || cp > 0x10ffff || (cp >= 0xd800 && cp <= 0xdfff) {
			return ReplacementChar, true
		}
		return rune(cp), true
	}
}

func (d *UTF8Decoder) lead(b byte) (rune, bool) {
	switch {
	case b&0x80 == 0:
		return rune(b), true
	case b&0xe0 == 0xc0:
		d.state = utf8Need1
		d.need = 1
		d.accum = uint32(b & 0x1f)
		d.min = 0x80
		return 0, false
	case b&0xf0 == 0xe0:
		d.state = utf8Need2
		d.need = 2
		d.accum = uint32(b & 0x0f)
		d.min = 0x800
		return 0, false
	case b&0xf8 == 0xf0:
		d.state = utf8Need3
		d.need = 3
		d.accum = uint32(b & 0x07)
		d.min = 0x10000
		return 0, false
	default:
		// Stray continuation byte or invalid leader (0xf8-0xff).
		return ReplacementChar, true
	}
}

// Reset returns the decoder to its initial state, discarding any
// in-progress sequence.
func (d *UTF8Decoder) Reset() {
	*d = UTF8Decoder{}
}

// EncodeUCS4 encodes a code point back to UTF-8, the inverse of Decode,
// used by the round-trip property in spec.md §8.
func EncodeUCS4(r rune) []byte {
	switch {
	case r < 0 || r > 0x10ffff || (r >= 0xd800 && r <= 0xdfff):
		r = ReplacementChar
	}
	switch {
	case r < 0x80:
		return []byte{byte(r)}
	case r < 0x800:
		return []byte{byte(0xc0 | r>>6), byte(0x80 | r&0x3f)}
	case r < 0x10000:
		return []byte{byte(0xe0 | r>>12), byte(0x80 | (r>>6)&0x3f), byte(0x80 | r&0x3f)}
	default:
		return []byte{byte(0xf0 | r>>18), byte(0x80 | (r>>12)&0x3f), byte(0x80 | (r>>6)&0x3f), byte(0x80 | r&0x3f)}
	}
}

// DecodeUCS4 decodes a single UTF-8 sequence from the start of p, returning
// the code point and its byte length, or (ReplacementChar, 1) if p does not
// start with a valid sequence. The inverse of EncodeUCS4, for spec.md §8's
// UTF-8 round-trip property.
func DecodeUCS4(p []byte) (r rune, n int) {
	if len(p) == 0 {
		return ReplacementChar, 0
	}
	var d UTF8Decoder
	for i, b := range p {
		if cp, complete := d.Decode(b); complete {
			if cp == ReplacementChar && string(p[:i+1]) != string(ReplacementChar) {
				return ReplacementChar, 1
			}
			return cp, i + 1
		}
	}
	return ReplacementChar, 1
}
