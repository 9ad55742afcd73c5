package tsm

import "github.com/unilibs/uniwidth"

// width returns the terminal column width of a code point: 0 for C0/C1
// controls and combining marks, 1 for normal text, 2 for wide (CJK/emoji)
// text, matching spec.md §4.1's width table. uniwidth treats control
// characters inconsistently across its own tables, so the C0/C1 range is
// special-cased ahead of the delegate call to keep the zero-width
// invariant exact.
func width(r rune) int {
	if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
		return 0
	}
	return uniwidth.RuneWidth(r)
}
