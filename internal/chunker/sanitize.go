package chunker

import "strings"

// Sanitize removes characters that Postgres TEXT columns cannot store.
// NUL bytes are stripped entirely, along with all other C0 control
// characters and DEL, keeping newline, carriage return and tab so the
// document's structure survives. Whitespace is never collapsed; chunk
// boundaries depend on the original spacing.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return r
		}
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, s)
}
