package textutil

import "strings"

// bidiControls reorder or hide surrounding text when a terminal honours them.
var bidiControls = map[rune]struct{}{
	0x061C: {},
	0x200E: {},
	0x200F: {},
	0x202A: {},
	0x202B: {},
	0x202C: {},
	0x202D: {},
	0x202E: {},
	0x2066: {},
	0x2067: {},
	0x2068: {},
	0x2069: {},
	0xFEFF: {},
}

// SanitizeTerminalText replaces control characters so book text cannot
// inject terminal escape sequences when rendered. Bidi controls and stray
// byte order marks are dropped.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			return sanitize(text)
		}
	}
	return text
}

func requiresSanitization(r rune) bool {
	if r == '\t' {
		return false
	}
	if isBidiControl(r) {
		return true
	}
	return (r >= 0 && r < 0x20) || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

func sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isBidiControl(r):
		case r == '\t':
			b.WriteRune(r)
		case r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isBidiControl(r rune) bool {
	_, ok := bidiControls[r]
	return ok
}
