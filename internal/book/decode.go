package book

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// decodeLine converts raw line bytes into text. Invalid sequences become
// U+FFFD instead of failing the read. A leading UTF-8 BOM is dropped when the
// bytes start the file.
func decodeLine(raw []byte, atFileStart bool) string {
	enc := unicode.UTF8
	if atFileStart {
		enc = unicode.UTF8BOM
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(out)
}

// trimLine returns the logical line text: terminators and surrounding
// whitespace removed.
func trimLine(raw []byte, atFileStart bool) string {
	return strings.TrimSpace(decodeLine(raw, atFileStart))
}
