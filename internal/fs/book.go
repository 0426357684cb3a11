// Package fs checks files before they enter the catalog.
package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sampleSize is how much of the head of a book is sniffed by CheckBook.
const sampleSize = 4096

// maxInvalidPercent bounds the share of malformed UTF-8 sequences a book may
// carry. Readers show them as U+FFFD.
const maxInvalidPercent = 5

var (
	ErrNotText             = errors.New("file does not look like text")
	ErrUnsupportedEncoding = errors.New("only utf-8 text is supported")
)

// Encoding is the Unicode encoding announced by a byte order mark.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "utf-8 with bom"
	case EncodingUTF16:
		return "utf-16"
	default:
		return "utf-8"
	}
}

// BookFile describes a file accepted as a readable book.
type BookFile struct {
	Path     string
	Size     int64
	Encoding Encoding
}

// Title derives a display title from the file name.
func (b BookFile) Title() string {
	base := filepath.Base(b.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CheckBook resolves path to an absolute location and sniffs its head to
// make sure it is UTF-8 text. UTF-16 files are rejected since offsets are
// resolved on UTF-8 boundaries.
func CheckBook(path string) (BookFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return BookFile{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return BookFile{}, err
	}
	if info.IsDir() {
		return BookFile{}, fmt.Errorf("%s is a directory", abs)
	}

	head, err := readHead(abs)
	if err != nil {
		return BookFile{}, err
	}
	enc, body := DetectEncoding(head)
	if enc == EncodingUTF16 {
		return BookFile{}, fmt.Errorf("%s is %s: %w", abs, enc, ErrUnsupportedEncoding)
	}
	if !looksLikeText(body, int64(len(head)) < info.Size()) {
		return BookFile{}, fmt.Errorf("%s: %w", abs, ErrNotText)
	}
	return BookFile{Path: abs, Size: info.Size(), Encoding: enc}, nil
}

// DetectEncoding reports the encoding announced by a byte order mark at the
// start of head and returns head with the UTF-8 BOM removed.
func DetectEncoding(head []byte) (Encoding, []byte) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), head)
	switch {
	case err != nil || bytes.Equal(decoded, head):
		return EncodingUTF8, head
	case len(head)-len(decoded) == len(utf8BOM) && bytes.Equal(decoded, head[len(utf8BOM):]):
		return EncodingUTF8BOM, decoded
	default:
		return EncodingUTF16, decoded
	}
}

const utf8BOM = "\ufeff"

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return io.ReadAll(io.LimitReader(f, sampleSize))
}

// looksLikeText rejects NUL bytes and heads dominated by malformed UTF-8.
// A rune cut off by the sample limit does not count against the file.
func looksLikeText(sample []byte, truncated bool) bool {
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	runes, invalid := 0, 0
	for len(sample) > 0 {
		r, size := utf8.DecodeRune(sample)
		if r == utf8.RuneError && size == 1 {
			if truncated && !utf8.FullRune(sample) {
				break
			}
			invalid++
		}
		runes++
		sample = sample[size:]
	}
	return invalid*100 <= runes*maxInvalidPercent
}
