package book

import (
	"io"
	"slices"
)

const scanChunkSize = 4096

// Scanner locates earlier lines by reading bytes backward from an offset.
// No line index is kept: every call walks the raw bytes again.
type Scanner struct {
	src   io.ReaderAt
	chunk int
}

// NewScanner returns a Scanner reading from src.
func NewScanner(src io.ReaderAt) *Scanner {
	return &Scanner{src: src, chunk: scanChunkSize}
}

// PreviousLine returns the start offset of the closest non-empty logical line
// that ends before offset. offset is normally the start of the line on screen;
// when it falls inside a line (a resumed session), the part of that line
// before offset counts as the previous line. ErrStartOfFile is returned when
// only blank lines, or nothing, precede offset.
func (s *Scanner) PreviousLine(offset int64) (int64, error) {
	rd := &backwardReader{src: s.src, chunk: s.chunk}
	pos := offset
	for pos > 0 {
		start, raw, err := s.lineBefore(rd, pos)
		if err != nil {
			return 0, err
		}
		if trimLine(raw, start == 0) != "" {
			return start, nil
		}
		pos = start
	}
	return 0, ErrStartOfFile
}

// lineBefore collects the bytes of the line that ends at end. A terminator
// right before end closes that line; the next terminator going backward, or
// the start of the file, opens it.
func (s *Scanner) lineBefore(rd *backwardReader, end int64) (int64, []byte, error) {
	pos := end
	b, err := rd.byteAt(pos - 1)
	if err != nil {
		return 0, nil, err
	}
	if b == '\n' {
		pos--
	}

	var reversed []byte
	for pos > 0 {
		b, err := rd.byteAt(pos - 1)
		if err != nil {
			return 0, nil, err
		}
		if b == '\n' {
			break
		}
		reversed = append(reversed, b)
		pos--
	}
	slices.Reverse(reversed)
	return pos, reversed, nil
}

type backwardReader struct {
	src   io.ReaderAt
	chunk int
	buf   []byte
	start int64
}

// byteAt returns the byte at off, refilling the buffer with the chunk that
// ends at off when it is not cached.
func (r *backwardReader) byteAt(off int64) (byte, error) {
	if off >= r.start && off < r.start+int64(len(r.buf)) {
		return r.buf[off-r.start], nil
	}
	end := off + 1
	start := max(end-int64(r.chunk), 0)
	size := int(end - start)
	if cap(r.buf) < size {
		r.buf = make([]byte, size)
	}
	r.buf = r.buf[:size]
	n, err := r.src.ReadAt(r.buf, start)
	if n < size {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		r.buf = r.buf[:0]
		return 0, &IOError{Op: "read", Offset: start, Err: err}
	}
	r.start = start
	return r.buf[off-start], nil
}
