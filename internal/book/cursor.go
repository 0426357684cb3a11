package book

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

const cursorBufferSize = 64 * 1024

// Cursor is a buffered, seekable reader over a book's bytes. It tracks the
// absolute offset of the next unread byte so callers never have to account
// for bufio's read-ahead.
type Cursor struct {
	src    io.ReadSeeker
	closer io.Closer
	reader *bufio.Reader
	offset int64
	size   int64
}

// Open opens the book at path positioned at offset 0.
func Open(path string) (*Cursor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, &IOError{Op: "stat", Err: err}
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, &IOError{Op: "open", Err: fmt.Errorf("%s is a directory", path)}
	}
	cursor := NewCursor(file, info.Size())
	cursor.closer = file
	return cursor, nil
}

// NewCursor wraps src, which must be positioned at offset 0 and hold size bytes.
func NewCursor(src io.ReadSeeker, size int64) *Cursor {
	return &Cursor{
		src:    src,
		reader: bufio.NewReaderSize(src, cursorBufferSize),
		size:   size,
	}
}

// Size returns the length of the book in bytes.
func (c *Cursor) Size() int64 {
	return c.size
}

// Tell returns the absolute offset of the next byte ReadNextLine will consume.
func (c *Cursor) Tell() int64 {
	return c.offset
}

// Seek repositions the cursor at an absolute offset.
func (c *Cursor) Seek(offset int64) error {
	if offset < 0 || offset > c.size {
		return &IOError{Op: "seek", Offset: offset, Err: fmt.Errorf("offset outside file of %d bytes", c.size)}
	}
	if _, err := c.src.Seek(offset, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Offset: offset, Err: err}
	}
	c.reader.Reset(c.src)
	c.offset = offset
	return nil
}

// ReadNextLine reads forward to the next non-empty logical line. It returns
// the byte offset where that line starts and its trimmed text. Whitespace-only
// lines are skipped. ErrEndOfFile is returned when the stream is exhausted.
func (c *Cursor) ReadNextLine() (int64, string, error) {
	for {
		start := c.offset
		text, err := c.readLine()
		if errors.Is(err, ErrEmptyLine) {
			continue
		}
		if err != nil {
			return start, "", err
		}
		return start, text, nil
	}
}

func (c *Cursor) readLine() (string, error) {
	start := c.offset
	raw, err := c.reader.ReadBytes('\n')
	c.offset += int64(len(raw))
	if err != nil && !errors.Is(err, io.EOF) {
		return "", &IOError{Op: "read", Offset: start, Err: err}
	}
	if len(raw) == 0 {
		return "", ErrEndOfFile
	}
	text := trimLine(raw, start == 0)
	if text == "" {
		return "", ErrEmptyLine
	}
	return text, nil
}

// ReadAt implements io.ReaderAt without disturbing the sequential position.
func (c *Cursor) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, &IOError{Op: "read", Offset: off, Err: errors.New("negative offset")}
	}
	if ra, ok := c.src.(io.ReaderAt); ok {
		return ra.ReadAt(p, off)
	}

	if _, err := c.src.Seek(off, io.SeekStart); err != nil {
		return 0, &IOError{Op: "seek", Offset: off, Err: err}
	}
	n, err := io.ReadFull(c.src, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	if restoreErr := c.Seek(c.offset); restoreErr != nil && err == nil {
		err = restoreErr
	}
	return n, err
}

// Close releases the underlying file, if the cursor owns one.
func (c *Cursor) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}
