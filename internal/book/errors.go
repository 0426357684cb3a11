package book

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfFile is returned by forward reads once no further non-empty line exists.
	ErrEndOfFile = errors.New("end of file")
	// ErrStartOfFile is returned by backward scans when no earlier non-empty line exists.
	ErrStartOfFile = errors.New("start of file")
	// ErrBoundaryNotFound means no complete UTF-8 character starts at or after the requested position.
	ErrBoundaryNotFound = errors.New("no utf-8 boundary found")
	// ErrEmptyLine marks a whitespace-only line; readers retry past it.
	ErrEmptyLine = errors.New("empty line")
)

// IOError wraps a failure of the underlying file or device.
type IOError struct {
	Op     string
	Offset int64
	Err    error
}

func (e *IOError) Error() string {
	if e.Op == "open" || e.Op == "stat" {
		return fmt.Sprintf("%s book: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err carries an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
