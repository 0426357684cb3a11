package book

import (
	"errors"
	"io"
	"math"
	"unicode/utf8"
)

// ClampPercent limits percent to [0,100]. NaN maps to 0.
func ClampPercent(percent float64) float64 {
	switch {
	case math.IsNaN(percent), percent < 0:
		return 0
	case percent > 100:
		return 100
	default:
		return percent
	}
}

// Percent expresses offset as a percentage of size.
func Percent(offset, size int64) float64 {
	if size <= 0 || offset <= 0 {
		return 0
	}
	if offset >= size {
		return 100
	}
	return float64(offset) / float64(size) * 100
}

// ResolvePercent converts a percentage of the file into an offset that starts
// a complete UTF-8 character. Bytes are probed one at a time from
// floor(size*percent/100); as soon as the probe decodes, the offset of its
// first byte is returned. A probe that fails to decode within utf8.UTFMax
// bytes, or runs into the end of the file, is discarded and the scan
// restarts one byte further on.
//
// ErrBoundaryNotFound is returned, together with offset 0, when the scan
// reaches the end of the file without finding a boundary.
func ResolvePercent(src io.ReaderAt, size int64, percent float64) (int64, error) {
	if size <= 0 {
		return 0, nil
	}
	candidate := int64(math.Floor(float64(size) * ClampPercent(percent) / 100))

	probe := make([]byte, 0, utf8.UTFMax)
	probeStart := candidate
	pos := candidate
	var one [1]byte
	for probeStart < size {
		if pos < size {
			n, err := src.ReadAt(one[:], pos)
			if n == 0 && err != nil && !errors.Is(err, io.EOF) {
				return 0, &IOError{Op: "read", Offset: pos, Err: err}
			}
			if n == 1 {
				probe = append(probe, one[0])
				pos++
				if utf8.Valid(probe) {
					return pos - int64(len(probe)), nil
				}
				if len(probe) < utf8.UTFMax {
					continue
				}
			}
		}
		probe = probe[:0]
		probeStart++
		pos = probeStart
	}
	return 0, ErrBoundaryNotFound
}
