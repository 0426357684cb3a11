package book

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestResolvePercentLandsOnCharacterBoundary(t *testing.T) {
	content := []byte(strings.Repeat("汉字 mixed ascii é ü 🙂\n", 40))
	src := bytes.NewReader(content)
	size := int64(len(content))

	for step := 0; step <= 1000; step++ {
		percent := float64(step) / 10
		off, err := ResolvePercent(src, size, percent)
		if err != nil && !errors.Is(err, ErrBoundaryNotFound) {
			t.Fatalf("percent %.1f: unexpected error %v", percent, err)
		}
		if off == 0 {
			continue
		}
		if !utf8.RuneStart(content[off]) {
			t.Fatalf("percent %.1f: offset %d is inside a character", percent, off)
		}
		if r, _ := utf8.DecodeRune(content[off:]); r == utf8.RuneError {
			t.Fatalf("percent %.1f: offset %d does not start a valid character", percent, off)
		}
		candidate := int64(math.Floor(float64(size) * percent / 100))
		if off < candidate || off > candidate+utf8.UTFMax {
			t.Fatalf("percent %.1f: offset %d too far from candidate %d", percent, off, candidate)
		}
	}
}

func TestResolvePercentSkipsPartialCharacter(t *testing.T) {
	content := []byte("abcd汉efg")

	// 40% of 10 bytes is offset 4, the lead byte of 汉.
	off, err := ResolvePercent(bytes.NewReader(content), int64(len(content)), 40)
	if err != nil || off != 4 {
		t.Fatalf("expected lead byte offset 4, got %d, %v", off, err)
	}

	// 50% lands on a continuation byte; the next whole character is 'e'.
	off, err = ResolvePercent(bytes.NewReader(content), int64(len(content)), 50)
	if err != nil || off != 7 {
		t.Fatalf("expected offset 7, got %d, %v", off, err)
	}
}

func TestResolvePercentNearEndOfFile(t *testing.T) {
	content := []byte("abcdefgh汉z")
	// 90% of 12 bytes is offset 10, the last continuation byte of 汉.
	off, err := ResolvePercent(bytes.NewReader(content), int64(len(content)), 90)
	if err != nil || off != 11 {
		t.Fatalf("expected offset 11, got %d, %v", off, err)
	}
}

func TestResolvePercentFallsBackToStart(t *testing.T) {
	content := []byte("plain text")
	off, err := ResolvePercent(bytes.NewReader(content), int64(len(content)), 100)
	if !errors.Is(err, ErrBoundaryNotFound) || off != 0 {
		t.Fatalf("expected fallback to 0 with ErrBoundaryNotFound, got %d, %v", off, err)
	}

	garbage := bytes.Repeat([]byte{0x80}, 16)
	off, err = ResolvePercent(bytes.NewReader(garbage), int64(len(garbage)), 10)
	if !errors.Is(err, ErrBoundaryNotFound) || off != 0 {
		t.Fatalf("expected fallback on invalid data, got %d, %v", off, err)
	}
}

func TestResolvePercentClampsInput(t *testing.T) {
	content := []byte("0123456789")
	src := bytes.NewReader(content)
	if off, err := ResolvePercent(src, 10, -5); err != nil || off != 0 {
		t.Fatalf("negative percent = %d, %v", off, err)
	}
	if off, err := ResolvePercent(src, 10, math.NaN()); err != nil || off != 0 {
		t.Fatalf("NaN percent = %d, %v", off, err)
	}
	if off, err := ResolvePercent(src, 0, 50); err != nil || off != 0 {
		t.Fatalf("empty file = %d, %v", off, err)
	}
	if off, err := ResolvePercent(src, 10, 30); err != nil || off != 3 {
		t.Fatalf("ascii percent = %d, %v", off, err)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		offset, size int64
		want         float64
	}{
		{0, 0, 0},
		{0, 100, 0},
		{25, 100, 25},
		{100, 100, 100},
		{150, 100, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.offset, tt.size); got != tt.want {
			t.Fatalf("Percent(%d, %d)=%v want %v", tt.offset, tt.size, got, tt.want)
		}
	}
}
