package reader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/rbook/internal/book"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionForwardScenario(t *testing.T) {
	s := newMemorySession(t, scenarioText, 10)

	want := []struct {
		text      string
		remaining int
	}{
		{"abcdefghij", 15},
		{"klmnopqrst", 5},
		{"uvwxy", 0},
		{"Line two", 0},
	}
	for i, w := range want {
		frame, err := s.Next()
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, w.text, frame.Text, "step %d", i)
		assert.Equal(t, w.remaining, s.Remaining(), "step %d", i)
	}
	assert.Equal(t, int64(27), s.LineStart())

	_, err := s.Next()
	assert.ErrorIs(t, err, book.ErrEndOfFile)
	assert.Equal(t, int64(27), s.LineStart(), "end of file must hold position")
}

func TestSessionPreviousWithinLine(t *testing.T) {
	s := newMemorySession(t, scenarioText, 10)
	for n := 0; n < 3; n++ {
		_, err := s.Next()
		require.NoError(t, err)
	}

	frame, err := s.Previous()
	require.NoError(t, err)
	assert.Equal(t, "klmnopqrst", frame.Text)
	assert.False(t, s.AtLineStart())

	frame, err = s.Previous()
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", frame.Text)
	assert.True(t, s.AtLineStart())

	_, err = s.Previous()
	assert.ErrorIs(t, err, book.ErrStartOfFile)
	assert.True(t, s.AtLineStart())
	assert.Equal(t, 0, s.WindowIndex())
	assert.Equal(t, int64(0), s.LineStart())
}

func TestSessionPreviousAcrossLinesShowsTail(t *testing.T) {
	s := newMemorySession(t, scenarioText, 10)
	for n := 0; n < 4; n++ {
		_, err := s.Next()
		require.NoError(t, err)
	}

	var got []string
	for n := 0; n < 3; n++ {
		frame, err := s.Previous()
		require.NoError(t, err)
		got = append(got, frame.Text)
	}
	assert.Equal(t, []string{"uvwxy", "klmnopqrst", "abcdefghij"}, got)
	assert.Equal(t, int64(0), s.LineStart())

	got = got[:0]
	for n := 0; n < 3; n++ {
		frame, err := s.Next()
		require.NoError(t, err)
		got = append(got, frame.Text)
	}
	assert.Equal(t, []string{"klmnopqrst", "uvwxy", "Line two"}, got)
}

func TestSessionPreviousShortLines(t *testing.T) {
	s := newMemorySession(t, "one\n\n\ntwo\nthree\n", 10)
	for n := 0; n < 3; n++ {
		_, err := s.Next()
		require.NoError(t, err)
	}

	frame, err := s.Previous()
	require.NoError(t, err)
	assert.Equal(t, "two", frame.Text)

	frame, err = s.Previous()
	require.NoError(t, err)
	assert.Equal(t, "one", frame.Text)

	_, err = s.Previous()
	assert.ErrorIs(t, err, book.ErrStartOfFile)

	frame, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, "two", frame.Text)
}

func TestSessionPreviousAtStartIsNoop(t *testing.T) {
	s := newMemorySession(t, scenarioText, 10)
	_, err := s.Previous()
	assert.ErrorIs(t, err, book.ErrStartOfFile)
	assert.Equal(t, int64(0), s.LineStart())
	assert.Equal(t, -1, s.WindowIndex())

	frame, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", frame.Text)
}

func TestSessionNextTerminatesAfterAllSegments(t *testing.T) {
	lines := []string{"short", strings.Repeat("x", 23), "", "  ", "多字节字符的行", strings.Repeat("y", 7)}
	content := strings.Join(lines, "\n")
	width := 7

	expected := 0
	for _, line := range lines {
		n := len([]rune(strings.TrimSpace(line)))
		expected += (n + width - 1) / width
	}

	s := newMemorySession(t, content, width)
	steps := 0
	for {
		_, err := s.Next()
		if errors.Is(err, book.ErrEndOfFile) {
			break
		}
		require.NoError(t, err)
		steps++
		require.LessOrEqual(t, steps, expected, "NextLine did not terminate")
	}
	assert.Equal(t, expected, steps)
}

func TestSessionProgress(t *testing.T) {
	s := newMemorySession(t, scenarioText, 10)
	for n := 0; n < 4; n++ {
		_, err := s.Next()
		require.NoError(t, err)
	}
	p := s.Progress()
	assert.Equal(t, "memory.txt", p.Path)
	assert.Equal(t, int64(len(scenarioText)), p.Size)
	assert.Equal(t, int64(27), p.Offset)
	assert.InDelta(t, 75.0, p.Percent, 0.001)
}

func TestSessionResumesFromOffset(t *testing.T) {
	data := []byte(scenarioText)
	cursor := book.NewCursor(bytes.NewReader(data), int64(len(data)))
	s, err := NewSession("memory.txt", cursor, 10, 27)
	require.NoError(t, err)

	frame, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "Line two", frame.Text)

	frame, err = s.Previous()
	require.NoError(t, err)
	assert.Equal(t, "uvwxy", frame.Text)
}

func TestOpenFromPercent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	content := "第一行内容\n第二行内容\n第三行内容\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	log, _ := newTestLogger()

	s, err := Open(Options{Path: path, Width: 20, FromPercent: true, Percent: 34}, log)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	// 34% of 48 bytes is offset 16, the first byte of the second line.
	frame, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "第二行内容", frame.Text)
	assert.Equal(t, int64(16), frame.Offset)
}

func TestOpenFromPercentFallsBackToStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("tiny\n"), 0o644))
	log, hook := newTestLogger()

	s, err := Open(Options{Path: path, Width: 20, FromPercent: true, Percent: 100}, log)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()
	assert.Equal(t, int64(0), s.LineStart())
	assert.True(t, hasEntry(hook, logrus.WarnLevel, "no utf-8 boundary after requested position, starting at the beginning"))
}

func TestOpenMissingBookFails(t *testing.T) {
	log, _ := newTestLogger()
	_, err := Open(Options{Path: filepath.Join(t.TempDir(), "missing.txt"), Width: 10}, log)
	assert.True(t, book.IsIOError(err))
}

func TestOpenRejectsOffsetPastEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0o644))
	log, _ := newTestLogger()
	_, err := Open(Options{Path: path, Width: 10, Offset: 99}, log)
	assert.True(t, book.IsIOError(err))
}
