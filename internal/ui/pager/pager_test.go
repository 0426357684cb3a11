package pager

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/rbook/internal/reader"
)

func TestReadKeyEventDecodesNavigationKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  reader.Command
	}{
		{"page down", "\x1b[6~", reader.CommandNextLine},
		{"page up", "\x1b[5~", reader.CommandPreviousLine},
		{"end csi tilde", "\x1b[4~", reader.CommandExit},
		{"end csi F", "\x1b[F", reader.CommandExit},
		{"end ss3", "\x1bOF", reader.CommandExit},
		{"lone escape", "\x1b", reader.CommandExit},
		{"arrow down", "\x1b[B", reader.CommandUnsupported},
		{"home", "\x1b[H", reader.CommandUnsupported},
		{"delete", "\x1b[3~", reader.CommandUnsupported},
		{"letter", "q", reader.CommandUnsupported},
		{"ctrl-c", "\x03", reader.CommandUnsupported},
		{"multibyte rune", "ż", reader.CommandUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := readKeyEvent(bufio.NewReader(strings.NewReader(tt.input)), nil)
			if err != nil {
				t.Fatalf("readKeyEvent(%q): %v", tt.input, err)
			}
			if got := commandForKey(ev); got != tt.want {
				t.Fatalf("commandForKey(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadKeyEventConsumesWholeSequence(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\x1b[6~\x1b[5~ż\x1b[4~"))
	want := []keyKind{keyPageDown, keyPageUp, keyRune, keyEnd}
	for i, kind := range want {
		ev, err := readKeyEvent(r, nil)
		if err != nil {
			t.Fatalf("key %d: %v", i, err)
		}
		if ev.kind != kind {
			t.Fatalf("key %d kind = %v, want %v", i, ev.kind, kind)
		}
	}
	if _, err := readKeyEvent(r, nil); err == nil {
		t.Fatal("expected error once input is exhausted")
	}
}

func TestReadKeyEventDecodesRune(t *testing.T) {
	ev, err := readKeyEvent(bufio.NewReader(strings.NewReader("汉")), nil)
	if err != nil {
		t.Fatalf("readKeyEvent: %v", err)
	}
	if ev.kind != keyRune || ev.r != '汉' {
		t.Fatalf("got %+v, want rune 汉", ev)
	}
}

func TestLineRendererErasesPreviousSegment(t *testing.T) {
	var out bytes.Buffer
	r := NewLineRenderer(&out)

	if err := r.Render(reader.Frame{Text: "汉字ab"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := r.Render(reader.Frame{Text: "next"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := r.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	want := "\r汉字ab" + "\r" + strings.Repeat(" ", 6) + "\rnext" + "\r" + strings.Repeat(" ", 4) + "\r"
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestLineRendererSanitizesAndExpandsTabs(t *testing.T) {
	var out bytes.Buffer
	r := NewLineRenderer(&out)
	if err := r.Render(reader.Frame{Text: "a\tb\x1b[2J"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := out.String(); got != "\ra   b?[2J" {
		t.Fatalf("output = %q", got)
	}
}

func TestLineRendererFlushesBufferedWriter(t *testing.T) {
	var out bytes.Buffer
	w := bufio.NewWriter(&out)
	r := NewLineRenderer(w)
	if err := r.Render(reader.Frame{Text: "hello"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := out.String(); got != "\rhello" {
		t.Fatalf("expected flushed output, got %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken tty") }

func TestLineRendererReportsWriteError(t *testing.T) {
	r := NewLineRenderer(failingWriter{})
	if err := r.Render(reader.Frame{Text: "x"}); err == nil {
		t.Fatal("expected write error")
	}
}

func TestTerminalWidthUsesTermSize(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "tty"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	orig := termGetSize
	t.Cleanup(func() { termGetSize = orig })

	termGetSize = func(int) (int, int, error) { return 132, 40, nil }
	term := &Terminal{input: f, outputFile: f}
	if w, err := term.Width(); err != nil || w != 132 {
		t.Fatalf("Width = (%d,%v), want (132,nil)", w, err)
	}

	termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	if _, err := term.Width(); err == nil {
		t.Fatal("expected error when size is unavailable")
	}
}

func TestTerminalCloseIsIdempotent(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{writer: bufio.NewWriter(&out)}
	if err := term.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := term.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if got := out.String(); got != "\x1b[?25h" {
		t.Fatalf("Close should show the cursor once, wrote %q", got)
	}
}
