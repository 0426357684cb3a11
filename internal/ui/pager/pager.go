package pager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kk-code-lab/rbook/internal/reader"
	"golang.org/x/term"
)

var (
	errNoTTY        = errors.New("no tty available")
	errReadCanceled = errors.New("key read cancelled")
)

var termGetSize = term.GetSize

// Terminal owns the controlling tty for a reading session. Opening it puts
// the tty into raw mode; Close restores the previous mode.
type Terminal struct {
	input       *os.File
	output      io.Writer
	outputFile  *os.File
	reader      *bufio.Reader
	writer      *bufio.Writer
	restoreTerm *term.State
	cancelR     *os.File
	cancelW     *os.File
	cancelled   atomic.Bool
	cancelOnce  sync.Once
	closeOnce   sync.Once
}

// OpenTerminal opens /dev/tty (stdin/stdout on Windows) and enters raw mode.
func OpenTerminal() (*Terminal, error) {
	t := &Terminal{}
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		if runtime.GOOS != "windows" {
			return nil, err
		}
		t.input = os.Stdin
		t.output = os.Stdout
		t.outputFile = os.Stdout
	} else {
		t.input = tty
		t.output = tty
		t.outputFile = tty
	}
	if t.input == nil {
		return nil, errNoTTY
	}

	t.reader = bufio.NewReader(t.input)
	t.writer = bufio.NewWriter(t.output)

	t.cancelR, t.cancelW, err = os.Pipe()
	if err != nil {
		t.closeInput()
		return nil, err
	}

	rawState, err := term.MakeRaw(int(t.input.Fd()))
	if err != nil {
		_ = t.cancelR.Close()
		_ = t.cancelW.Close()
		t.closeInput()
		return nil, err
	}
	t.restoreTerm = rawState
	return t, nil
}

// Writer returns the buffered tty writer. Renderers flush it after each frame.
func (t *Terminal) Writer() *bufio.Writer {
	return t.writer
}

// Width returns the terminal column count, trying the input descriptor first.
func (t *Terminal) Width() (int, error) {
	var lastErr error
	for _, f := range []*os.File{t.input, t.outputFile} {
		if f == nil {
			continue
		}
		width, _, err := termGetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errNoTTY
	}
	return 0, lastErr
}

// ReadCommand blocks for the next key and maps it to a navigation command.
func (t *Terminal) ReadCommand() (reader.Command, error) {
	ev, err := t.nextKey()
	if err != nil {
		return reader.CommandUnsupported, err
	}
	return commandForKey(ev), nil
}

// Cancel unblocks a pending ReadCommand.
func (t *Terminal) Cancel() {
	t.cancelOnce.Do(func() {
		t.cancelled.Store(true)
		if t.cancelW != nil {
			_, _ = t.cancelW.Write([]byte{1})
		}
	})
}

// Close restores the terminal mode and releases the tty. It is safe to call
// more than once and must run on every exit path of a reading session.
func (t *Terminal) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.Cancel()
		if t.input != nil && t.restoreTerm != nil {
			err = term.Restore(int(t.input.Fd()), t.restoreTerm)
		}
		t.writeString("\x1b[?25h")
		if t.writer != nil {
			_ = t.writer.Flush()
		}
		if t.cancelW != nil {
			_ = t.cancelW.Close()
		}
		if t.cancelR != nil {
			_ = t.cancelR.Close()
		}
		t.closeInput()
	})
	return err
}

func (t *Terminal) canceled() bool {
	return t.cancelled.Load()
}

func (t *Terminal) closeInput() {
	if t.input != nil && t.input.Name() == "/dev/tty" {
		_ = t.input.Close()
	}
}

func (t *Terminal) writeString(s string) {
	switch {
	case t.writer != nil:
		_, _ = t.writer.WriteString(s)
	case t.output != nil:
		_, _ = fmt.Fprint(t.output, s)
	}
}
