package pager

import (
	"io"
	"strings"

	"github.com/kk-code-lab/rbook/internal/reader"
	"github.com/kk-code-lab/rbook/internal/textutil"
)

type flusher interface {
	Flush() error
}

// LineRenderer draws each segment in place on a single terminal row. The
// previous segment is blanked with spaces before the next one is written.
type LineRenderer struct {
	out       io.Writer
	prevWidth int
}

// NewLineRenderer writes frames to out. A *bufio.Writer is flushed per frame.
func NewLineRenderer(out io.Writer) *LineRenderer {
	return &LineRenderer{out: out}
}

func (r *LineRenderer) Render(frame reader.Frame) error {
	text := textutil.SanitizeTerminalText(textutil.ExpandTabs(frame.Text, textutil.DefaultTabWidth))
	var b strings.Builder
	r.erase(&b)
	b.WriteString(text)
	r.prevWidth = textutil.DisplayWidth(text)
	return r.write(b.String())
}

// Clear blanks the row and leaves the cursor at its start.
func (r *LineRenderer) Clear() error {
	var b strings.Builder
	r.erase(&b)
	r.prevWidth = 0
	return r.write(b.String())
}

func (r *LineRenderer) erase(b *strings.Builder) {
	b.WriteByte('\r')
	if r.prevWidth > 0 {
		b.WriteString(strings.Repeat(" ", r.prevWidth))
		b.WriteByte('\r')
	}
}

func (r *LineRenderer) write(s string) error {
	if _, err := io.WriteString(r.out, s); err != nil {
		return err
	}
	if f, ok := r.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}
