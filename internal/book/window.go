package book

// Window slices one logical line into display segments of at most width
// runes. It remembers which segment is on screen so navigation can move
// forward and backward inside a line without touching the file.
type Window struct {
	width       int
	line        []rune
	shown       int
	remaining   int
	atLineStart bool
}

// NewWindow returns an empty window. Widths below 1 are raised to 1.
func NewWindow(width int) *Window {
	if width < 1 {
		width = 1
	}
	return &Window{width: width, shown: -1}
}

// Load replaces the current line and rewinds before its first segment.
func (w *Window) Load(text string) {
	w.line = []rune(text)
	w.shown = -1
	w.remaining = len(w.line)
	w.atLineStart = false
}

func (w *Window) Width() int { return w.width }

// Len returns the rune count of the current line.
func (w *Window) Len() int { return len(w.line) }

// Line returns the full current line.
func (w *Window) Line() string { return string(w.line) }

// Index returns the segment on screen, or -1 before the first NextSegment.
func (w *Window) Index() int { return w.shown }

// Remaining counts runes of the line that lie after the segment on screen.
func (w *Window) Remaining() int { return w.remaining }

// AtLineStart reports whether the window was stepped back to segment 0.
func (w *Window) AtLineStart() bool { return w.atLineStart }

// Segments returns how many segments the current line spans.
func (w *Window) Segments() int {
	return (len(w.line) + w.width - 1) / w.width
}

// NextSegment moves to the following segment and returns it. Once the line
// is exhausted it returns "" and leaves the window unchanged.
func (w *Window) NextSegment() string {
	if w.remaining == 0 {
		return ""
	}
	w.shown++
	w.atLineStart = false
	return w.show()
}

// CanStepBack reports whether a previous segment of the same line can be shown.
func (w *Window) CanStepBack() bool {
	return w.shown > 0 && !w.atLineStart
}

// StepBack shows the segment before the current one. Reaching segment 0 sets
// AtLineStart so the next backward move leaves the line.
func (w *Window) StepBack() string {
	if !w.CanStepBack() {
		return ""
	}
	w.shown--
	if w.shown == 0 {
		w.atLineStart = true
	}
	return w.show()
}

// ShowTail jumps to the last segment of the line.
func (w *Window) ShowTail() string {
	if len(w.line) == 0 {
		return ""
	}
	w.shown = w.Segments() - 1
	return w.show()
}

func (w *Window) show() string {
	start := w.shown * w.width
	end := min(start+w.width, len(w.line))
	w.remaining = len(w.line) - end
	return string(w.line[start:end])
}
