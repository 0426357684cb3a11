package reader

import (
	"errors"

	"github.com/kk-code-lab/rbook/internal/book"
	"github.com/sirupsen/logrus"
)

// Options seeds a reading session.
type Options struct {
	Path  string
	Width int
	// Offset is used unless FromPercent is set. It must be a character boundary.
	Offset      int64
	Percent     float64
	FromPercent bool
}

// Session is the per-book navigation state: a byte cursor, the line window
// and the offset where the displayed line starts.
type Session struct {
	path      string
	cursor    *book.Cursor
	scanner   *book.Scanner
	window    *book.Window
	lineStart int64
}

// Open opens the book described by opts. Failures here are fatal for the
// session and are returned before anything is rendered.
func Open(opts Options, log logrus.FieldLogger) (*Session, error) {
	cursor, err := book.Open(opts.Path)
	if err != nil {
		return nil, err
	}

	start := opts.Offset
	if opts.FromPercent {
		start, err = book.ResolvePercent(cursor, cursor.Size(), opts.Percent)
		switch {
		case errors.Is(err, book.ErrBoundaryNotFound):
			log.WithFields(logrus.Fields{
				"path":    opts.Path,
				"percent": opts.Percent,
			}).Warn("no utf-8 boundary after requested position, starting at the beginning")
			start = 0
		case err != nil:
			_ = cursor.Close()
			return nil, err
		}
	}

	session, err := NewSession(opts.Path, cursor, opts.Width, start)
	if err != nil {
		_ = cursor.Close()
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"path":   opts.Path,
		"offset": start,
		"size":   cursor.Size(),
		"width":  session.window.Width(),
	}).Debug("reading session opened")
	return session, nil
}

// NewSession builds a session over an already open cursor positioned at start.
func NewSession(path string, cursor *book.Cursor, width int, start int64) (*Session, error) {
	if err := cursor.Seek(start); err != nil {
		return nil, err
	}
	return &Session{
		path:      path,
		cursor:    cursor,
		scanner:   book.NewScanner(cursor),
		window:    book.NewWindow(width),
		lineStart: start,
	}, nil
}

// Next shows the following segment, loading the next non-empty line when the
// current one is exhausted. book.ErrEndOfFile leaves the session unchanged.
func (s *Session) Next() (Frame, error) {
	if s.window.Remaining() == 0 {
		start, text, err := s.cursor.ReadNextLine()
		if err != nil {
			return Frame{}, err
		}
		s.window.Load(text)
		s.lineStart = start
	}
	return s.frame(s.window.NextSegment()), nil
}

// Previous shows the segment before the current one. Inside a long line it
// only moves the window; at the head of a line it loads the previous
// non-empty line and shows its last segment. book.ErrStartOfFile leaves the
// session unchanged.
func (s *Session) Previous() (Frame, error) {
	if s.window.CanStepBack() {
		return s.frame(s.window.StepBack()), nil
	}

	start, err := s.scanner.PreviousLine(s.lineStart)
	if err != nil {
		return Frame{}, err
	}

	resume := s.cursor.Tell()
	if err := s.cursor.Seek(start); err != nil {
		return Frame{}, err
	}
	start, text, err := s.cursor.ReadNextLine()
	if err != nil {
		if restoreErr := s.cursor.Seek(resume); restoreErr != nil {
			return Frame{}, errors.Join(err, restoreErr)
		}
		return Frame{}, err
	}
	s.window.Load(text)
	s.lineStart = start
	return s.frame(s.window.ShowTail()), nil
}

// Progress reports the start of the displayed line as the resumable position.
func (s *Session) Progress() Progress {
	return Progress{
		Path:    s.path,
		Size:    s.cursor.Size(),
		Offset:  s.lineStart,
		Percent: book.Percent(s.lineStart, s.cursor.Size()),
	}
}

// LineStart returns the byte offset where the displayed line begins.
func (s *Session) LineStart() int64 { return s.lineStart }

// AtLineStart reports whether the window was stepped back to segment 0.
func (s *Session) AtLineStart() bool { return s.window.AtLineStart() }

// WindowIndex returns the segment on screen, -1 before anything is shown.
func (s *Session) WindowIndex() int { return s.window.Index() }

// Remaining counts runes of the current line not yet displayed.
func (s *Session) Remaining() int { return s.window.Remaining() }

// Close releases the book file.
func (s *Session) Close() error {
	return s.cursor.Close()
}

func (s *Session) frame(text string) Frame {
	return Frame{
		Text:     text,
		Offset:   s.lineStart,
		Size:     s.cursor.Size(),
		Percent:  book.Percent(s.lineStart, s.cursor.Size()),
		Segment:  s.window.Index(),
		Segments: s.window.Segments(),
	}
}
