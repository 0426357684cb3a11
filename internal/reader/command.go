package reader

import "errors"

// Command is a decoded navigation request delivered by a KeySource.
type Command int

const (
	CommandUnsupported Command = iota
	CommandNextLine
	CommandPreviousLine
	CommandExit
)

var (
	// ErrUnsupportedKey is logged when a key without a binding ends the session.
	ErrUnsupportedKey = errors.New("unsupported key")
	// ErrChannelDisconnected is logged when the listener stops without sending
	// a terminating command.
	ErrChannelDisconnected = errors.New("command channel disconnected")
)

func (c Command) String() string {
	switch c {
	case CommandNextLine:
		return "next-line"
	case CommandPreviousLine:
		return "previous-line"
	case CommandExit:
		return "exit"
	default:
		return "unsupported"
	}
}

// Terminal reports whether the command ends the reading session.
func (c Command) Terminal() bool {
	return c == CommandExit || c == CommandUnsupported
}

// Frame is what a Renderer draws after a navigation step.
type Frame struct {
	Text     string
	Offset   int64
	Size     int64
	Percent  float64
	Segment  int
	Segments int
}

// Progress is the resumable reading position reported to the catalog.
type Progress struct {
	Path    string
	Size    int64
	Offset  int64
	Percent float64
}
