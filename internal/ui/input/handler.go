package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rbook/internal/reader"
)

// InputHandler converts tcell events to reader commands.
type InputHandler struct {
	// OnResize, when set, is called for every resize event.
	OnResize func(width, height int)
}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// ProcessEvent converts a tcell event into a command. The second result is
// false for events that carry no command, such as resizes.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) (reader.Command, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return CommandForKey(ev), true
	case *tcell.EventResize:
		if ih.OnResize != nil {
			w, h := ev.Size()
			ih.OnResize(w, h)
		}
		return reader.CommandUnsupported, false
	default:
		return reader.CommandUnsupported, false
	}
}

// CommandForKey maps PgDn, PgUp and End (or Esc) to navigation commands.
// Every other key, Ctrl-C included, is unsupported and ends the session.
func CommandForKey(ev *tcell.EventKey) reader.Command {
	switch ev.Key() {
	case tcell.KeyPgDn:
		return reader.CommandNextLine
	case tcell.KeyPgUp:
		return reader.CommandPreviousLine
	case tcell.KeyEnd, tcell.KeyEscape:
		return reader.CommandExit
	default:
		return reader.CommandUnsupported
	}
}
