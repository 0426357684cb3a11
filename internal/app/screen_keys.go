package app

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rbook/internal/reader"
	inputui "github.com/kk-code-lab/rbook/internal/ui/input"
)

var (
	errScreenClosed  = errors.New("screen closed")
	errReadCancelled = errors.New("key read cancelled")
)

// screenKeys reads commands from tcell's event queue.
type screenKeys struct {
	screen tcell.Screen
	input  *inputui.InputHandler
}

func newScreenKeys(screen tcell.Screen, onResize func()) *screenKeys {
	input := inputui.NewInputHandler()
	input.OnResize = func(int, int) {
		if onResize != nil {
			onResize()
		}
	}
	return &screenKeys{screen: screen, input: input}
}

func (k *screenKeys) ReadCommand() (reader.Command, error) {
	for {
		ev := k.screen.PollEvent()
		switch ev.(type) {
		case nil:
			return reader.CommandUnsupported, errScreenClosed
		case *tcell.EventInterrupt:
			return reader.CommandUnsupported, errReadCancelled
		}
		if cmd, ok := k.input.ProcessEvent(ev); ok {
			return cmd, nil
		}
	}
}

// Cancel wakes a blocked ReadCommand.
func (k *screenKeys) Cancel() {
	_ = k.screen.PostEvent(tcell.NewEventInterrupt(nil))
}
