package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rbook/internal/config"
	"github.com/kk-code-lab/rbook/internal/reader"
	"github.com/kk-code-lab/rbook/internal/ui/pager"
	renderui "github.com/kk-code-lab/rbook/internal/ui/render"
)

// backend is one way of showing segments and reading keys.
type backend struct {
	renderer reader.Renderer
	keys     reader.KeySource
	width    int
	// intro is set when the backend can show position before the first key.
	intro bool
	close func() error
}

func openBackend(name, title string, width int) (*backend, error) {
	if name == config.BackendScreen {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		return openScreenBackend(screen, title, width)
	}
	return openLineBackend(width)
}

// openLineBackend puts the controlling tty into raw mode and redraws a
// single row in place.
func openLineBackend(width int) (*backend, error) {
	term, err := pager.OpenTerminal()
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		if w, err := term.Width(); err == nil {
			width = w
		} else {
			width = config.FallbackWidth
		}
	}
	return &backend{
		renderer: pager.NewLineRenderer(term.Writer()),
		keys:     term,
		width:    width,
		close:    term.Close,
	}, nil
}

func openScreenBackend(screen tcell.Screen, title string, width int) (*backend, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	if w, _ := screen.Size(); width <= 0 || (w > 0 && width > w) {
		width = w
	}
	if width <= 0 {
		width = config.FallbackWidth
	}
	renderer := renderui.NewRenderer(screen, title)
	return &backend{
		renderer: renderer,
		keys:     newScreenKeys(screen, renderer.Resize),
		width:    width,
		intro:    true,
		close: func() error {
			screen.Fini()
			return nil
		},
	}, nil
}
