package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rbook/internal/reader"
	textutil "github.com/kk-code-lab/rbook/internal/textutil"
)

const minBarWidth = 10

// Renderer draws reading frames on a full tcell screen: a title bar, the
// current segment on the middle row and a status line with a progress bar.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	title  string
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, title string) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		title:  title,
	}
}

// Render draws one frame and shows it.
func (r *Renderer) Render(frame reader.Frame) error {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}

	r.drawHeader(w)
	row := h / 2
	if h >= 3 && row == 0 {
		row = 1
	}
	r.drawCells(0, row, w, segmentLine(frame, w), r.theme.base().Foreground(r.theme.TextFg))
	if h >= 3 {
		r.drawStatusLine(frame, w, h-2)
		r.drawFooter(w, h-1)
	}

	r.screen.Show()
	return nil
}

// Clear blanks the screen.
func (r *Renderer) Clear() error {
	r.screen.Clear()
	r.screen.Show()
	return nil
}

// Resize redraws the terminal after a size change.
func (r *Renderer) Resize() {
	r.screen.Sync()
}

func (r *Renderer) drawHeader(w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	r.fillRow(0, w, style)
	title := r.title
	if title == "" {
		title = "rbook"
	}
	r.drawCells(1, 0, w, textutil.TruncateToWidth(textutil.SanitizeTerminalText(title), w-2), style)
}

// drawStatusLine renders the position summary followed by a progress bar
// filling the remaining columns.
func (r *Renderer) drawStatusLine(frame reader.Frame, w, y int) {
	style := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)
	r.fillRow(y, w, style)

	status := " " + formatStatus(frame) + " "
	x := r.drawCells(0, y, w, textutil.TruncateToWidth(status, w), style)
	if barWidth := w - x - 1; barWidth >= minBarWidth {
		r.drawCells(x, y, w, progressBar(barWidth, frame.Percent), style.Foreground(r.theme.BarFg))
	}
}

func (r *Renderer) drawFooter(w, y int) {
	style := r.theme.base().Foreground(r.theme.HintFg)
	r.drawCells(0, y, w, textutil.TruncateToWidth(buildFooterHelpText(), w), style)
}

func (r *Renderer) fillRow(y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
