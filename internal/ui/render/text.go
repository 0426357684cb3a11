package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rbook/internal/reader"
	"github.com/kk-code-lab/rbook/internal/textutil"
	"github.com/mattn/go-runewidth"
)

// segmentLine prepares the frame's segment for a row of width columns.
func segmentLine(frame reader.Frame, width int) string {
	text := textutil.ExpandTabs(frame.Text, textutil.DefaultTabWidth)
	return textutil.TruncateToWidth(textutil.SanitizeTerminalText(text), width)
}

// drawCells writes text from x on row y and stops before maxX. Zero-width
// runes are attached to the preceding cell and a wide rune that would cross
// maxX is dropped. It returns the column after the last cell drawn.
func (r *Renderer) drawCells(x, y, maxX int, text string, style tcell.Style) int {
	runes := []rune(text)
	for i := 0; i < len(runes) && x < maxX; {
		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}
		w := runewidth.RuneWidth(mainc)
		if w <= 0 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}
	return x
}
