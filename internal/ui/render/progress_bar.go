package render

import (
	"math"
	"strings"
)

const (
	barEmpty    = "░"
	barFilled   = "█"
	barPartials = "▏▎▍▌▋▊▉"
)

// progressBar draws percent (0-100) as a bar exactly width cells wide, using
// eighth blocks for the partially filled cell.
func progressBar(width int, percent float64) string {
	if width < 1 {
		return ""
	}
	fraction := percent / 100
	switch {
	case fraction < 0 || math.IsNaN(fraction):
		fraction = 0
	case fraction > 1:
		fraction = 1
	}

	filledWidth := fraction * float64(width)
	full := int(filledWidth)
	remainder := filledWidth - float64(full)

	var bar strings.Builder
	bar.WriteString(strings.Repeat(barFilled, full))
	used := full
	if used < width {
		if idx := int(remainder * 8); idx > 0 {
			bar.WriteRune([]rune(barPartials)[min(idx, 7)-1])
			used++
		}
	}
	bar.WriteString(strings.Repeat(barEmpty, width-used))
	return bar.String()
}
