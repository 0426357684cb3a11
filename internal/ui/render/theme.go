package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines reader colors.
type ColorTheme struct {
	Background tcell.Color
	Foreground tcell.Color
	HeaderBg   tcell.Color
	HeaderFg   tcell.Color
	TextFg     tcell.Color
	StatusBg   tcell.Color
	StatusFg   tcell.Color
	BarFg      tcell.Color
	HintFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,
		HeaderBg:   tcell.Color33,
		HeaderFg:   tcell.ColorWhite,
		TextFg:     tcell.ColorDefault,
		StatusBg:   tcell.Color236,
		StatusFg:   tcell.Color252,
		BarFg:      tcell.Color44,
		HintFg:     tcell.ColorLightSlateGray,
	}
}

func (t ColorTheme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}
