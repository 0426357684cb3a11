package menu

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.Color("#7C3AED")
	secondary = lipgloss.Color("#06B6D4")
	warning   = lipgloss.Color("#F59E0B")
	muted     = lipgloss.Color("#6B7280")
	light     = lipgloss.Color("#F9FAFB")

	titleBar = lipgloss.NewStyle().
		Foreground(light).
		Background(primary).
		Padding(0, 1).
		Bold(true)

	selectedItem = lipgloss.NewStyle().
		Foreground(secondary).
		Bold(true)

	normalItem = lipgloss.NewStyle()

	missingItem = lipgloss.NewStyle().
		Foreground(muted).
		Strikethrough(true)

	mutedText = lipgloss.NewStyle().
		Foreground(muted)

	confirmText = lipgloss.NewStyle().
		Foreground(warning).
		Bold(true)
)
