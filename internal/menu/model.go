// Package menu implements the interactive book picker shown by `rbook menu`.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kk-code-lab/rbook/internal/catalog"
	"github.com/kk-code-lab/rbook/internal/textutil"
)

// Action is what the user chose in the picker.
type Action int

const (
	ActionQuit Action = iota
	ActionRead
	ActionRemove
)

// Result is the outcome of one picker run.
type Result struct {
	Action Action
	Entry  catalog.Entry
}

// Model is the bubbletea model of the picker.
type Model struct {
	entries []catalog.Entry
	keys    KeyMap
	help    help.Model

	cursor     int
	offset     int
	confirming bool
	result     Result

	width  int
	height int
}

// New creates a picker over entries with the cursor on the first book.
func New(entries []catalog.Entry) Model {
	return Model{
		entries: entries,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   80,
		height:  24,
	}
}

// Run shows the picker until the user picks, removes or quits.
func Run(entries []catalog.Entry) (Result, error) {
	final, err := tea.NewProgram(New(entries), tea.WithAltScreen()).Run()
	if err != nil {
		return Result{}, err
	}
	return final.(Model).Result(), nil
}

// Result returns the choice made before the program quit.
func (m Model) Result() Result {
	return m.result
}

// Cursor returns the index of the highlighted entry.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		m.confirming = false
		if key.Matches(msg, m.keys.Yes) && len(m.entries) > 0 {
			m.result = Result{Action: ActionRemove, Entry: m.entries[m.cursor]}
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.result = Result{Action: ActionQuit}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = max(len(m.entries)-1, 0)
	case key.Matches(msg, m.keys.Open):
		if len(m.entries) == 0 {
			return m, nil
		}
		entry := m.entries[m.cursor]
		if !entry.Available {
			return m, nil
		}
		m.result = Result{Action: ActionRead, Entry: entry}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Remove):
		if len(m.entries) > 0 {
			m.confirming = true
		}
	}
	m.clampOffset()
	return m, nil
}

// visibleRows is the number of list rows between the title and the help line.
func (m Model) visibleRows() int {
	return max(m.height-4, 1)
}

func (m *Model) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleBar.Render(fmt.Sprintf("rbook · %d books", len(m.entries))))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(mutedText.Render("  catalog is empty; add a book with `rbook add <path>`"))
		b.WriteString("\n")
	}
	end := min(m.offset+m.visibleRows(), len(m.entries))
	for i := m.offset; i < end; i++ {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		title := textutil.PadToWidth(textutil.TruncateToWidth(displayTitle(m.entries[i]), titleColumnWidth), titleColumnWidth)
		line := fmt.Sprintf("%s%3d  %s %5.1f%%", prefix, i+1, title, m.entries[i].ProgressPercent)
		switch {
		case !m.entries[i].Available:
			b.WriteString(missingItem.Render(line))
		case i == m.cursor:
			b.WriteString(selectedItem.Render(line))
		default:
			b.WriteString(normalItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirming && len(m.entries) > 0 {
		b.WriteString(confirmText.Render(fmt.Sprintf("Remove %q from the catalog? (y/N)", m.entries[m.cursor].Title)))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}
