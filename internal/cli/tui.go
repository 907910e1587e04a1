package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// choice is one selectable entry in a picker list.
type choice struct {
	Value string // the value handed back to the caller
	Label string // display name
	Hint  string // short description shown dimmed
}

// pickerModel is the bubbletea model for single-choice selection. It is
// reused for both the mode and ECC pickers.
type pickerModel struct {
	Title    string
	Choices  []choice
	Cursor   int
	Selected *choice
}

// newPickerModel creates a picker with the cursor on the choice whose
// value matches current, or the first entry.
func newPickerModel(title string, choices []choice, current string) pickerModel {
	m := pickerModel{Title: title, Choices: choices}
	for i, ch := range choices {
		if ch.Value == current {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Choices[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, ch := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-14s %s", cursor, ch.Label, listDimStyle.Render(ch.Hint))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// runPicker shows the picker and returns the selected value, or ""
// when the user quit without choosing.
func runPicker(title string, choices []choice, current string) (string, error) {
	final, err := tea.NewProgram(newPickerModel(title, choices, current)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(pickerModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	return m.Selected.Value, nil
}
