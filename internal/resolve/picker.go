// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrPickCancelled means the user dismissed the picker without choosing.
var ErrPickCancelled = errors.New("selection cancelled")

var (
	pickTitleStyle    = lipgloss.NewStyle().Bold(true)
	pickCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	pickDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pickSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type pickModel struct {
	items  []string
	cursor int
	choice int
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.choice = m.cursor
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m pickModel) View() string {
	var b strings.Builder
	b.WriteString(pickTitleStyle.Render("Multiple G-code files found — select one:"))
	b.WriteString("\n\n")
	for i, item := range m.items {
		name := filepath.Base(item)
		if i == m.cursor {
			fmt.Fprintf(&b, "%s %s\n", pickCursorStyle.Render(">"), pickSelectedStyle.Render(name))
		} else {
			fmt.Fprintf(&b, "  %s\n", pickSelectedStyle.Render(name))
		}
	}
	b.WriteString("\n")
	b.WriteString(pickDimStyle.Render("↑/↓ move · enter select · q cancel"))
	b.WriteString("\n")
	return b.String()
}

// PickInteractive presents a terminal list of candidates and returns
// the chosen path. Cancelling returns ErrPickCancelled.
func PickInteractive(candidates []string) (string, error) {
	m := pickModel{items: candidates, choice: -1}
	out, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}
	final, ok := out.(pickModel)
	if !ok || final.choice < 0 {
		return "", ErrPickCancelled
	}
	return candidates[final.choice], nil
}
