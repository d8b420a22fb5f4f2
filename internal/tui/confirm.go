// Package tui holds the interactive terminal prompts. The decision logic
// they resolve lives in internal/core; this package is pure presentation.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmYesKey = key.NewBinding(key.WithKeys("y", "Y"))
	confirmNoKey  = key.NewBinding(key.WithKeys("n", "N", "esc"))
	confirmNavKey = key.NewBinding(key.WithKeys("left", "right", "tab", "shift+tab"))
	confirmOKKey  = key.NewBinding(key.WithKeys("enter"))
	confirmQuit   = key.NewBinding(key.WithKeys("ctrl+c"))
)

var (
	messageStyle = lipgloss.NewStyle().Padding(0, 1)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2)
	focusedStyle = buttonStyle.Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).Bold(true)
)

// confirmModel is a minimal yes/no prompt. Focus defaults to No — the
// safe choice for destructive actions. y/n/esc are accelerators.
type confirmModel struct {
	message   string
	focusYes  bool
	answered  bool
	confirmed bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmQuit):
		m.answered = true
		m.confirmed = false
		return m, tea.Quit
	case key.Matches(keyMsg, confirmYesKey):
		m.answered = true
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(keyMsg, confirmNoKey):
		m.answered = true
		m.confirmed = false
		return m, tea.Quit
	case key.Matches(keyMsg, confirmNavKey):
		m.focusYes = !m.focusYes
		return m, nil
	case key.Matches(keyMsg, confirmOKKey):
		m.answered = true
		m.confirmed = m.focusYes
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}

	yes := buttonStyle.Render("Yes")
	no := focusedStyle.Render("No")
	if m.focusYes {
		yes = focusedStyle.Render("Yes")
		no = buttonStyle.Render("No")
	}

	return fmt.Sprintf("%s\n\n%s\n",
		messageStyle.Render(m.message),
		lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no))
}

// Confirm runs a blocking yes/no prompt and returns the answer. Any error
// starting the terminal program resolves to the safe default, false.
func Confirm(message string) bool {
	final, err := tea.NewProgram(confirmModel{message: message}).Run()
	if err != nil {
		return false
	}
	m, ok := final.(confirmModel)
	return ok && m.confirmed
}
