package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

// Quit flushes the open editor session and stops the program
func Quit(m *state.Model) tea.Cmd {
	CloseSession(m)
	m.Quitting = true
	return tea.Quit
}

// typingScreen reports whether printable keys belong to a text input
func typingScreen(s constants.Screen) bool {
	return s == constants.ScreenEditor || s == constants.ScreenSearch
}

// HandleGlobalKeys handles key presses that work on every screen
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return true, Quit(m)
	case key.Matches(msg, m.Keys.Help) && !typingScreen(m.Screen):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, m.Keys.Back):
		// The editor and the welcome screen handle esc themselves
		if m.Screen == constants.ScreenEditor || m.Screen == constants.ScreenWelcome {
			return false, nil
		}
		if m.Pop() {
			return true, nil
		}
		return true, Quit(m)
	}
	return false, nil
}
