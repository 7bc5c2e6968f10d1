package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/termjournal/internal/tui/state"
)

// Confirm asks message and runs action when the user agrees
func Confirm(m *state.Model, message string, action func() tea.Cmd) tea.Cmd {
	m.ConfirmationForm = &state.ConfirmationFormModel{Message: message}
	m.Form = NewConfirmationForm(m.ConfirmationForm)
	m.FormKind = state.FormConfirm
	m.PendingAction = action
	return m.Form.Init()
}

// HandleConfirmationState drives the confirmation form
func HandleConfirmationState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ClearForm()
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		action := m.PendingAction
		confirmed := m.ConfirmationForm.Confirmed
		m.ClearForm()
		if confirmed && action != nil {
			cmds = append(cmds, action())
		}
	case huh.StateAborted:
		m.ClearForm()
	}
	return tea.Batch(cmds...)
}
