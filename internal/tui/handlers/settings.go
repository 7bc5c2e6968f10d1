package handlers

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/tui/components/settings"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

// HandleEditSettingsState handles the settings form while it is active
func HandleEditSettingsState(m *state.Model, msg tea.Msg) tea.Cmd {
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
		newSettings := m.Settings
		if val, err := strconv.Atoi(strings.TrimSpace(m.SettingsForm.AutosaveInterval)); err == nil {
			newSettings.AutosaveIntervalMin = val
		}
		if val, err := strconv.Atoi(strings.TrimSpace(m.SettingsForm.MistakeAlertThreshold)); err == nil {
			newSettings.MistakeAlertThreshold = val
		}
		newSettings.DefaultView = m.SettingsForm.DefaultView
		newSettings.BackupDir = strings.TrimSpace(m.SettingsForm.BackupDir)

		ctx, cancel := state.StorageContext()
		err := m.Store.SaveSettings(ctx, newSettings)
		cancel()
		if err != nil {
			// Stay in the form so the user can correct the value or retry
			m.FormError = "Failed to update settings: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		applySettings(m, newSettings)
		m.ClearForm()
		m.SetNotice(constants.SeverityInfo, "Settings saved")
	case huh.StateAborted:
		m.ClearForm()
	}
	return tea.Batch(cmds...)
}

func applySettings(m *state.Model, s models.Settings) {
	m.Settings = s
	m.SettingsModel.SetSettings(s)
	if m.Backups != nil {
		m.Backups.SetBackupDir(s.BackupDir)
	}
}

// HandleSettingsMessages opens the settings form on request
func HandleSettingsMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case settings.EditSettingsMsg:
		m.SettingsForm = &state.SettingsFormModel{
			AutosaveInterval:      strconv.Itoa(m.Settings.AutosaveIntervalMin),
			DefaultView:           m.Settings.DefaultView,
			BackupDir:             m.Settings.BackupDir,
			MistakeAlertThreshold: strconv.Itoa(m.Settings.MistakeAlertThreshold),
		}
		m.Form = NewSettingsForm(m.SettingsForm)
		m.FormKind = state.FormSettings
		m.FormError = ""
		return true, m.Form.Init()
	}
	return false, nil
}
