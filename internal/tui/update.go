package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/termjournal/internal/calendar"
	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/tui/components/monthview"
	"github.com/julianstephens/termjournal/internal/tui/components/search"
	"github.com/julianstephens/termjournal/internal/tui/components/welcome"
	"github.com/julianstephens/termjournal/internal/tui/handlers"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.resize()
		if m.Form != nil {
			form, cmd := m.Form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.Form = f
			}
			return m, cmd
		}
		return m, nil

	case eventMsg:
		m.handleEvent(journal.Event(msg))
		return m, waitForEvent(m.Events)

	case handlers.SessionOpenedMsg:
		return m, handlers.HandleSessionOpened(&m.Model, msg)

	case handlers.ExportDoneMsg:
		handlers.HandleExportDone(&m.Model, msg)
		return m, nil
	}

	if handled, cmd := handlers.HandleLoaded(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleEditorMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleBackupMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleSettingsMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := m.handleNavigation(msg); handled {
		return m, cmd
	}

	if m.Form != nil {
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.Keys.Quit) {
			return m, handlers.Quit(&m.Model)
		}
		switch m.FormKind {
		case state.FormSettings:
			return m, handlers.HandleEditSettingsState(&m.Model, msg)
		case state.FormExport:
			return m, handlers.HandleExportFormState(&m.Model, msg)
		case state.FormConfirm:
			return m, handlers.HandleConfirmationState(&m.Model, msg)
		}
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, k); handled {
			return m, cmd
		}
	}

	return m, m.updateScreen(msg)
}

// handleNavigation reacts to the messages screens send to move around
func (m *Model) handleNavigation(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case welcome.NavigateMsg:
		return true, navigate(&m.Model, msg.Screen, "")
	case welcome.OpenTodayMsg:
		return true, navigate(&m.Model, constants.ScreenEditor, "")
	case welcome.QuitMsg:
		return true, handlers.Quit(&m.Model)

	case monthview.MonthChangedMsg:
		return true, handlers.LoadGrid(&m.Model, msg.Month)
	case monthview.CursorMovedMsg:
		if cell, ok := m.MonthModel.Selected(); ok && cell.Count > 0 {
			return true, handlers.LoadPreview(&m.Model, msg.Date)
		}
		return true, nil
	case monthview.DisabledMsg:
		m.SetNotice(constants.SeverityInfo, fmt.Sprintf("No entries on %s", msg.Date))
		return true, nil
	case monthview.SelectDateMsg:
		return true, m.openDate(msg.Cell)

	case search.QueryChangedMsg:
		return true, handlers.RunSearch(&m.Model, msg.Query)
	case search.OpenDateMsg:
		return true, navigate(&m.Model, constants.ScreenDayEntries, msg.Date)
	}
	return false, nil
}

// openDate sends a calendar selection to the read view or the editor
func (m *Model) openDate(cell calendar.Cell) tea.Cmd {
	date, err := time.Parse(constants.DateFormat, cell.Date)
	if err != nil {
		logger.Error("Calendar produced an invalid date", "date", cell.Date, "error", err)
		return nil
	}
	switch calendar.Route(date, m.Today(), cell.Count) {
	case calendar.DestinationDayView:
		return navigate(&m.Model, constants.ScreenDayEntries, cell.Date)
	default:
		return navigate(&m.Model, constants.ScreenEditor, cell.Date)
	}
}

func (m *Model) handleEvent(e journal.Event) {
	logger.Debug("Session event", "kind", e.Kind, "date", e.Date, "severity", e.Severity)
	m.SetNotice(e.Severity, e.Message)
}

// updateScreen forwards msg to the component of the current screen
func (m *Model) updateScreen(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.Screen {
	case constants.ScreenWelcome:
		m.WelcomeModel, cmd = m.WelcomeModel.Update(msg)
	case constants.ScreenCalendar:
		m.MonthModel, cmd = m.MonthModel.Update(msg)
	case constants.ScreenDayEntries:
		m.DayModel, cmd = m.DayModel.Update(msg)
	case constants.ScreenEditor:
		if m.Session != nil {
			m.EditorModel, cmd = m.EditorModel.Update(msg)
		}
	case constants.ScreenSearch:
		m.SearchModel, cmd = m.SearchModel.Update(msg)
	case constants.ScreenMistakes:
		m.MistakesModel, cmd = m.MistakesModel.Update(msg)
	case constants.ScreenBackup:
		m.BackupsModel, cmd = m.BackupsModel.Update(msg)
	case constants.ScreenSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
	}
	return cmd
}

// resize only touches screens on the stack; the others are rebuilt with the
// current size when they are next opened.
func (m *Model) resize() {
	w, h := contentWidth(&m.Model), m.ContentHeight()
	for _, s := range m.Stack {
		switch s {
		case constants.ScreenWelcome:
			m.WelcomeModel.SetSize(w, h)
		case constants.ScreenCalendar:
			m.MonthModel.SetSize(w, h)
		case constants.ScreenDayEntries:
			m.DayModel.SetSize(w, h)
		case constants.ScreenEditor:
			if m.Session != nil {
				m.EditorModel.SetSize(w, h)
			}
		case constants.ScreenSearch:
			m.SearchModel.SetSize(w, h)
		case constants.ScreenMistakes:
			m.MistakesModel.SetSize(w, h)
		case constants.ScreenBackup:
			m.BackupsModel.SetSize(w, h)
		case constants.ScreenSettings:
			m.SettingsModel.SetSize(w, h)
		}
	}
}
