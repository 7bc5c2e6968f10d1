package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

type Model struct {
	state.Model
	startup tea.Cmd
}

// NewModel builds the program model with the welcome screen at the bottom of
// the stack and the configured start screen on top of it.
func NewModel(deps state.Deps, settings models.Settings) Model {
	events := make(chan journal.Event, eventBuffer)
	m := Model{Model: state.New(deps, settings, events, channelNotifier(events))}

	navigate(&m.Model, constants.ScreenWelcome, "")
	switch settings.DefaultView {
	case constants.ViewToday:
		m.startup = navigate(&m.Model, constants.ScreenEditor, "")
	case constants.ViewCalendar:
		m.startup = navigate(&m.Model, constants.ScreenCalendar, "")
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.Events), m.startup)
}

func (m Model) ShortHelp() []key.Binding {
	bindings := m.screenKeys()
	return append(bindings, m.Keys.Back, m.Keys.Quit, m.Keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		m.screenKeys(),
		{m.Keys.Back, m.Keys.Quit, m.Keys.Help},
	}
}

func (m Model) screenKeys() []key.Binding {
	switch m.Screen {
	case constants.ScreenCalendar:
		k := m.MonthModel.Keys()
		return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.PrevMonth, k.NextMonth, k.Select}
	case constants.ScreenEditor:
		k := m.EditorModel.Keys()
		return []key.Binding{k.Next, k.Prev, k.Save, k.Cancel}
	case constants.ScreenSearch:
		k := m.SearchModel.Keys()
		return []key.Binding{k.Up, k.Down, k.Open}
	case constants.ScreenBackup:
		k := m.BackupsModel.Keys()
		return []key.Binding{k.Create, k.Restore}
	case constants.ScreenSettings:
		return []key.Binding{key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))}
	}
	return nil
}
