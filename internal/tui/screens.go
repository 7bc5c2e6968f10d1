package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/calendar"
	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/tui/components/backups"
	"github.com/julianstephens/termjournal/internal/tui/components/dayview"
	"github.com/julianstephens/termjournal/internal/tui/components/mistakes"
	"github.com/julianstephens/termjournal/internal/tui/components/monthview"
	"github.com/julianstephens/termjournal/internal/tui/components/search"
	"github.com/julianstephens/termjournal/internal/tui/handlers"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

// screenInit builds a screen's component, pushes it and returns the command
// that loads its data. arg is a YYYY-MM-DD date for the screens that take one.
type screenInit func(m *state.Model, arg string) tea.Cmd

var screenTable = map[constants.Screen]screenInit{
	constants.ScreenWelcome:    initWelcome,
	constants.ScreenCalendar:   initCalendar,
	constants.ScreenDayEntries: initDayEntries,
	constants.ScreenEditor:     initEditor,
	constants.ScreenSearch:     initSearch,
	constants.ScreenMistakes:   initMistakes,
	constants.ScreenExport:     initExport,
	constants.ScreenBackup:     initBackup,
	constants.ScreenSettings:   initSettings,
}

func navigate(m *state.Model, s constants.Screen, arg string) tea.Cmd {
	build, ok := screenTable[s]
	if !ok {
		logger.Error("No constructor registered for screen", "screen", s)
		return nil
	}
	logger.Debug("Navigating", "screen", s, "arg", arg)
	return build(m, arg)
}

func contentWidth(m *state.Model) int {
	if m.Width < 4 {
		return 0
	}
	return m.Width - 4
}

func initWelcome(m *state.Model, _ string) tea.Cmd {
	m.WelcomeModel.SetSize(contentWidth(m), m.ContentHeight())
	m.Push(constants.ScreenWelcome)
	return nil
}

func initCalendar(m *state.Model, arg string) tea.Cmd {
	focus := m.Today()
	if arg != "" {
		if t, err := time.Parse(constants.DateFormat, arg); err == nil {
			focus = t
		}
	}
	month := calendar.MonthOf(focus)
	m.MonthModel = monthview.New(month, focus.Day(), contentWidth(m), m.ContentHeight())
	m.Push(constants.ScreenCalendar)
	return handlers.LoadGrid(m, month)
}

func initDayEntries(m *state.Model, arg string) tea.Cmd {
	m.DayModel = dayview.New(arg, contentWidth(m), m.ContentHeight())
	m.Push(constants.ScreenDayEntries)
	return handlers.LoadDay(m, arg)
}

// initEditor opens the session in the background; the screen is pushed once
// the session exists.
func initEditor(m *state.Model, arg string) tea.Cmd {
	if arg == "" {
		arg = m.Today().Format(constants.DateFormat)
	}
	return handlers.OpenEditor(m, arg)
}

func initSearch(m *state.Model, _ string) tea.Cmd {
	m.SearchModel = search.New(contentWidth(m), m.ContentHeight())
	m.Push(constants.ScreenSearch)
	return m.SearchModel.Init()
}

func initMistakes(m *state.Model, _ string) tea.Cmd {
	m.MistakesModel = mistakes.New(contentWidth(m), m.ContentHeight())
	m.Push(constants.ScreenMistakes)
	return handlers.LoadMistakes(m)
}

func initExport(m *state.Model, _ string) tea.Cmd {
	m.ExportStatus = ""
	m.Push(constants.ScreenExport)
	return handlers.StartExportForm(m)
}

func initBackup(m *state.Model, _ string) tea.Cmd {
	m.BackupsModel = backups.New(contentWidth(m), m.ContentHeight())
	m.Push(constants.ScreenBackup)
	if m.Backups == nil {
		m.BackupsModel.SetUnsupported("Backups are only available for SQLite journals.")
		return nil
	}
	return handlers.LoadBackups(m)
}

func initSettings(m *state.Model, _ string) tea.Cmd {
	m.SettingsModel.SetSettings(m.Settings)
	m.SettingsModel.SetSize(contentWidth(m), m.ContentHeight())
	m.Push(constants.ScreenSettings)
	return nil
}
