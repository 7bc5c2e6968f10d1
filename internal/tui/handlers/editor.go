package handlers

import (
	"context"
	stderrors "errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/tui/components/editor"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

// SessionOpenedMsg carries a session opened in the background
type SessionOpenedMsg struct {
	Date    string
	Session *journal.Session
	Err     error
}

// EntrySavedMsg is the outcome of committing the open session
type EntrySavedMsg struct {
	Date string
	ID   int64
	Err  error
}

// OpenEditor opens an editor session for date. Settings are re-read so a new
// session always picks up the latest autosave interval.
func OpenEditor(m *state.Model, date string) tea.Cmd {
	if m.Session != nil {
		logger.Warn("Editor already open, ignoring request", "open", m.Session.Date(), "requested", date)
		return nil
	}
	store := m.Store
	fallback := m.Settings
	deps := journal.Deps{
		Store:     store,
		Scheduler: m.Scheduler,
		Notifier:  m.Notifier,
		Now:       m.Now,
	}
	return func() tea.Msg {
		ctx, cancel := state.StorageContext()
		current, err := store.GetSettings(ctx)
		cancel()
		if err != nil {
			logger.Warn("Failed to read settings, using cached values", "error", err)
			current = fallback
		}
		s, err := journal.Open(context.Background(), date, deps, journal.OptionsFromSettings(current))
		return SessionOpenedMsg{Date: date, Session: s, Err: err}
	}
}

// HandleSessionOpened installs the new session and shows the editor
func HandleSessionOpened(m *state.Model, msg SessionOpenedMsg) tea.Cmd {
	if msg.Err != nil {
		m.SetNotice(constants.SeverityError, fmt.Sprintf("Could not open entry: %v", msg.Err))
		return nil
	}
	if m.Session != nil || m.Quitting {
		// A second open raced the first; only one session may be live.
		_ = msg.Session.Close(context.Background())
		return nil
	}
	m.Session = msg.Session
	m.EditorModel = editor.New(msg.Date, msg.Session.Fields(), msg.Session, m.Width, m.ContentHeight())
	m.Push(constants.ScreenEditor)
	return m.EditorModel.Init()
}

// HandleEditorMessages routes the editor's save and cancel requests
func HandleEditorMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case editor.SaveMsg:
		return true, SaveEntry(m)
	case editor.CancelMsg:
		CancelEditor(m)
		return true, nil
	case EntrySavedMsg:
		return true, handleEntrySaved(m, msg)
	}
	return false, nil
}

// SaveEntry commits the open session in the background
func SaveEntry(m *state.Model) tea.Cmd {
	s := m.Session
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		id, err := s.Save(context.Background())
		return EntrySavedMsg{Date: s.Date(), ID: id, Err: err}
	}
}

func handleEntrySaved(m *state.Model, msg EntrySavedMsg) tea.Cmd {
	if m.Session == nil || m.Session.Date() != msg.Date {
		return nil
	}
	if msg.Err != nil {
		var ve *errors.ValidationError
		if stderrors.As(msg.Err, &ve) {
			m.EditorModel.SetError(ve.Message)
			return nil
		}
		m.EditorModel.SetError(fmt.Sprintf("Error saving entry: %v", msg.Err))
		return nil
	}

	m.Session = nil
	m.Pop()
	return refreshAfterCommit(m, msg.Date)
}

// CancelEditor discards the in-memory edit. The stored draft survives.
func CancelEditor(m *state.Model) {
	if m.Session != nil {
		m.Session.Cancel()
		m.Session = nil
	}
	if m.Screen == constants.ScreenEditor {
		m.Pop()
	}
}

// CloseSession force-closes the open session, flushing unsaved changes
func CloseSession(m *state.Model) {
	if m.Session == nil {
		return
	}
	if err := m.Session.Close(context.Background()); err != nil {
		logger.Error("Failed to flush draft on exit", "date", m.Session.Date(), "error", err)
	}
	m.Session = nil
}

func refreshAfterCommit(m *state.Model, date string) tea.Cmd {
	var cmds []tea.Cmd
	if m.InStack(constants.ScreenCalendar) {
		cmds = append(cmds, LoadGrid(m, m.MonthModel.Month()))
	}
	if m.Screen == constants.ScreenDayEntries && m.DayModel.Date() == date {
		cmds = append(cmds, LoadDay(m, date))
	}
	return tea.Batch(cmds...)
}
