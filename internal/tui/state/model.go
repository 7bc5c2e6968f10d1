package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/termjournal/internal/backup"
	"github.com/julianstephens/termjournal/internal/calendar"
	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
	"github.com/julianstephens/termjournal/internal/tui/components/backups"
	"github.com/julianstephens/termjournal/internal/tui/components/dayview"
	"github.com/julianstephens/termjournal/internal/tui/components/editor"
	"github.com/julianstephens/termjournal/internal/tui/components/mistakes"
	"github.com/julianstephens/termjournal/internal/tui/components/monthview"
	"github.com/julianstephens/termjournal/internal/tui/components/search"
	"github.com/julianstephens/termjournal/internal/tui/components/settings"
	"github.com/julianstephens/termjournal/internal/tui/components/welcome"
)

// FormKind identifies which huh form is active over the current screen
type FormKind int

const (
	FormNone FormKind = iota
	FormSettings
	FormExport
	FormConfirm
)

// SettingsFormModel represents the form model for settings
type SettingsFormModel struct {
	AutosaveInterval      string
	DefaultView           string
	BackupDir             string
	MistakeAlertThreshold string
}

// ExportFormModel represents the form model for exporting the journal
type ExportFormModel struct {
	Format string
	Path   string
}

// ConfirmationFormModel represents a yes/no question
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// Notice is the most recent notification shown in the status bar
type Notice struct {
	Severity constants.Severity
	Message  string
}

// Deps are the services the TUI is built on. Backups is nil when the
// backend cannot be backed up by file copy.
type Deps struct {
	Store     storage.Provider
	Backups   *backup.Manager
	Scheduler journal.Scheduler
	Now       func() time.Time
}

// Model represents the shared state for the TUI
type Model struct {
	Deps
	Index    *calendar.Index
	Lookup   *journal.Lookup
	Notifier journal.Notifier
	Events   chan journal.Event
	Settings models.Settings

	Screen constants.Screen
	Stack  []constants.Screen

	Keys KeyMap
	Help help.Model

	WelcomeModel  welcome.Model
	MonthModel    monthview.Model
	DayModel      dayview.Model
	EditorModel   editor.Model
	SearchModel   search.Model
	MistakesModel mistakes.Model
	BackupsModel  backups.Model
	SettingsModel settings.Model

	// Session is the open editor session, nil outside the editor
	Session *journal.Session

	Form             *huh.Form
	FormKind         FormKind
	SettingsForm     *SettingsFormModel
	ExportForm       *ExportFormModel
	ConfirmationForm *ConfirmationFormModel
	PendingAction    func() tea.Cmd
	FormError        string
	ExportStatus     string

	Notice   Notice
	Quitting bool
	Width    int
	Height   int
}

// New creates the shared state. The screen stack starts empty; the caller
// pushes the first screen.
func New(deps Deps, current models.Settings, events chan journal.Event, notifier journal.Notifier) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Scheduler == nil {
		deps.Scheduler = journal.TickerScheduler{}
	}
	return Model{
		Deps:          deps,
		Index:         calendar.NewIndex(deps.Store),
		Lookup:        journal.NewLookup(deps.Store),
		Notifier:      notifier,
		Events:        events,
		Settings:      current,
		Keys:          DefaultKeyMap(),
		Help:          help.New(),
		WelcomeModel:  welcome.New(0, 0),
		SettingsModel: settings.New(current, string(deps.Store.Backend()), 0, 0),
	}
}

// Today is the current local date
func (m *Model) Today() time.Time {
	return m.Now()
}

// Push makes s the current screen and remembers the previous one
func (m *Model) Push(s constants.Screen) {
	if len(m.Stack) > 0 && m.Stack[len(m.Stack)-1] == s {
		return
	}
	m.Stack = append(m.Stack, s)
	m.Screen = s
}

// Pop returns to the previous screen. It reports false when the current
// screen is the last one.
func (m *Model) Pop() bool {
	if len(m.Stack) <= 1 {
		return false
	}
	m.Stack = m.Stack[:len(m.Stack)-1]
	m.Screen = m.Stack[len(m.Stack)-1]
	return true
}

// InStack reports whether s is the current screen or below it
func (m *Model) InStack(s constants.Screen) bool {
	for _, v := range m.Stack {
		if v == s {
			return true
		}
	}
	return false
}

// ClearForm drops the active form
func (m *Model) ClearForm() {
	m.Form = nil
	m.FormKind = FormNone
	m.FormError = ""
	m.PendingAction = nil
}

// SetNotice replaces the status bar message
func (m *Model) SetNotice(severity constants.Severity, msg string) {
	m.Notice = Notice{Severity: severity, Message: msg}
}

// StorageContext bounds a storage call made on behalf of the UI
func StorageContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.StorageTimeout)
}

// ContentHeight is the height left for a screen body below the header and
// above the status and help lines
func (m *Model) ContentHeight() int {
	h := m.Height - 6
	if h < 0 {
		return 0
	}
	return h
}
