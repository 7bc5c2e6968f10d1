package constants

import "time"

// Screen identifies a TUI screen. The set is closed; every value has a
// constructor registered in the tui screen table.
type Screen int

// SessionState represents the lifecycle state of an entry editor session
type SessionState int

// Severity is the level attached to a user-facing notification
type Severity string

const (
	AppName            = "termjournal"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/termjournal/journal.db"
	ConnectionEnvVar   = "TERMJOURNAL_DB_CONNECTION"
	Version            = "v1.0.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// StatusTimeFormat is used for the "last autosave" indicator
	StatusTimeFormat = "15:04:05"

	// StorageTimeout bounds every storage call made on behalf of an interactive session
	StorageTimeout = 5 * time.Second

	// PreviewLength is the number of description runes shown in a calendar preview
	PreviewLength = 100

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "termjournal-"
	BackupFileSuffix = ".db"

	// Instance lock
	InstanceLockfileName = "termjournal.lock"

	// Export file names
	MarkdownExportFile = "journal_export.md"
	CSVExportFile      = "journal_export.csv"

	// Notification severities
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const (
	ScreenWelcome Screen = iota
	ScreenCalendar
	ScreenDayEntries
	ScreenEditor
	ScreenSearch
	ScreenMistakes
	ScreenExport
	ScreenBackup
	ScreenSettings
)

const (
	SessionLoading SessionState = iota
	SessionEditingClean
	SessionEditingDirty
	SessionAutoSaving
	SessionSaving
	SessionClosed
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenCalendar:
		return "calendar"
	case ScreenDayEntries:
		return "day"
	case ScreenEditor:
		return "editor"
	case ScreenSearch:
		return "search"
	case ScreenMistakes:
		return "mistakes"
	case ScreenExport:
		return "export"
	case ScreenBackup:
		return "backup"
	case ScreenSettings:
		return "settings"
	default:
		return "unknown"
	}
}

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionEditingClean:
		return "editing(clean)"
	case SessionEditingDirty:
		return "editing(dirty)"
	case SessionAutoSaving:
		return "autosaving"
	case SessionSaving:
		return "saving"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}
