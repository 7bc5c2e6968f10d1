package constants

const (
	// Settings keys as stored in the settings table
	SettingAutosaveInterval      = "autosave_interval"
	SettingDefaultView           = "default_view"
	SettingBackupDir             = "backup_dir"
	SettingMistakeAlertThreshold = "mistake_alert_threshold"

	// Default view values
	ViewCalendar = "calendar"
	ViewToday    = "today"

	// Defaults
	DefaultAutosaveIntervalMin   = 5
	DefaultView                  = ViewCalendar
	DefaultBackupDir             = ""
	DefaultMistakeAlertThreshold = 2

	// MaxAutosaveIntervalMin caps the interval accepted from the settings surface
	MaxAutosaveIntervalMin = 24 * 60
)
