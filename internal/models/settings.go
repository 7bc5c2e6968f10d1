package models

// Settings represents application-wide settings
type Settings struct {
	AutosaveIntervalMin   int    `json:"autosave_interval"`       // minutes between autosave ticks in the entry editor
	DefaultView           string `json:"default_view"`            // "calendar" or "today"
	BackupDir             string `json:"backup_dir"`              // empty means <db dir>/backups
	MistakeAlertThreshold int    `json:"mistake_alert_threshold"` // warn when a mistake count goes above this
}
