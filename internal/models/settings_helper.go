package models

import (
	"fmt"

	"github.com/julianstephens/termjournal/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys that are absent keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingAutosaveInterval:
			if _, err := fmt.Sscanf(value, "%d", &settings.AutosaveIntervalMin); err != nil {
				return Settings{}, fmt.Errorf("parsing autosave_interval: %w", err)
			}
		case constants.SettingDefaultView:
			settings.DefaultView = value
		case constants.SettingBackupDir:
			settings.BackupDir = value
		case constants.SettingMistakeAlertThreshold:
			if _, err := fmt.Sscanf(value, "%d", &settings.MistakeAlertThreshold); err != nil {
				return Settings{}, fmt.Errorf("parsing mistake_alert_threshold: %w", err)
			}
		}
	}
	return settings, settings.Validate()
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingAutosaveInterval:      fmt.Sprintf("%d", settings.AutosaveIntervalMin),
		constants.SettingDefaultView:           settings.DefaultView,
		constants.SettingBackupDir:             settings.BackupDir,
		constants.SettingMistakeAlertThreshold: fmt.Sprintf("%d", settings.MistakeAlertThreshold),
	}
}

// DefaultSettings returns the settings a fresh database starts with.
func DefaultSettings() Settings {
	return Settings{
		AutosaveIntervalMin:   constants.DefaultAutosaveIntervalMin,
		DefaultView:           constants.DefaultView,
		BackupDir:             constants.DefaultBackupDir,
		MistakeAlertThreshold: constants.DefaultMistakeAlertThreshold,
	}
}

// Validate checks that every setting is within its accepted range.
func (s Settings) Validate() error {
	if s.AutosaveIntervalMin < 1 || s.AutosaveIntervalMin > constants.MaxAutosaveIntervalMin {
		return fmt.Errorf("autosave_interval must be between 1 and %d minutes, got %d", constants.MaxAutosaveIntervalMin, s.AutosaveIntervalMin)
	}
	if s.DefaultView != constants.ViewCalendar && s.DefaultView != constants.ViewToday {
		return fmt.Errorf("default_view must be %q or %q, got %q", constants.ViewCalendar, constants.ViewToday, s.DefaultView)
	}
	if s.MistakeAlertThreshold < 1 {
		return fmt.Errorf("mistake_alert_threshold must be positive, got %d", s.MistakeAlertThreshold)
	}
	return nil
}
