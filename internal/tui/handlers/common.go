package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/export"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

// NewConfirmationForm creates a yes/no form bound to fm.Confirmed
func NewConfirmationForm(fm *state.ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}

func positiveInt(max int) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if i < 1 {
			return fmt.Errorf("must be a positive number")
		}
		if max > 0 && i > max {
			return fmt.Errorf("must be at most %d", max)
		}
		return nil
	}
}

// NewSettingsForm creates the settings editing form
func NewSettingsForm(fm *state.SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Autosave interval (minutes)").
				Description("Applies to entries opened after saving").
				Value(&fm.AutosaveInterval).
				Validate(positiveInt(constants.MaxAutosaveIntervalMin)),
			huh.NewInput().
				Title("Mistake alert threshold").
				Description("Warn when the same mistake is recorded more often than this").
				Value(&fm.MistakeAlertThreshold).
				Validate(positiveInt(0)),
			huh.NewSelect[string]().
				Title("Start screen").
				Options(
					huh.NewOption("Calendar", constants.ViewCalendar),
					huh.NewOption("Today's entry", constants.ViewToday),
				).
				Value(&fm.DefaultView),
			huh.NewInput().
				Title("Backup directory").
				Description("Leave empty to keep backups next to the database").
				Value(&fm.BackupDir),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewExportForm creates the export form. The path defaults to the format's
// file name when left empty.
func NewExportForm(fm *state.ExportFormModel) *huh.Form {
	options := make([]huh.Option[string], 0, len(export.Formats))
	for _, f := range export.Formats {
		options = append(options, huh.NewOption(strings.ToUpper(string(f)), string(f)))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Format").
				Options(options...).
				Value(&fm.Format),
			huh.NewInput().
				Title("Output file").
				Description("Leave empty for the default file name in the current directory").
				Value(&fm.Path),
		),
	).WithTheme(huh.ThemeDracula())
}
