package settings

import (
	"fmt"

	"github.com/julianstephens/termjournal/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	AutosaveInterval      *int    `help:"Minutes between autosaves in the entry editor."`
	DefaultView           *string `help:"Screen the TUI opens on (calendar|today)."`
	BackupDir             *string `help:"Directory for backups. Empty means next to the database."`
	MistakeAlertThreshold *int    `help:"Warn when a mistake has been recorded more than this many times."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	readCtx, cancel := ctx.Timeout()
	settings, err := ctx.Store.GetSettings(readCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		backupDir := settings.BackupDir
		if backupDir == "" {
			backupDir = "(next to the database)"
		}
		fmt.Println("Current Settings:")
		fmt.Printf("  Autosave Interval:       %d min\n", settings.AutosaveIntervalMin)
		fmt.Printf("  Default View:            %s\n", settings.DefaultView)
		fmt.Printf("  Backup Directory:        %s\n", backupDir)
		fmt.Printf("  Mistake Alert Threshold: %d\n", settings.MistakeAlertThreshold)
		return nil
	}

	updated := false
	if c.AutosaveInterval != nil {
		settings.AutosaveIntervalMin = *c.AutosaveInterval
		updated = true
	}
	if c.DefaultView != nil {
		settings.DefaultView = *c.DefaultView
		updated = true
	}
	if c.BackupDir != nil {
		dir, err := cli.ExpandPath(*c.BackupDir)
		if err != nil {
			return err
		}
		settings.BackupDir = dir
		updated = true
	}
	if c.MistakeAlertThreshold != nil {
		settings.MistakeAlertThreshold = *c.MistakeAlertThreshold
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	writeCtx, cancel := ctx.Timeout()
	defer cancel()
	if err := ctx.Store.SaveSettings(writeCtx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
