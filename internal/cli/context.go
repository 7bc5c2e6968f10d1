package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/termjournal/internal/backup"
	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
)

// AutoBackupInterval is how old the newest backup may be before the TUI takes a new one
const AutoBackupInterval = 24 * time.Hour

type Context struct {
	Store     storage.Provider
	Scheduler journal.Scheduler
	// DataDir holds the instance lock and logs
	DataDir string
	Now     func() time.Time
}

// Today returns the local date used for calendar classification
func (c *Context) Today() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Timeout bounds a single storage call made by a command
func (c *Context) Timeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.StorageTimeout)
}

// Settings reads the stored settings, falling back to defaults when they
// cannot be read.
func (c *Context) Settings() models.Settings {
	ctx, cancel := c.Timeout()
	defer cancel()
	s, err := c.Store.GetSettings(ctx)
	if err != nil {
		logger.Warn("Failed to read settings, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return s
}

// Backups returns the backup manager for the store, or nil when the backend
// has no database file to copy.
func (c *Context) Backups() *backup.Manager {
	if c.Store.Backend() != storage.BackendSQLite {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.Settings().BackupDir)
}

// PerformAutomaticBackup takes a backup unless a recent one exists. Failures
// are logged and never interrupt the user.
func (c *Context) PerformAutomaticBackup() {
	mgr := c.Backups()
	if mgr == nil {
		return
	}
	created, err := mgr.EnsureRecent(AutoBackupInterval)
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	if created {
		logger.Info("Automatic backup created", "dir", mgr.GetBackupDir())
	}
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ParseDate validates a YYYY-MM-DD argument. An empty value means today.
func (c *Context) ParseDate(value string) (string, error) {
	if value == "" {
		return c.Today().Format(constants.DateFormat), nil
	}
	t, err := time.Parse(constants.DateFormat, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.Format(constants.DateFormat), nil
}
