package handlers

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/tui/components/backups"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

type BackupCreatedMsg struct {
	Path string
	Err  error
}

type BackupRestoredMsg struct {
	SafetyPath string
	Err        error
}

// HandleBackupMessages routes requests from the backups screen and their results
func HandleBackupMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case backups.CreateBackupMsg:
		return true, createBackup(m)

	case backups.RestoreBackupMsg:
		path := msg.Path
		question := fmt.Sprintf("Restore %s? The current journal is backed up first.", filepath.Base(path))
		return true, Confirm(m, question, func() tea.Cmd { return restoreBackup(m, path) })

	case BackupCreatedMsg:
		if msg.Err != nil {
			logger.Error("Backup failed", "error", msg.Err)
			m.SetNotice(constants.SeverityError, fmt.Sprintf("Backup failed: %v", msg.Err))
			return true, nil
		}
		m.SetNotice(constants.SeverityInfo, fmt.Sprintf("Backup created: %s", msg.Path))
		return true, LoadBackups(m)

	case BackupRestoredMsg:
		if msg.Err != nil {
			logger.Error("Restore failed", "error", msg.Err)
			m.SetNotice(constants.SeverityError, fmt.Sprintf("Restore failed: %v", msg.Err))
			return true, nil
		}
		m.SetNotice(constants.SeverityInfo, fmt.Sprintf("Journal restored; previous state saved to %s", msg.SafetyPath))
		return true, LoadBackups(m)
	}
	return false, nil
}

func createBackup(m *state.Model) tea.Cmd {
	mgr := m.Backups
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		path, err := mgr.CreateBackup()
		return BackupCreatedMsg{Path: path, Err: err}
	}
}

// restoreBackup swaps the database file, so the store is closed around the
// copy and reopened afterwards. The sqlite store guards its pool, so a loader
// still in flight fails with a storage error rather than racing the swap. No
// editor session can be open on this screen.
func restoreBackup(m *state.Model, path string) tea.Cmd {
	mgr := m.Backups
	store := m.Store
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.Close(); err != nil {
			return BackupRestoredMsg{Err: fmt.Errorf("closing database: %w", err)}
		}
		safety, restoreErr := mgr.RestoreBackup(path)
		if err := store.Load(); err != nil {
			return BackupRestoredMsg{Err: fmt.Errorf("reopening database: %w", err)}
		}
		return BackupRestoredMsg{SafetyPath: safety, Err: restoreErr}
	}
}
