package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/cli"
	"github.com/julianstephens/termjournal/internal/instancelock"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/tui"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	lock, err := instancelock.Acquire(ctx.DataDir)
	switch {
	case err == nil:
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to release instance lock", "error", err)
			}
		}()
	case instancelock.IsHeld(err):
		// Drafts are per date, so a second instance can clobber the first one's autosave
		fmt.Printf("⚠️  Warning: %v\n", err)
		fmt.Println("   Editing the same day in both windows will overwrite drafts.")
		logger.Warn("Starting without instance lock", "error", err)
	default:
		logger.Warn("Failed to acquire instance lock", "error", err)
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	deps := state.Deps{
		Store:     ctx.Store,
		Backups:   ctx.Backups(),
		Scheduler: ctx.Scheduler,
		Now:       ctx.Now,
	}
	p := tea.NewProgram(tui.NewModel(deps, ctx.Settings()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
