package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/termjournal/internal/cli"
	"github.com/julianstephens/termjournal/internal/storage"
	"github.com/julianstephens/termjournal/internal/storage/postgres"
	"github.com/julianstephens/termjournal/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization."`
	Source string `help:"Source database path or connection string to copy the journal from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized journal storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying journal from: %s\n", c.Source)
		if err := c.copyJournal(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

// reset removes the sqlite database file so Init starts from an empty schema
func (c *InitCmd) reset(ctx *cli.Context) error {
	if ctx.Store.Backend() != storage.BackendSQLite {
		return errors.New("--force only supports SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func openSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errors.New("PostgreSQL source connection string contains embedded credentials. Use the OS keyring or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.NewStore(source), nil
}

// copyJournal copies settings, entries, drafts and mistake counts from the
// source store into the freshly initialized one
func (c *InitCmd) copyJournal(ctx *cli.Context) error {
	src, err := openSource(c.Source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	fmt.Println("  Copying settings...")
	readCtx, cancel := ctx.Timeout()
	settings, err := src.GetSettings(readCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	writeCtx, cancel := ctx.Timeout()
	err = ctx.Store.SaveSettings(writeCtx, settings)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying entries...")
	readCtx, cancel = ctx.Timeout()
	entries, err := src.AllEntries(readCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to get entries from source: %w", err)
	}
	for _, e := range entries {
		writeCtx, cancel := ctx.Timeout()
		_, err := ctx.Store.InsertEntry(writeCtx, e.EntryFields, e.Date)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to add entry %d for %s: %w", e.ID, e.Date, err)
		}
	}
	fmt.Printf("    Copied %d entries\n", len(entries))

	fmt.Println("  Copying drafts...")
	readCtx, cancel = ctx.Timeout()
	drafts, err := src.ListDrafts(readCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to get drafts from source: %w", err)
	}
	copied := 0
	for _, d := range drafts {
		if d.Unreadable {
			fmt.Printf("    ⚠️  Skipped unreadable draft for %s\n", d.Date)
			continue
		}
		writeCtx, cancel := ctx.Timeout()
		err := ctx.Store.PutDraft(writeCtx, d.Date, d.Content)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to save draft for %s: %w", d.Date, err)
		}
		copied++
	}
	fmt.Printf("    Copied %d drafts\n", copied)

	fmt.Println("  Copying mistakes...")
	readCtx, cancel = ctx.Timeout()
	mistakes, err := src.ListMistakes(readCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to get mistakes from source: %w", err)
	}
	for _, m := range mistakes {
		for i := 0; i < m.Count; i++ {
			writeCtx, cancel := ctx.Timeout()
			_, err := ctx.Store.RecordMistake(writeCtx, m.Mistake)
			cancel()
			if err != nil {
				return fmt.Errorf("failed to record mistake %q: %w", m.Mistake, err)
			}
		}
	}
	fmt.Printf("    Copied %d mistakes\n", len(mistakes))
	return nil
}
