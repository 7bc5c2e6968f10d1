package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/termjournal/internal/cli"
	"github.com/julianstephens/termjournal/internal/keyring"
	"github.com/julianstephens/termjournal/internal/migration"
	"github.com/julianstephens/termjournal/internal/storage"
	"github.com/julianstephens/termjournal/internal/storage/sqlite"
	"github.com/julianstephens/termjournal/internal/validation"
)

// backupWarnAge is how old the newest backup may get before doctor warns
const backupWarnAge = 7 * 24 * time.Hour

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database cannot be reached
	needsDB bool
	// warnOnly failures do not fail the command
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", warnOnly: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	// A schema that is behind still counts as reachable; the migration check reports it
	if err := ctx.Store.Load(); err != nil && !errors.Is(err, migration.ErrSchemaBehind) {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func migrationStatus(ctx *cli.Context) (migration.Status, bool, error) {
	ms, ok := ctx.Store.(migrationStatuser)
	if !ok {
		return migration.Status{}, false, nil
	}
	st, err := ms.MigrationStatus()
	if err != nil {
		return migration.Status{}, true, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return st, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, ok, err := migrationStatus(ctx)
	if !ok || err != nil {
		return err
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, ok, err := migrationStatus(ctx)
	if !ok || err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store.Backend() != storage.BackendSQLite {
		return nil
	}
	mgr := ctx.Backups()
	latest, ok, err := mgr.Latest()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if !ok {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	if age := ctx.Today().Sub(latest.Timestamp); age > backupWarnAge {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	readCtx, cancel := ctx.Timeout()
	defer cancel()

	entries, err := ctx.Store.AllEntries(readCtx)
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}
	drafts, err := ctx.Store.ListDrafts(readCtx)
	if err != nil {
		return fmt.Errorf("failed to read drafts: %w", err)
	}

	result := validation.New().ValidateJournal(entries, drafts, ctx.Today())
	if result.HasIssues() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Today()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return fmt.Errorf("no local timezone configured")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Store.Backend() != storage.BackendPostgres {
		return nil
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
