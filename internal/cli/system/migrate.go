package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/termjournal/internal/cli"
	"github.com/julianstephens/termjournal/internal/migration"
)

// migrationStatuser is implemented by every SQL-backed store
type migrationStatuser interface {
	MigrationStatus() (migration.Status, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil && !errors.Is(err, migration.ErrSchemaBehind) {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	ms, ok := ctx.Store.(migrationStatuser)
	if !ok {
		return fmt.Errorf("migrate is not supported for %s storage", ctx.Store.Backend())
	}
	st, err := ms.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	if len(st.Pending) == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
		return nil
	}

	for _, m := range st.Pending {
		fmt.Printf("Applying migration %03d_%s\n", m.Version, m.Name)
	}
	// Init applies pending migrations and fills in settings added by them
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Printf("\nSuccessfully applied %d migration(s).\n", len(st.Pending))
	return nil
}
