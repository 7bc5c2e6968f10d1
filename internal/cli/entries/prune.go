package entries

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/termjournal/internal/calendar"
	"github.com/julianstephens/termjournal/internal/cli"
)

type PruneCmd struct {
	Empty  bool   `help:"Delete entries whose description is blank."`
	Before string `help:"Delete entries dated before this month (YYYY-MM)."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *PruneCmd) Validate() error {
	if !c.Empty && c.Before == "" {
		return errors.New("nothing to prune: pass --empty and/or --before")
	}
	if c.Before != "" {
		if _, err := calendar.ParseMonth(c.Before); err != nil {
			return err
		}
	}
	return nil
}

func (c *PruneCmd) Run(ctx *cli.Context) error {
	if !c.Yes && !confirm(c.describe()) {
		fmt.Println("Prune cancelled.")
		return nil
	}

	// Backup first; pruned entries can only come back from a restore
	if mgr := ctx.Backups(); mgr != nil {
		path, err := mgr.CreateBackup()
		if err != nil {
			return fmt.Errorf("backup before prune failed: %w", err)
		}
		fmt.Printf("✓ Backup created: %s\n", path)
	}

	if c.Empty {
		writeCtx, cancel := ctx.Timeout()
		n, err := ctx.Store.DeleteEntriesWithoutDescription(writeCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to prune empty entries: %w", err)
		}
		fmt.Printf("✓ Deleted %d entries without a description\n", n)
	}

	if c.Before != "" {
		month, _ := calendar.ParseMonth(c.Before)
		cutoff := month.Date(1)
		writeCtx, cancel := ctx.Timeout()
		n, err := ctx.Store.DeleteEntriesBefore(writeCtx, cutoff)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to prune old entries: %w", err)
		}
		fmt.Printf("✓ Deleted %d entries dated before %s\n", n, cutoff)
	}
	return nil
}

func (c *PruneCmd) describe() string {
	var parts []string
	if c.Empty {
		parts = append(parts, "all entries without a description")
	}
	if c.Before != "" {
		parts = append(parts, "all entries before "+c.Before)
	}
	return "This will permanently delete " + strings.Join(parts, " and ") + "."
}

func confirm(warning string) bool {
	fmt.Println("⚠️  WARNING: " + warning)
	fmt.Print("Continue? [y/N]: ")

	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
