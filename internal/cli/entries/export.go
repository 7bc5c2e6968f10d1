package entries

import (
	"fmt"
	"os"

	"github.com/julianstephens/termjournal/internal/cli"
	"github.com/julianstephens/termjournal/internal/export"
)

type ExportCmd struct {
	Format string `short:"f" help:"Export format (markdown|csv)." default:"markdown"`
	Output string `short:"o" help:"Output file. Defaults to journal_export.md or journal_export.csv; '-' writes to stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	readCtx, cancel := ctx.Timeout()
	defer cancel()

	if c.Output == "-" {
		entries, err := ctx.Store.AllEntries(readCtx)
		if err != nil {
			return fmt.Errorf("failed to read entries: %w", err)
		}
		return export.Render(os.Stdout, format, entries)
	}

	path := c.Output
	if path == "" {
		path = format.DefaultFileName()
	}
	n, err := export.ToFile(readCtx, ctx.Store, format, path)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("✓ Exported %d entries to %s\n", n, path)
	return nil
}
