package entries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/termjournal/internal/cli"
	"github.com/julianstephens/termjournal/internal/models"
)

type DraftListCmd struct{}

func (c *DraftListCmd) Run(ctx *cli.Context) error {
	readCtx, cancel := ctx.Timeout()
	defer cancel()
	drafts, err := ctx.Store.ListDrafts(readCtx)
	if err != nil {
		return fmt.Errorf("failed to get drafts: %w", err)
	}
	if len(drafts) == 0 {
		fmt.Println("No drafts found.")
		return nil
	}

	fmt.Println("Drafts:")
	for _, d := range drafts {
		title := d.Content.Title
		switch {
		case d.Unreadable:
			title = "(unreadable, discard with 'draft discard " + d.Date + "')"
		case strings.TrimSpace(title) == "":
			title = "(untitled)"
		}
		fmt.Printf("  %s  %s  (saved %s)\n", d.Date, title, d.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

type DraftShowCmd struct {
	Date string `arg:"" help:"Draft date (YYYY-MM-DD)."`
}

func (c *DraftShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	readCtx, cancel := ctx.Timeout()
	defer cancel()
	draft, found, err := ctx.Store.GetDraft(readCtx, date)
	if err != nil {
		return fmt.Errorf("failed to read draft: %w", err)
	}
	if !found {
		return fmt.Errorf("no draft for %s", date)
	}

	fmt.Printf("Draft for %s (saved %s)\n", draft.Date, draft.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	for _, f := range models.Fields {
		v := draft.Content.Get(f)
		if v == "" {
			v = "(empty)"
		}
		fmt.Printf("\n%s:\n  %s\n", f.Label(), strings.ReplaceAll(v, "\n", "\n  "))
	}
	return nil
}

type DraftDiscardCmd struct {
	Date string `arg:"" help:"Draft date (YYYY-MM-DD)."`
}

func (c *DraftDiscardCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	writeCtx, cancel := ctx.Timeout()
	defer cancel()
	if err := ctx.Store.DeleteDraft(writeCtx, date); err != nil {
		return fmt.Errorf("failed to discard draft: %w", err)
	}
	fmt.Printf("✓ Draft for %s discarded\n", date)
	return nil
}
