package entries

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/termjournal/internal/cli"
	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
)

type EntryAddCmd struct {
	Title        string `arg:"" help:"Entry title."`
	Date         string `short:"d" help:"Entry date (YYYY-MM-DD). Defaults to today."`
	Description  string `short:"m" help:"What happened."`
	Improvements string `short:"i" help:"What went well."`
	Setbacks     string `short:"s" help:"What went badly."`
	Mistakes     string `short:"x" help:"Mistake to track. Identical text is counted across entries."`
	DiscardDraft bool   `help:"Commit even if a draft exists for the date. The draft is deleted."`
}

func (c *EntryAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return stderrors.New("title is required")
	}
	return nil
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	// Committing deletes the date's draft, so an unsaved edit must be given up explicitly
	readCtx, cancel := ctx.Timeout()
	_, hasDraft, err := ctx.Store.GetDraft(readCtx, date)
	cancel()
	switch {
	case errors.IsDeserialization(err):
		hasDraft = true
		fmt.Fprintf(os.Stderr, "⚠️  The draft for %s is unreadable: %v\n", date, err)
	case err != nil:
		return fmt.Errorf("failed to check draft: %w", err)
	}
	if hasDraft && !c.DiscardDraft {
		return fmt.Errorf("a draft exists for %s; finish it in the TUI or pass --discard-draft", date)
	}

	fields := models.EntryFields{
		Title:        c.Title,
		Description:  c.Description,
		Improvements: c.Improvements,
		Setbacks:     c.Setbacks,
		Mistakes:     c.Mistakes,
	}
	writeCtx, cancel := ctx.Timeout()
	result, err := ctx.Store.CommitEntry(writeCtx, date, fields)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}

	fmt.Printf("✓ Added entry %d for %s\n", result.EntryID, date)
	threshold := ctx.Settings().MistakeAlertThreshold
	if threshold <= 0 {
		threshold = constants.DefaultMistakeAlertThreshold
	}
	if m := result.Mistake; m != nil && m.Count > threshold {
		fmt.Printf("⚠️  You've made this mistake %d times: %s\n", m.Count, m.Mistake)
	}
	return nil
}

type EntryListCmd struct {
	Date string `arg:"" optional:"" help:"Date to list (YYYY-MM-DD). Defaults to today."`
	Full bool   `short:"f" help:"Show every field instead of the title only."`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	readCtx, cancel := ctx.Timeout()
	defer cancel()
	entries, err := ctx.Store.ListEntriesByDate(readCtx, date)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No entries for %s\n", date)
		return nil
	}

	fmt.Printf("Entries for %s:\n", date)
	for _, e := range entries {
		printEntry(e, c.Full)
	}
	return nil
}

func printEntry(e models.Entry, full bool) {
	fmt.Printf("  [%d] %s\n", e.ID, e.Title)
	if !full {
		return
	}
	for _, f := range models.Fields[1:] {
		if v := strings.TrimSpace(e.Get(f)); v != "" {
			fmt.Printf("      %s: %s\n", f.Label(), v)
		}
	}
}
