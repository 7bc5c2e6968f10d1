package entries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/termjournal/internal/cli"
)

type SearchCmd struct {
	Query string `arg:"" help:"Text to look for in any entry field."`
	Full  bool   `short:"f" help:"Show every field of each match."`
}

func (c *SearchCmd) Validate() error {
	if strings.TrimSpace(c.Query) == "" {
		return errors.New("query cannot be empty")
	}
	return nil
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	readCtx, cancel := ctx.Timeout()
	defer cancel()
	results, err := ctx.Store.SearchEntries(readCtx, strings.TrimSpace(c.Query))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Printf("No entries match %q\n", c.Query)
		return nil
	}

	fmt.Printf("%d matching entries:\n", len(results))
	lastDate := ""
	for _, e := range results {
		if e.Date != lastDate {
			fmt.Printf("%s\n", e.Date)
			lastDate = e.Date
		}
		printEntry(e, c.Full)
	}
	return nil
}

type MistakesCmd struct {
	Limit int `short:"n" help:"Show only the most frequent N mistakes." default:"0"`
}

func (c *MistakesCmd) Run(ctx *cli.Context) error {
	readCtx, cancel := ctx.Timeout()
	defer cancel()
	records, err := ctx.Store.ListMistakes(readCtx)
	if err != nil {
		return fmt.Errorf("failed to get mistakes: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No mistakes recorded yet.")
		return nil
	}
	if c.Limit > 0 && c.Limit < len(records) {
		records = records[:c.Limit]
	}

	fmt.Println("Mistakes by frequency:")
	for _, r := range records {
		fmt.Printf("  %4dx  %s\n", r.Count, r.Mistake)
	}
	return nil
}
