package entries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/termjournal/internal/calendar"
	"github.com/julianstephens/termjournal/internal/cli"
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	month := calendar.MonthOf(today)
	if c.Month != "" {
		m, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		month = m
	}

	readCtx, cancel := ctx.Timeout()
	defer cancel()
	grid, err := calendar.NewIndex(ctx.Store).Grid(readCtx, month, today)
	if err != nil {
		return fmt.Errorf("failed to load calendar: %w", err)
	}

	fmt.Print(RenderGrid(grid))
	return nil
}

// RenderGrid draws the month as plain text. Days with entries carry a *,
// today is bracketed and disabled days are dimmed with a dot.
func RenderGrid(g calendar.Grid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", g.Month.Title())
	for _, h := range calendar.WeekdayHeaders {
		fmt.Fprintf(&b, " %-4s", h)
	}
	b.WriteString("\n")

	for _, week := range g.Weeks {
		for _, cell := range week {
			b.WriteString(" " + renderCell(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n* has entries  [ ] today  . no entries\n")
	return b.String()
}

func renderCell(c calendar.Cell) string {
	if c.Blank() {
		return "    "
	}
	switch {
	case c.Kind == calendar.CellToday:
		return fmt.Sprintf("[%2d]", c.Day)
	case c.Count > 0:
		return fmt.Sprintf("%2d* ", c.Day)
	case c.Kind.Disabled():
		return fmt.Sprintf("%2d. ", c.Day)
	default:
		return fmt.Sprintf("%2d  ", c.Day)
	}
}
