// Package calendar answers which days have entries and how a day cell in the
// month view should behave.
package calendar

import (
	"context"
	"strconv"
	"time"

	"github.com/julianstephens/termjournal/internal/constants"
)

// CellKind classifies a day relative to today and its entries
type CellKind int

const (
	CellToday CellKind = iota
	CellFuture
	CellPastWithEntry
	CellPastWithoutEntry
)

func (k CellKind) String() string {
	switch k {
	case CellToday:
		return "today"
	case CellFuture:
		return "future"
	case CellPastWithEntry:
		return "past-with-entry"
	case CellPastWithoutEntry:
		return "past-without-entry"
	default:
		return "unknown"
	}
}

// Disabled reports whether the cell is non-interactive. Only past days without
// entries are disabled.
func (k CellKind) Disabled() bool {
	return k == CellPastWithoutEntry
}

// Classify compares calendar days only. Time of day and location of the
// arguments are ignored.
func Classify(date, today time.Time, hasEntry bool) CellKind {
	d, t := dayKey(date), dayKey(today)
	switch {
	case d == t:
		return CellToday
	case d > t:
		return CellFuture
	case hasEntry:
		return CellPastWithEntry
	default:
		return CellPastWithoutEntry
	}
}

func dayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Destination is where selecting a date leads
type Destination int

const (
	// DestinationEditor opens an editor session for the date
	DestinationEditor Destination = iota
	// DestinationDayView shows the committed entries read-only
	DestinationDayView
)

func (d Destination) String() string {
	if d == DestinationDayView {
		return "day-view"
	}
	return "editor"
}

// Route decides what selecting date opens. Today always opens the editor so
// more entries can be added; any other day with entries shows them.
func Route(date, today time.Time, count int) Destination {
	if dayKey(date) == dayKey(today) {
		return DestinationEditor
	}
	if count > 0 {
		return DestinationDayView
	}
	return DestinationEditor
}

// MonthCounter is the slice of the entry store the index needs
type MonthCounter interface {
	ListEntriesByMonth(ctx context.Context, year int, month time.Month) (map[string]int, error)
}

// Index reports which days of a month have entries
type Index struct {
	store MonthCounter
}

func NewIndex(store MonthCounter) *Index {
	return &Index{store: store}
}

// EntryDatesIn returns the days of the month that have at least one entry
func (i *Index) EntryDatesIn(ctx context.Context, year int, month time.Month) (map[int]struct{}, error) {
	counts, err := i.store.ListEntriesByMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	days := make(map[int]struct{}, len(counts))
	for date, n := range counts {
		if n == 0 || len(date) != len(constants.DateFormat) {
			continue
		}
		day, err := strconv.Atoi(date[8:])
		if err != nil {
			continue
		}
		days[day] = struct{}{}
	}
	return days, nil
}

// Grid loads the month's entry counts and lays the month out for rendering
func (i *Index) Grid(ctx context.Context, m Month, today time.Time) (Grid, error) {
	counts, err := i.store.ListEntriesByMonth(ctx, m.Year, m.Month)
	if err != nil {
		return Grid{}, err
	}
	return BuildGrid(m, today, counts), nil
}
