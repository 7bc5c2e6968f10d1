package calendar

import "time"

// Cell is one day in a month grid. Padding cells outside the month have Day 0.
type Cell struct {
	Day   int
	Date  string
	Kind  CellKind
	Count int
}

// Blank reports whether the cell is padding
func (c Cell) Blank() bool {
	return c.Day == 0
}

// Week holds seven cells starting on Monday
type Week [7]Cell

// Grid is a month laid out in Monday-first weeks
type Grid struct {
	Month Month
	Weeks []Week
}

// WeekdayHeaders are the column titles of a Grid
var WeekdayHeaders = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// BuildGrid lays out m using counts keyed by YYYY-MM-DD
func BuildGrid(m Month, today time.Time, counts map[string]int) Grid {
	g := Grid{Month: m}
	offset := (int(m.First().Weekday()) + 6) % 7

	var week Week
	col := offset
	for day := 1; day <= m.Days(); day++ {
		date := m.Date(day)
		count := counts[date]
		when := time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
		week[col] = Cell{
			Day:   day,
			Date:  date,
			Kind:  Classify(when, today, count > 0),
			Count: count,
		}
		col++
		if col == 7 {
			g.Weeks = append(g.Weeks, week)
			week = Week{}
			col = 0
		}
	}
	if col > 0 {
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

// Find returns the cell for day and whether it is in the grid
func (g Grid) Find(day int) (Cell, bool) {
	if day < 1 {
		return Cell{}, false
	}
	for _, w := range g.Weeks {
		for _, c := range w {
			if c.Day == day {
				return c, true
			}
		}
	}
	return Cell{}, false
}
