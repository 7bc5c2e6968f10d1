package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeCounter struct {
	counts map[string]int
	err    error
	calls  int
}

func (f *fakeCounter) ListEntriesByMonth(_ context.Context, _ int, _ time.Month) (map[string]int, error) {
	f.calls++
	return f.counts, f.err
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMonthNavigation(t *testing.T) {
	tests := []struct {
		name string
		in   Month
		prev Month
		next Month
	}{
		{"january wraps back", Month{2024, time.January}, Month{2023, time.December}, Month{2024, time.February}},
		{"december wraps forward", Month{2024, time.December}, Month{2024, time.November}, Month{2025, time.January}},
		{"mid year", Month{2024, time.June}, Month{2024, time.May}, Month{2024, time.July}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Prev(); got != tt.prev {
				t.Errorf("Prev() = %v, want %v", got, tt.prev)
			}
			if got := tt.in.Next(); got != tt.next {
				t.Errorf("Next() = %v, want %v", got, tt.next)
			}
		})
	}
}

func TestMonthRoundTrip(t *testing.T) {
	m := Month{2024, time.March}
	cur := m
	for i := 0; i < 30; i++ {
		cur = cur.Next()
	}
	for i := 0; i < 30; i++ {
		cur = cur.Prev()
	}
	if cur != m {
		t.Errorf("30 Next then 30 Prev = %v, want %v", cur, m)
	}
	if got := m.Next().Prev(); got != m {
		t.Errorf("Next().Prev() = %v, want %v", got, m)
	}
}

func TestMonthHelpers(t *testing.T) {
	if got := (Month{2024, time.February}).Days(); got != 29 {
		t.Errorf("leap February Days() = %d", got)
	}
	if got := (Month{2023, time.February}).Days(); got != 28 {
		t.Errorf("February Days() = %d", got)
	}
	if got := (Month{2024, time.March}).String(); got != "2024-03" {
		t.Errorf("String() = %q", got)
	}
	if got := (Month{2024, time.March}).Title(); got != "March 2024" {
		t.Errorf("Title() = %q", got)
	}
	m, err := ParseMonth("2023-11")
	if err != nil || m != (Month{2023, time.November}) {
		t.Errorf("ParseMonth() = %v, %v", m, err)
	}
	if _, err := ParseMonth("2023-13"); err == nil {
		t.Error("ParseMonth should reject month 13")
	}
}

func TestClassify(t *testing.T) {
	today := day("2024-03-15")
	tests := []struct {
		date     string
		hasEntry bool
		want     CellKind
		disabled bool
	}{
		{"2024-03-15", false, CellToday, false},
		{"2024-03-15", true, CellToday, false},
		{"2024-03-16", false, CellFuture, false},
		{"2024-03-16", true, CellFuture, false},
		{"2024-03-14", true, CellPastWithEntry, false},
		{"2024-03-14", false, CellPastWithoutEntry, true},
		{"2023-12-31", false, CellPastWithoutEntry, true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := Classify(day(tt.date), today, tt.hasEntry)
			if got != tt.want {
				t.Errorf("Classify(%s, %v) = %v, want %v", tt.date, tt.hasEntry, got, tt.want)
			}
			if got.Disabled() != tt.disabled {
				t.Errorf("Disabled() = %v, want %v", got.Disabled(), tt.disabled)
			}
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	date := time.Date(2024, 3, 15, 0, 0, 1, 0, time.UTC)
	if got := Classify(date, today, false); got != CellToday {
		t.Errorf("Classify() = %v, want today", got)
	}
}

func TestRoute(t *testing.T) {
	today := day("2024-03-15")
	tests := []struct {
		date  string
		count int
		want  Destination
	}{
		{"2024-03-15", 0, DestinationEditor},
		{"2024-03-15", 3, DestinationEditor},
		{"2024-03-10", 1, DestinationDayView},
		{"2024-03-20", 2, DestinationDayView},
		{"2024-03-20", 0, DestinationEditor},
	}
	for _, tt := range tests {
		if got := Route(day(tt.date), today, tt.count); got != tt.want {
			t.Errorf("Route(%s, %d) = %v, want %v", tt.date, tt.count, got, tt.want)
		}
	}
}

func TestEntryDatesIn(t *testing.T) {
	store := &fakeCounter{counts: map[string]int{"2024-03-01": 2, "2024-03-17": 1, "2024-03-20": 0}}
	idx := NewIndex(store)

	got, err := idx.EntryDatesIn(context.Background(), 2024, time.March)
	if err != nil {
		t.Fatalf("EntryDatesIn failed: %v", err)
	}
	want := map[int]struct{}{1: {}, 17: {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EntryDatesIn mismatch (-want +got):\n%s", diff)
	}

	store.err = errors.New("disk on fire")
	if _, err := idx.EntryDatesIn(context.Background(), 2024, time.March); err == nil {
		t.Error("expected store error to propagate")
	}
}

func TestBuildGrid(t *testing.T) {
	// March 2024 starts on a Friday and has 31 days.
	g := BuildGrid(Month{2024, time.March}, day("2024-03-15"), map[string]int{"2024-03-01": 1, "2024-03-20": 2})

	if len(g.Weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(g.Weeks))
	}
	first := g.Weeks[0]
	for col := 0; col < 4; col++ {
		if !first[col].Blank() {
			t.Errorf("column %d of first week should be padding", col)
		}
	}
	if first[4].Day != 1 || first[4].Kind != CellPastWithEntry || first[4].Count != 1 {
		t.Errorf("unexpected first day cell: %+v", first[4])
	}

	tests := []struct {
		day  int
		want CellKind
	}{
		{2, CellPastWithoutEntry},
		{15, CellToday},
		{20, CellFuture},
		{31, CellFuture},
	}
	for _, tt := range tests {
		cell, ok := g.Find(tt.day)
		if !ok {
			t.Fatalf("day %d missing from grid", tt.day)
		}
		if cell.Kind != tt.want {
			t.Errorf("day %d kind = %v, want %v", tt.day, cell.Kind, tt.want)
		}
	}
	if _, ok := g.Find(32); ok {
		t.Error("day 32 should not be found")
	}
}

func TestIndexGrid(t *testing.T) {
	store := &fakeCounter{counts: map[string]int{}}
	g, err := NewIndex(store).Grid(context.Background(), Month{2024, time.February}, day("2024-03-15"))
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("expected one store call, got %d", store.calls)
	}
	cell, _ := g.Find(29)
	if cell.Date != "2024-02-29" || !cell.Kind.Disabled() {
		t.Errorf("unexpected cell: %+v", cell)
	}
}
