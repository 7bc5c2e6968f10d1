package monthview

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/calendar"
)

var (
	march = calendar.Month{Year: 2024, Month: time.March}
	today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(day int, counts map[string]int) Model {
	m := New(march, day, 80, 24)
	m.SetGrid(calendar.BuildGrid(march, today, counts))
	return m
}

func TestNewClampsDay(t *testing.T) {
	feb := calendar.Month{Year: 2023, Month: time.February}
	if got := New(feb, 31, 80, 24).CursorDate(); got != "2023-02-28" {
		t.Errorf("CursorDate() = %s, want 2023-02-28", got)
	}
	if got := New(feb, 0, 80, 24).CursorDate(); got != "2023-02-01" {
		t.Errorf("CursorDate() = %s, want 2023-02-01", got)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		key       string
		wantDate  string
		wantMonth bool
	}{
		{"next day", 15, "l", "2024-03-16", false},
		{"prev day", 15, "left", "2024-03-14", false},
		{"next week", 15, "j", "2024-03-22", false},
		{"prev week", 15, "k", "2024-03-08", false},
		{"wraps into next month", 31, "right", "2024-04-01", true},
		{"wraps into prev month", 1, "h", "2024-02-29", true},
		{"week wraps back", 3, "k", "2024-02-25", true},
		{"next month clamps", 31, "]", "2024-04-30", true},
		{"prev month clamps", 31, "[", "2024-02-29", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := loaded(tt.start, nil).Update(keyPress(tt.key))
			if got := m.CursorDate(); got != tt.wantDate {
				t.Errorf("CursorDate() = %s, want %s", got, tt.wantDate)
			}
			if cmd == nil {
				t.Fatal("expected a command")
			}
			switch msg := cmd().(type) {
			case MonthChangedMsg:
				if !tt.wantMonth {
					t.Errorf("unexpected month change to %v", msg.Month)
				}
				if msg.Month != m.Month() {
					t.Errorf("MonthChangedMsg = %v, model month %v", msg.Month, m.Month())
				}
				if _, ok := m.Selected(); ok {
					t.Error("grid should be stale after a month change")
				}
			case CursorMovedMsg:
				if tt.wantMonth {
					t.Error("expected a month change")
				}
				if msg.Date != tt.wantDate {
					t.Errorf("CursorMovedMsg.Date = %s", msg.Date)
				}
			default:
				t.Fatalf("unexpected msg %T", msg)
			}
		})
	}
}

func TestSetGridIgnoresOtherMonths(t *testing.T) {
	m := New(march, 10, 80, 24)
	m.SetGrid(calendar.BuildGrid(march.Next(), today, nil))
	if _, ok := m.Selected(); ok {
		t.Error("grid for April should not load into March")
	}
	m.SetGrid(calendar.BuildGrid(march, today, nil))
	cell, ok := m.Selected()
	if !ok || cell.Date != "2024-03-10" {
		t.Errorf("Selected() = %+v, %v", cell, ok)
	}
}

func TestSelect(t *testing.T) {
	counts := map[string]int{"2024-03-05": 2}
	tests := []struct {
		name string
		day  int
		want tea.Msg
	}{
		{"past without entries is disabled", 4, DisabledMsg{Date: "2024-03-04"}},
		{"past with entries", 5, SelectDateMsg{Cell: calendar.Cell{Day: 5, Date: "2024-03-05", Kind: calendar.CellPastWithEntry, Count: 2}}},
		{"today", 15, SelectDateMsg{Cell: calendar.Cell{Day: 15, Date: "2024-03-15", Kind: calendar.CellToday}}},
		{"future", 20, SelectDateMsg{Cell: calendar.Cell{Day: 20, Date: "2024-03-20", Kind: calendar.CellFuture}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := loaded(tt.day, counts).Update(keyPress("enter"))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("msg = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSelectBeforeLoadDoesNothing(t *testing.T) {
	_, cmd := New(march, 15, 80, 24).Update(keyPress("enter"))
	if cmd != nil {
		t.Error("select should wait for the grid")
	}
}
