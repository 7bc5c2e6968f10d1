package handlers

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/backup"
	"github.com/julianstephens/termjournal/internal/calendar"
	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

type GridLoadedMsg struct {
	Grid calendar.Grid
	Err  error
}

type PreviewLoadedMsg struct {
	Date    string
	Preview journal.Preview
	Found   bool
	Err     error
}

type DayLoadedMsg struct {
	Date    string
	Entries []models.Entry
	Err     error
}

type SearchResultsMsg struct {
	Query   string
	Entries []models.Entry
	Err     error
}

type MistakesLoadedMsg struct {
	Records []models.MistakeRecord
	Err     error
}

type BackupsLoadedMsg struct {
	Backups []backup.BackupInfo
	Err     error
}

// LoadGrid fetches the entry counts of month and lays it out
func LoadGrid(m *state.Model, month calendar.Month) tea.Cmd {
	index := m.Index
	today := m.Today()
	return func() tea.Msg {
		ctx, cancel := state.StorageContext()
		defer cancel()
		grid, err := index.Grid(ctx, month, today)
		return GridLoadedMsg{Grid: grid, Err: err}
	}
}

// LoadPreview fetches the summary of the newest entry on date
func LoadPreview(m *state.Model, date string) tea.Cmd {
	lookup := m.Lookup
	return func() tea.Msg {
		p, found, err := lookup.Preview(context.Background(), date)
		return PreviewLoadedMsg{Date: date, Preview: p, Found: found, Err: err}
	}
}

// LoadDay fetches every entry committed on date
func LoadDay(m *state.Model, date string) tea.Cmd {
	lookup := m.Lookup
	return func() tea.Msg {
		entries, err := lookup.ForDate(context.Background(), date)
		return DayLoadedMsg{Date: date, Entries: entries, Err: err}
	}
}

func RunSearch(m *state.Model, query string) tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		ctx, cancel := state.StorageContext()
		defer cancel()
		entries, err := store.SearchEntries(ctx, query)
		return SearchResultsMsg{Query: query, Entries: entries, Err: err}
	}
}

func LoadMistakes(m *state.Model) tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		ctx, cancel := state.StorageContext()
		defer cancel()
		records, err := store.ListMistakes(ctx)
		return MistakesLoadedMsg{Records: records, Err: err}
	}
}

func LoadBackups(m *state.Model) tea.Cmd {
	mgr := m.Backups
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		infos, err := mgr.ListBackups()
		return BackupsLoadedMsg{Backups: infos, Err: err}
	}
}

// FormatPreview renders a preview for the calendar panel
func FormatPreview(p journal.Preview) string {
	var b strings.Builder
	b.WriteString(p.Title)
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(p.Description)
	}
	if p.Count > 1 {
		fmt.Fprintf(&b, "\n(%d entries)", p.Count)
	}
	return b.String()
}

// HandleLoaded applies the result of a loader command. It reports whether msg
// was one of the loader messages.
func HandleLoaded(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case GridLoadedMsg:
		if msg.Err != nil {
			m.SetNotice(constants.SeverityError, fmt.Sprintf("Could not load calendar: %v", msg.Err))
			return true, nil
		}
		m.MonthModel.SetGrid(msg.Grid)
		if cell, ok := m.MonthModel.Selected(); ok && cell.Count > 0 {
			return true, LoadPreview(m, cell.Date)
		}
		return true, nil

	case PreviewLoadedMsg:
		if msg.Date != m.MonthModel.CursorDate() {
			return true, nil
		}
		switch {
		case msg.Err != nil:
			m.MonthModel.SetPreview(fmt.Sprintf("Error loading preview: %v", msg.Err))
		case msg.Found:
			m.MonthModel.SetPreview(FormatPreview(msg.Preview))
		}
		return true, nil

	case DayLoadedMsg:
		if msg.Date != m.DayModel.Date() {
			return true, nil
		}
		if msg.Err != nil {
			m.SetNotice(constants.SeverityError, fmt.Sprintf("Error loading entries: %v", msg.Err))
			return true, nil
		}
		m.DayModel.SetEntries(msg.Entries)
		return true, nil

	case SearchResultsMsg:
		if msg.Err != nil {
			m.SetNotice(constants.SeverityError, fmt.Sprintf("Search failed: %v", msg.Err))
			return true, nil
		}
		m.SearchModel.SetResults(msg.Query, msg.Entries)
		return true, nil

	case MistakesLoadedMsg:
		if msg.Err != nil {
			m.SetNotice(constants.SeverityError, fmt.Sprintf("Error loading mistakes: %v", msg.Err))
			return true, nil
		}
		m.MistakesModel.SetMistakes(msg.Records)
		return true, nil

	case BackupsLoadedMsg:
		if msg.Err != nil {
			m.SetNotice(constants.SeverityError, fmt.Sprintf("Error listing backups: %v", msg.Err))
			return true, nil
		}
		m.BackupsModel.SetBackups(msg.Backups)
		return true, nil
	}
	return false, nil
}
