package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/termjournal/internal/calendar"
	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage/sqlite"
	"github.com/julianstephens/termjournal/internal/tui/handlers"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

type idleScheduler struct{}

func (idleScheduler) Start(time.Duration, func()) journal.Task { return idleTask{} }

type idleTask struct{}

func (idleTask) Stop() {}

func newTestModel(t *testing.T, view string) (Model, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "journal.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.DefaultView = view
	deps := state.Deps{
		Store:     store,
		Scheduler: idleScheduler{},
		Now:       func() time.Time { return testNow },
	}
	return NewModel(deps, settings), store
}

// send runs msg through Update and returns the new model
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// drain runs cmd and feeds every message it produces back into the model.
// Only commands that return immediately may be passed here.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	switch msg.(type) {
	case nil:
		return m
	case handlers.SessionOpenedMsg, handlers.EntrySavedMsg, handlers.GridLoadedMsg,
		handlers.DayLoadedMsg, handlers.PreviewLoadedMsg:
		m, next := send(t, m, msg)
		return drain(t, m, next)
	default:
		// Cursor blinks and other component internals are not needed here
		return m
	}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestScreenTableCoversEveryScreen(t *testing.T) {
	for s := constants.ScreenWelcome; s <= constants.ScreenSettings; s++ {
		if _, ok := screenTable[s]; !ok {
			t.Errorf("screen %s has no constructor", s)
		}
		if _, ok := screenTitles[s]; !ok {
			t.Errorf("screen %s has no title", s)
		}
	}
}

func TestNewModelStartScreen(t *testing.T) {
	m, _ := newTestModel(t, constants.ViewCalendar)
	if m.Screen != constants.ScreenCalendar {
		t.Errorf("Screen = %s, want calendar", m.Screen)
	}
	if len(m.Stack) != 2 || m.Stack[0] != constants.ScreenWelcome {
		t.Errorf("Stack = %v, want welcome under calendar", m.Stack)
	}
	if m.startup == nil {
		t.Error("calendar start should load the month grid")
	}

	m, _ = newTestModel(t, constants.ViewToday)
	if m.Screen != constants.ScreenWelcome {
		t.Errorf("editor should not be pushed before its session opens, Screen = %s", m.Screen)
	}
	m = drain(t, m, m.startup)
	if m.Screen != constants.ScreenEditor || m.Session == nil {
		t.Fatalf("today start should open the editor, Screen = %s", m.Screen)
	}
	if m.Session.Date() != "2024-03-15" {
		t.Errorf("session date = %s", m.Session.Date())
	}
}

func TestEditorSaveCommitsAndReturns(t *testing.T) {
	m, store := newTestModel(t, constants.ViewToday)
	m = drain(t, m, m.startup)

	m = typeText(t, m, "Good day")
	if !m.Session.Dirty() {
		t.Fatal("typing should mark the session dirty")
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, cmd = send(t, m, cmd())
	m = drain(t, m, cmd)

	if m.Session != nil {
		t.Error("session should be closed after a successful save")
	}
	if m.Screen != constants.ScreenWelcome {
		t.Errorf("Screen = %s, want welcome", m.Screen)
	}
	entries, err := store.ListEntriesByDate(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("ListEntriesByDate failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Good day" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestEditorSaveWithoutTitleStaysOpen(t *testing.T) {
	m, store := newTestModel(t, constants.ViewToday)
	m = drain(t, m, m.startup)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, cmd = send(t, m, cmd())
	m = drain(t, m, cmd)

	if m.Session == nil || m.Screen != constants.ScreenEditor {
		t.Fatal("editor should stay open when the title is missing")
	}
	n, err := store.CountEntriesByDate(context.Background(), "2024-03-15")
	if err != nil || n != 0 {
		t.Errorf("count = %d, err = %v", n, err)
	}
	if m.EditorModel.Saving() {
		t.Error("editor should accept input again after a rejected save")
	}
}

func TestQuitFlushesDraft(t *testing.T) {
	m, store := newTestModel(t, constants.ViewToday)
	m = drain(t, m, m.startup)
	m = typeText(t, m, "Unsaved")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if !m.Quitting || m.Session != nil {
		t.Error("quit should close the session")
	}

	draft, found, err := store.GetDraft(context.Background(), "2024-03-15")
	if err != nil || !found {
		t.Fatalf("draft not flushed: found=%v err=%v", found, err)
	}
	if draft.Content.Title != "Unsaved" {
		t.Errorf("draft title = %q", draft.Content.Title)
	}
}

func TestCancelKeepsStoredDraft(t *testing.T) {
	m, store := newTestModel(t, constants.ViewCalendar)
	ctx := context.Background()
	if err := store.PutDraft(ctx, "2024-03-15", models.EntryFields{Title: "Earlier"}); err != nil {
		t.Fatalf("PutDraft failed: %v", err)
	}

	m = drain(t, m, navigate(&m.Model, constants.ScreenEditor, "2024-03-15"))
	if got := m.Session.Fields().Title; got != "Earlier" {
		t.Fatalf("recovered title = %q", got)
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(t, m, cmd())
	if m.Session != nil || m.Screen != constants.ScreenCalendar {
		t.Errorf("cancel should return to the calendar, Screen = %s", m.Screen)
	}
	if _, found, _ := store.GetDraft(ctx, "2024-03-15"); !found {
		t.Error("cancel must not delete the stored draft")
	}
}

func TestCalendarSelectionRouting(t *testing.T) {
	m, store := newTestModel(t, constants.ViewCalendar)
	ctx := context.Background()
	if _, err := store.InsertEntry(ctx, models.EntryFields{Title: "Past"}, "2024-03-10"); err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}
	if _, err := store.InsertEntry(ctx, models.EntryFields{Title: "Today"}, "2024-03-15"); err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}
	m = drain(t, m, m.startup)

	tests := []struct {
		name string
		cell calendar.Cell
		want constants.Screen
	}{
		{"past with entries opens day view", calendar.Cell{Day: 10, Date: "2024-03-10", Kind: calendar.CellPastWithEntry, Count: 1}, constants.ScreenDayEntries},
		{"today with entries opens editor", calendar.Cell{Day: 15, Date: "2024-03-15", Kind: calendar.CellToday, Count: 1}, constants.ScreenEditor},
		{"future opens editor", calendar.Cell{Day: 20, Date: "2024-03-20", Kind: calendar.CellFuture}, constants.ScreenEditor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := drain(t, m, m.openDate(tt.cell))
			if got.Screen != tt.want {
				t.Errorf("Screen = %s, want %s", got.Screen, tt.want)
			}
			handlers.CloseSession(&got.Model)
		})
	}
}

func TestChannelNotifierNeverBlocks(t *testing.T) {
	ch := make(chan journal.Event, 1)
	n := channelNotifier(ch)

	done := make(chan struct{})
	go func() {
		n.Notify(journal.Event{Kind: journal.EventDraftSaved})
		n.Notify(journal.Event{Kind: journal.EventDraftSaved})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full channel")
	}
	if len(ch) != 1 {
		t.Errorf("queued = %d, want 1", len(ch))
	}
}

func TestEventUpdatesNotice(t *testing.T) {
	m, _ := newTestModel(t, constants.ViewCalendar)
	m, cmd := send(t, m, eventMsg(journal.Event{
		Kind:     journal.EventMistakeRepeated,
		Severity: constants.SeverityWarning,
		Message:  "You've made this mistake 3 times: rushing",
	}))
	if m.Notice.Severity != constants.SeverityWarning || m.Notice.Message == "" {
		t.Errorf("Notice = %+v", m.Notice)
	}
	if cmd == nil {
		t.Error("the event listener should be re-armed")
	}
}
