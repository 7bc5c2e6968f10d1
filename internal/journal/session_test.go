package journal

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
)

const testDate = "2024-03-15"

var fixedNow = time.Date(2024, 3, 15, 12, 30, 5, 0, time.Local)

type harness struct {
	store *memStore
	sched *manualScheduler
	rec   *recorder
}

func newHarness() *harness {
	return &harness{store: newMemStore(), sched: &manualScheduler{}, rec: &recorder{}}
}

func (h *harness) open(t *testing.T) *Session {
	t.Helper()
	s, err := Open(context.Background(), testDate, Deps{
		Store:     h.store,
		Scheduler: h.sched,
		Notifier:  h.rec,
		Now:       func() time.Time { return fixedNow },
	}, Options{AutosaveInterval: 3 * time.Minute, MistakeAlertThreshold: 2})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestOpenBlank(t *testing.T) {
	h := newHarness()
	s := h.open(t)

	if s.State() != constants.SessionEditingClean {
		t.Errorf("state = %v, want editing(clean)", s.State())
	}
	if !s.Fields().IsZero() {
		t.Errorf("expected blank fields, got %+v", s.Fields())
	}
	if h.sched.interval != 3*time.Minute {
		t.Errorf("autosave interval = %v, want 3m", h.sched.interval)
	}
	if len(h.rec.kinds()) != 0 {
		t.Errorf("expected no events, got %v", h.rec.kinds())
	}
	if s.ID() == "" || s.Date() != testDate {
		t.Errorf("unexpected identity %q %q", s.ID(), s.Date())
	}
}

func TestOpenRejectsBadDate(t *testing.T) {
	_, err := Open(context.Background(), "15/03/2024", Deps{Store: newMemStore()}, Options{})
	if !errors.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestOpenRecoversDraft(t *testing.T) {
	h := newHarness()
	draft := models.EntryFields{Title: "Half done", Description: "so far"}
	h.store.drafts[testDate] = draft

	s := h.open(t)

	if diff := cmp.Diff(draft, s.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if s.Dirty() {
		t.Error("recovered draft should not be dirty")
	}
	if got := h.rec.last(); got.Kind != EventDraftRecovered || got.Severity != constants.SeverityInfo || got.Date != testDate {
		t.Errorf("unexpected event %+v", got)
	}
}

func TestOpenDegradesOnDraftErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want EventKind
	}{
		{"unreadable", &errors.DeserializationError{Date: testDate, Err: stderrors.New("bad json")}, EventDraftUnreadable},
		{"storage", errors.NewStorage("get draft", errDiskFull), EventStorageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.store.getErr = tt.err

			s := h.open(t)

			if !s.Fields().IsZero() || s.State() != constants.SessionEditingClean {
				t.Errorf("expected blank clean form, got %+v in %v", s.Fields(), s.State())
			}
			if got := h.rec.last(); got.Kind != tt.want || got.Severity != constants.SeverityWarning {
				t.Errorf("unexpected event %+v", got)
			}
		})
	}
}

func TestAutosaveTickNoopWhenClean(t *testing.T) {
	h := newHarness()
	s := h.open(t)

	for i := 0; i < 3; i++ {
		wrote, err := s.AutosaveTick(context.Background())
		if wrote || err != nil {
			t.Fatalf("tick %d: wrote=%v err=%v", i, wrote, err)
		}
	}
	h.sched.Fire()
	if h.store.putCount() != 0 {
		t.Errorf("expected no draft writes, got %d", h.store.putCount())
	}
}

func TestAutosaveWritesSnapshot(t *testing.T) {
	h := newHarness()
	s := h.open(t)

	if err := s.SetField(models.FieldTitle, "Hello"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if s.State() != constants.SessionEditingDirty || s.Status() != "Pending..." {
		t.Errorf("after edit: state=%v status=%q", s.State(), s.Status())
	}

	h.sched.Fire()

	draft, ok := h.store.draft(testDate)
	if !ok || draft.Title != "Hello" {
		t.Fatalf("draft not written: ok=%v draft=%+v", ok, draft)
	}
	if s.Dirty() || s.State() != constants.SessionEditingClean {
		t.Errorf("after autosave: dirty=%v state=%v", s.Dirty(), s.State())
	}
	if s.Status() != "Saved (Last: 12:30:05)" {
		t.Errorf("status = %q", s.Status())
	}
	if !s.LastSaved().Equal(fixedNow) {
		t.Errorf("LastSaved = %v", s.LastSaved())
	}
	if h.rec.last().Kind != EventDraftSaved {
		t.Errorf("expected draft-saved event, got %v", h.rec.kinds())
	}

	if wrote, _ := s.AutosaveTick(context.Background()); wrote {
		t.Error("second tick without edits should not write")
	}
	if h.store.putCount() != 1 {
		t.Errorf("expected exactly one write, got %d", h.store.putCount())
	}
}

func TestSetFieldSameValueStaysClean(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	if err := s.SetField(models.FieldSetbacks, ""); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if s.Dirty() {
		t.Error("unchanged value should not dirty the session")
	}
	if err := s.SetField(models.Field("mood"), "x"); !errors.IsValidation(err) {
		t.Errorf("expected ValidationError for unknown field, got %v", err)
	}
}

func TestAutosaveEditDuringWriteStaysDirty(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	_ = s.SetField(models.FieldTitle, "first")

	h.store.onPut = func() {
		if err := s.SetField(models.FieldTitle, "second"); err != nil {
			t.Errorf("SetField during write failed: %v", err)
		}
	}

	wrote, err := s.AutosaveTick(context.Background())
	if !wrote || err != nil {
		t.Fatalf("tick: wrote=%v err=%v", wrote, err)
	}
	if draft, _ := h.store.draft(testDate); draft.Title != "first" {
		t.Errorf("write should use the snapshot, got %q", draft.Title)
	}
	if !s.Dirty() || s.State() != constants.SessionEditingDirty {
		t.Errorf("edit during write lost: dirty=%v state=%v", s.Dirty(), s.State())
	}

	if wrote, _ := s.AutosaveTick(context.Background()); !wrote {
		t.Fatal("next tick should write the newer edit")
	}
	if draft, _ := h.store.draft(testDate); draft.Title != "second" {
		t.Errorf("draft = %q, want second", draft.Title)
	}
}

func TestAutosaveFailureRestoresDirty(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	_ = s.SetField(models.FieldDescription, "words")
	h.store.putErr = errDiskFull

	wrote, err := s.AutosaveTick(context.Background())
	if wrote || !errors.IsStorage(err) {
		t.Fatalf("tick: wrote=%v err=%v", wrote, err)
	}
	if !s.Dirty() || s.State() != constants.SessionEditingDirty {
		t.Errorf("dirty flag not restored: dirty=%v state=%v", s.Dirty(), s.State())
	}
	if got := h.rec.last(); got.Kind != EventStorageError || got.Severity != constants.SeverityError {
		t.Errorf("unexpected event %+v", got)
	}

	h.store.putErr = nil
	if wrote, err := s.AutosaveTick(context.Background()); !wrote || err != nil {
		t.Errorf("retry: wrote=%v err=%v", wrote, err)
	}
}

func TestSaveRequiresTitle(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	_ = s.SetField(models.FieldDescription, "no title yet")
	_ = s.SetField(models.FieldTitle, "   ")

	_, err := s.Save(context.Background())
	if !errors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if s.State() != constants.SessionEditingDirty {
		t.Errorf("state = %v, want editing(dirty)", s.State())
	}
	if h.store.commits != 0 {
		t.Errorf("store should not be touched, commits=%d", h.store.commits)
	}
}

func TestSaveCommitsAndCloses(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	_ = s.SetField(models.FieldTitle, "Done")
	h.sched.Fire()
	if _, ok := h.store.draft(testDate); !ok {
		t.Fatal("precondition: draft should exist")
	}

	id, err := s.Save(context.Background())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == 0 {
		t.Error("expected an entry id")
	}
	if s.State() != constants.SessionClosed {
		t.Errorf("state = %v, want closed", s.State())
	}
	if !h.sched.task.Stopped() {
		t.Error("autosave task should be stopped")
	}
	if _, ok := h.store.draft(testDate); ok {
		t.Error("draft should be deleted after commit")
	}
	if got := h.rec.last(); got.Kind != EventEntryCommitted || got.Date != testDate {
		t.Errorf("unexpected event %+v", got)
	}

	puts := h.store.putCount()
	h.sched.Fire()
	if h.store.putCount() != puts {
		t.Error("tick after close must be ignored")
	}
	if _, ok := h.store.draft(testDate); ok {
		t.Error("tick after close resurrected the draft")
	}
	if err := s.SetField(models.FieldTitle, "late"); !stderrors.Is(err, ErrClosed) {
		t.Errorf("SetField after close = %v, want ErrClosed", err)
	}
	if _, err := s.Save(context.Background()); !stderrors.Is(err, ErrClosed) {
		t.Errorf("second Save = %v, want ErrClosed", err)
	}
}

func TestSetFieldRejectedWhileSaving(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	_ = s.SetField(models.FieldTitle, "Done")

	var duringCommit error
	var stateDuringCommit constants.SessionState
	h.store.onCommit = func() {
		stateDuringCommit = s.State()
		duringCommit = s.SetField(models.FieldDescription, "typed while saving")
	}

	if _, err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if stateDuringCommit != constants.SessionSaving {
		t.Errorf("state during commit = %v, want saving", stateDuringCommit)
	}
	if !stderrors.Is(duringCommit, ErrSaving) {
		t.Errorf("SetField during commit = %v, want ErrSaving", duringCommit)
	}
	entries, _ := h.store.ListEntriesByDate(context.Background(), testDate)
	if len(entries) != 1 || entries[0].Description != "" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestSaveFailureKeepsSessionOpen(t *testing.T) {
	h := newHarness()
	h.store.drafts[testDate] = models.EntryFields{Title: "Before"}
	s := h.open(t)
	_ = s.SetField(models.FieldTitle, "After")
	h.store.commitErr = errDiskFull

	_, err := s.Save(context.Background())
	if !errors.IsStorage(err) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if s.State() != constants.SessionEditingDirty || !s.Dirty() {
		t.Errorf("after failed save: state=%v dirty=%v", s.State(), s.Dirty())
	}
	if s.Fields().Title != "After" {
		t.Errorf("in-progress edit lost: %+v", s.Fields())
	}
	if draft, _ := h.store.draft(testDate); draft.Title != "Before" {
		t.Errorf("draft should be untouched, got %+v", draft)
	}
	if h.sched.task.Stopped() {
		t.Error("autosave must keep running after a failed save")
	}
	if h.rec.last().Kind != EventStorageError {
		t.Errorf("expected storage-error event, got %v", h.rec.kinds())
	}
}

func TestSaveWarnsOnRepeatedMistake(t *testing.T) {
	h := newHarness()

	var warnings int
	for i := 1; i <= 3; i++ {
		s := h.open(t)
		_ = s.SetField(models.FieldTitle, "day")
		_ = s.SetField(models.FieldMistakes, "stayed up late")
		if _, err := s.Save(context.Background()); err != nil {
			t.Fatalf("Save %d failed: %v", i, err)
		}
		if h.rec.last().Kind == EventMistakeRepeated {
			warnings++
			if h.rec.last().Severity != constants.SeverityWarning {
				t.Errorf("mistake alert severity = %v", h.rec.last().Severity)
			}
		}
	}
	if warnings != 1 {
		t.Errorf("expected one alert once the count passed the threshold, got %d", warnings)
	}
}

func TestCancelKeepsStoredDraft(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	_ = s.SetField(models.FieldTitle, "kept")
	h.sched.Fire()
	_ = s.SetField(models.FieldTitle, "discarded")

	s.Cancel()

	if s.State() != constants.SessionClosed || !s.Fields().IsZero() {
		t.Errorf("after cancel: state=%v fields=%+v", s.State(), s.Fields())
	}
	if !h.sched.task.Stopped() {
		t.Error("autosave task should be stopped")
	}
	if draft, _ := h.store.draft(testDate); draft.Title != "kept" {
		t.Errorf("stored draft = %+v, want the last autosave", draft)
	}
	s.Cancel()
}

func TestCloseFlushesDirtyDraft(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	_ = s.SetField(models.FieldImprovements, "flushed")

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if draft, _ := h.store.draft(testDate); draft.Improvements != "flushed" {
		t.Errorf("draft = %+v, want flushed content", draft)
	}
	if s.State() != constants.SessionClosed || !h.sched.task.Stopped() {
		t.Errorf("after close: state=%v stopped=%v", s.State(), h.sched.task.Stopped())
	}
	if err := s.Close(context.Background()); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestCloseCleanDoesNotWrite(t *testing.T) {
	h := newHarness()
	s := h.open(t)
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if h.store.putCount() != 0 {
		t.Errorf("clean close wrote %d drafts", h.store.putCount())
	}
}

func TestOptionsFromSettings(t *testing.T) {
	opts := OptionsFromSettings(models.Settings{AutosaveIntervalMin: 5, MistakeAlertThreshold: 4})
	if opts.AutosaveInterval != 5*time.Minute || opts.MistakeAlertThreshold != 4 {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestTickerScheduler(t *testing.T) {
	var n atomic.Int32
	task := TickerScheduler{}.Start(2*time.Millisecond, func() { n.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for n.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	task.Stop()
	task.Stop()
	if n.Load() < 2 {
		t.Fatalf("ticker fired %d times", n.Load())
	}

	time.Sleep(10 * time.Millisecond)
	stopped := n.Load()
	time.Sleep(20 * time.Millisecond)
	if n.Load() != stopped {
		t.Errorf("ticker kept firing after Stop: %d -> %d", stopped, n.Load())
	}
}
