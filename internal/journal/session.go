// Package journal implements the lifecycle of editing one day's entry: draft
// recovery, periodic autosave, commit and cancellation.
package journal

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
)

// ErrClosed is returned by operations on a session that has already closed
var ErrClosed = stderrors.New("editor session is closed")

// ErrSaving is returned by SetField while a commit is in flight
var ErrSaving = stderrors.New("entry is being saved")

// Store is the part of the storage provider a session writes through
type Store interface {
	GetDraft(ctx context.Context, date string) (models.Draft, bool, error)
	PutDraft(ctx context.Context, date string, content models.EntryFields) error
	CommitEntry(ctx context.Context, date string, fields models.EntryFields) (storage.CommitResult, error)
}

// Deps are the collaborators of a session. Only Store is required.
type Deps struct {
	Store     Store
	Scheduler Scheduler
	Notifier  Notifier
	Now       func() time.Time
}

// Options are read once when the session opens
type Options struct {
	AutosaveInterval      time.Duration
	MistakeAlertThreshold int
	StorageTimeout        time.Duration
}

// OptionsFromSettings converts stored settings to session options
func OptionsFromSettings(s models.Settings) Options {
	return Options{
		AutosaveInterval:      time.Duration(s.AutosaveIntervalMin) * time.Minute,
		MistakeAlertThreshold: s.MistakeAlertThreshold,
	}
}

// Session is an open editor for one date.
//
// mu guards the fields, dirty flag and state. writeMu serializes draft writes
// with the commit so an autosave can never land after the commit removed the
// draft.
type Session struct {
	id   string
	date string
	opts Options

	store    Store
	notifier Notifier
	now      func() time.Time
	log      *log.Logger

	writeMu sync.Mutex

	mu        sync.Mutex
	fields    models.EntryFields
	dirty     bool
	state     constants.SessionState
	status    string
	lastSaved time.Time
	task      Task
}

// Open loads the draft for date and starts autosaving. A draft that cannot be
// read degrades to a blank form with a warning; it never prevents opening.
func Open(ctx context.Context, date string, deps Deps, opts Options) (*Session, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("journal: session needs a store")
	}
	if err := storage.ValidateDate(date); err != nil {
		return nil, err
	}
	if deps.Scheduler == nil {
		deps.Scheduler = TickerScheduler{}
	}
	if deps.Notifier == nil {
		deps.Notifier = discard{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if opts.AutosaveInterval <= 0 {
		opts.AutosaveInterval = time.Duration(constants.DefaultAutosaveIntervalMin) * time.Minute
	}
	if opts.MistakeAlertThreshold <= 0 {
		opts.MistakeAlertThreshold = constants.DefaultMistakeAlertThreshold
	}
	if opts.StorageTimeout <= 0 {
		opts.StorageTimeout = constants.StorageTimeout
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		date:     date,
		opts:     opts,
		store:    deps.Store,
		notifier: deps.Notifier,
		now:      deps.Now,
		log:      logger.With("session", id[:8], "date", date),
		state:    constants.SessionLoading,
	}

	s.loadDraft(ctx)

	task := deps.Scheduler.Start(opts.AutosaveInterval, s.tick)
	s.mu.Lock()
	s.state = constants.SessionEditingClean
	s.task = task
	s.mu.Unlock()

	s.log.Debug("Editor session opened", "interval", opts.AutosaveInterval)
	return s, nil
}

func (s *Session) loadDraft(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.StorageTimeout)
	defer cancel()

	draft, found, err := s.store.GetDraft(ctx, s.date)
	switch {
	case errors.IsDeserialization(err):
		s.log.Warn("Stored draft is unreadable, starting blank", "error", err)
		s.emit(EventDraftUnreadable, constants.SeverityWarning, "Saved draft could not be read; starting with a blank entry")
	case err != nil:
		s.log.Warn("Failed to load draft, starting blank", "error", err)
		s.emit(EventStorageError, constants.SeverityWarning, "Could not load saved draft; starting with a blank entry")
	case found:
		s.mu.Lock()
		s.fields = draft.Content
		s.lastSaved = draft.UpdatedAt
		s.mu.Unlock()
		s.emit(EventDraftRecovered, constants.SeverityInfo, "Recovered unsaved draft")
	}
}

func (s *Session) tick() {
	_, _ = s.AutosaveTick(context.Background())
}

// SetField updates one field and marks the session dirty when the value changed
func (s *Session) SetField(field models.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case constants.SessionClosed:
		return ErrClosed
	case constants.SessionSaving:
		return ErrSaving
	}
	if s.fields.Get(field) == value {
		return nil
	}
	if !s.fields.Set(field, value) {
		return errors.NewValidation(string(field), "unknown field")
	}
	s.dirty = true
	s.status = "Pending..."
	if s.state == constants.SessionEditingClean {
		s.state = constants.SessionEditingDirty
	}
	return nil
}

// AutosaveTick writes the current fields as the date's draft when there are
// unsaved changes. It reports whether a write happened.
func (s *Session) AutosaveTick(ctx context.Context) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.state != constants.SessionEditingDirty || !s.dirty {
		s.mu.Unlock()
		return false, nil
	}
	snapshot := s.fields
	s.dirty = false
	s.state = constants.SessionAutoSaving
	s.mu.Unlock()

	err := s.putDraft(ctx, snapshot)

	s.mu.Lock()
	if s.state == constants.SessionClosed {
		s.mu.Unlock()
		return err == nil, err
	}
	if err != nil {
		s.dirty = true
		s.state = constants.SessionEditingDirty
		s.status = "Autosave failed"
		s.mu.Unlock()
		s.log.Error("Autosave failed", "error", err)
		s.emit(EventStorageError, constants.SeverityError, fmt.Sprintf("Autosave failed: %v", err))
		return false, err
	}
	now := s.now()
	s.lastSaved = now
	s.status = fmt.Sprintf("Saved (Last: %s)", now.Format(constants.StatusTimeFormat))
	if s.dirty {
		s.state = constants.SessionEditingDirty
	} else {
		s.state = constants.SessionEditingClean
	}
	s.mu.Unlock()

	s.log.Debug("Draft autosaved")
	s.emit(EventDraftSaved, constants.SeverityInfo, "Draft saved")
	return true, nil
}

func (s *Session) putDraft(ctx context.Context, content models.EntryFields) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.StorageTimeout)
	defer cancel()
	return errors.NewStorage("put draft", s.store.PutDraft(ctx, s.date, content))
}

// Save commits the entry and closes the session. On failure the session stays
// open and dirty and the stored draft is left as it was.
func (s *Session) Save(ctx context.Context) (int64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.state == constants.SessionClosed {
		s.mu.Unlock()
		return 0, ErrClosed
	}
	if !s.fields.HasTitle() {
		s.mu.Unlock()
		return 0, errors.NewValidation(string(models.FieldTitle), "Title is required!")
	}
	prev := s.state
	snapshot := s.fields
	s.state = constants.SessionSaving
	s.status = "Saving..."
	s.mu.Unlock()

	commitCtx, cancel := context.WithTimeout(ctx, s.opts.StorageTimeout)
	result, err := s.store.CommitEntry(commitCtx, s.date, snapshot)
	cancel()

	if err != nil {
		s.mu.Lock()
		if errors.IsValidation(err) {
			s.state = prev
		} else {
			s.dirty = true
			s.state = constants.SessionEditingDirty
		}
		s.status = "Save failed"
		s.mu.Unlock()

		s.log.Error("Failed to commit entry", "error", err)
		s.emit(EventStorageError, constants.SeverityError, fmt.Sprintf("Error saving entry: %v", err))
		return 0, errors.NewStorage("commit entry", err)
	}

	s.mu.Lock()
	s.dirty = false
	s.state = constants.SessionClosed
	s.status = "Saved"
	s.stopTaskLocked()
	s.mu.Unlock()

	s.log.Info("Entry committed", "id", result.EntryID)
	s.emit(EventEntryCommitted, constants.SeverityInfo, "Entry saved successfully!")

	if m := result.Mistake; m != nil && m.Count > s.opts.MistakeAlertThreshold {
		s.emit(EventMistakeRepeated, constants.SeverityWarning,
			fmt.Sprintf("You've made this mistake %d times: %s", m.Count, m.Mistake))
	}
	return result.EntryID, nil
}

// Cancel discards the in-memory fields and closes the session. The stored
// draft is kept so the work can be recovered later.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == constants.SessionClosed {
		return
	}
	s.fields = models.EntryFields{}
	s.dirty = false
	s.state = constants.SessionClosed
	s.status = ""
	s.stopTaskLocked()
	s.log.Debug("Editor session cancelled")
}

// Close is the forced close used when the application quits. Unsaved changes
// are flushed to the draft before the session closes.
func (s *Session) Close(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.state == constants.SessionClosed {
		s.mu.Unlock()
		return nil
	}
	flush := s.dirty
	snapshot := s.fields
	s.dirty = false
	s.state = constants.SessionClosed
	s.stopTaskLocked()
	s.mu.Unlock()

	if !flush {
		return nil
	}
	if err := s.putDraft(ctx, snapshot); err != nil {
		s.log.Error("Failed to flush draft on close", "error", err)
		s.emit(EventStorageError, constants.SeverityError, fmt.Sprintf("Could not save draft: %v", err))
		return err
	}
	s.log.Debug("Draft flushed on close")
	return nil
}

func (s *Session) stopTaskLocked() {
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
}

func (s *Session) emit(kind EventKind, severity constants.Severity, msg string) {
	s.notifier.Notify(Event{
		Kind:     kind,
		Date:     s.date,
		Severity: severity,
		Message:  msg,
		At:       s.now(),
	})
}

func (s *Session) ID() string   { return s.id }
func (s *Session) Date() string { return s.date }

// Interval is the autosave period fixed when the session opened
func (s *Session) Interval() time.Duration { return s.opts.AutosaveInterval }

func (s *Session) State() constants.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Fields returns a copy of the current field values
func (s *Session) Fields() models.EntryFields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Status is the short autosave indicator shown under the form
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastSaved is the time of the last successful draft write, zero if none
func (s *Session) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}
