package journal

import (
	"time"

	"github.com/julianstephens/termjournal/internal/constants"
)

// EventKind names what happened in a session
type EventKind string

const (
	EventDraftRecovered  EventKind = "draft-recovered"
	EventDraftSaved      EventKind = "draft-saved"
	EventEntryCommitted  EventKind = "entry-committed"
	EventStorageError    EventKind = "storage-error"
	EventDraftUnreadable EventKind = "draft-unreadable"
	EventMistakeRepeated EventKind = "mistake-repeated"
)

// Event is a user-facing notification raised by a session
type Event struct {
	Kind     EventKind
	Date     string
	Severity constants.Severity
	Message  string
	At       time.Time
}

// Notifier receives session events. Implementations must not block and must
// not call back into the session.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

type discard struct{}

func (discard) Notify(Event) {}
