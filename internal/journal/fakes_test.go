package journal

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
)

var errDiskFull = stderrors.New("disk full")

// memStore is an in-memory Store with failure injection
type memStore struct {
	mu       sync.Mutex
	drafts   map[string]models.EntryFields
	entries  map[string][]models.Entry
	mistakes map[string]int
	nextID   int64

	getErr    error
	putErr    error
	commitErr error
	puts      int
	commits   int
	onPut     func()
	onCommit  func()
}

func newMemStore() *memStore {
	return &memStore{
		drafts:   map[string]models.EntryFields{},
		entries:  map[string][]models.Entry{},
		mistakes: map[string]int{},
	}
}

func (m *memStore) GetDraft(_ context.Context, date string) (models.Draft, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return models.Draft{}, false, m.getErr
	}
	content, ok := m.drafts[date]
	return models.Draft{Date: date, Content: content}, ok, nil
}

func (m *memStore) PutDraft(_ context.Context, date string, content models.EntryFields) error {
	m.mu.Lock()
	hook := m.onPut
	m.onPut = nil
	m.mu.Unlock()
	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.drafts[date] = content
	return nil
}

func (m *memStore) CommitEntry(_ context.Context, date string, fields models.EntryFields) (storage.CommitResult, error) {
	m.mu.Lock()
	hook := m.onCommit
	m.onCommit = nil
	m.mu.Unlock()
	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits++
	if m.commitErr != nil {
		return storage.CommitResult{}, errors.NewStorage("commit entry", m.commitErr)
	}
	m.nextID++
	m.entries[date] = append([]models.Entry{{ID: m.nextID, Date: date, EntryFields: fields}}, m.entries[date]...)
	result := storage.CommitResult{EntryID: m.nextID}
	if fields.Mistakes != "" {
		m.mistakes[fields.Mistakes]++
		result.Mistake = &models.MistakeRecord{Mistake: fields.Mistakes, Count: m.mistakes[fields.Mistakes]}
	}
	delete(m.drafts, date)
	return result, nil
}

func (m *memStore) ListEntriesByDate(_ context.Context, date string) ([]models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Entry{}, m.entries[date]...), nil
}

func (m *memStore) draft(date string) (models.EntryFields, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[date]
	return d, ok
}

func (m *memStore) putCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// manualScheduler never fires on its own; tests call Fire
type manualScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	task     *manualTask
}

type manualTask struct {
	mu      sync.Mutex
	stopped bool
}

func (t *manualTask) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *manualTask) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (s *manualScheduler) Start(interval time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = interval
	s.fn = fn
	s.task = &manualTask{}
	return s.task
}

// Fire runs the job the way a ticker would, even after Stop
func (s *manualScheduler) Fire() {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// recorder collects notifications
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []EventKind
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}
