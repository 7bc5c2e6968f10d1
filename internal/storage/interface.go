package storage

import (
	"context"
	"time"

	"github.com/julianstephens/termjournal/internal/models"
)

// EntryStore persists committed journal entries. Entries are append-only and
// several entries may share a date.
type EntryStore interface {
	// InsertEntry validates the title and stores a new entry, returning its id.
	InsertEntry(ctx context.Context, fields models.EntryFields, date string) (int64, error)
	// ListEntriesByDate returns the entries for date, newest id first.
	ListEntriesByDate(ctx context.Context, date string) ([]models.Entry, error)
	// ListEntriesByMonth maps every date in the month that has entries to its entry count.
	ListEntriesByMonth(ctx context.Context, year int, month time.Month) (map[string]int, error)
	CountEntriesByDate(ctx context.Context, date string) (int, error)
	// SearchEntries matches query as a substring of any text field, newest first.
	SearchEntries(ctx context.Context, query string) ([]models.Entry, error)
	// AllEntries returns every entry ordered by date then id.
	AllEntries(ctx context.Context) ([]models.Entry, error)
	DeleteEntriesWithoutDescription(ctx context.Context) (int64, error)
	DeleteEntriesBefore(ctx context.Context, date string) (int64, error)
}

// DraftStore keeps at most one in-progress draft per date.
type DraftStore interface {
	// GetDraft reports found=false when no draft exists. A stored blob that
	// cannot be decoded yields a DeserializationError.
	GetDraft(ctx context.Context, date string) (models.Draft, bool, error)
	PutDraft(ctx context.Context, date string, content models.EntryFields) error
	DeleteDraft(ctx context.Context, date string) error
	ListDrafts(ctx context.Context) ([]models.Draft, error)
}

// MistakeStore tracks how often identical mistake text has been committed.
type MistakeStore interface {
	// RecordMistake stores text with count 1 or increments an existing record.
	RecordMistake(ctx context.Context, text string) (models.MistakeRecord, error)
	// ListMistakes returns records ordered by count, highest first.
	ListMistakes(ctx context.Context) ([]models.MistakeRecord, error)
}

type SettingsStore interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error
}

// CommitResult describes what a single CommitEntry transaction wrote.
type CommitResult struct {
	EntryID int64
	// Mistake is nil when the entry had no mistakes text.
	Mistake *models.MistakeRecord
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	EntryStore
	DraftStore
	MistakeStore
	SettingsStore

	// CommitEntry inserts the entry, records its mistake text and deletes the
	// draft for date in one transaction.
	CommitEntry(ctx context.Context, date string, fields models.EntryFields) (CommitResult, error)

	// Utils
	GetConfigPath() string
	Backend() Backend
}

// Backend names the database engine behind a Provider
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)
