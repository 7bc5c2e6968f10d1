package journal

import (
	"context"
	"time"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/models"
)

// EntryReader is the read side of the entry store
type EntryReader interface {
	ListEntriesByDate(ctx context.Context, date string) ([]models.Entry, error)
}

// Lookup serves the read-only day view and calendar previews
type Lookup struct {
	store   EntryReader
	timeout time.Duration
}

func NewLookup(store EntryReader) *Lookup {
	return &Lookup{store: store, timeout: constants.StorageTimeout}
}

// ForDate returns the entries committed on date, newest first
func (l *Lookup) ForDate(ctx context.Context, date string) ([]models.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.store.ListEntriesByDate(ctx, date)
}

// Preview summarizes the newest entry of a day
type Preview struct {
	Title       string
	Description string
	// Count is the number of entries on the day
	Count int
}

// Preview returns a summary of the newest entry on date. found is false when
// the day has no entries.
func (l *Lookup) Preview(ctx context.Context, date string) (Preview, bool, error) {
	entries, err := l.ForDate(ctx, date)
	if err != nil {
		return Preview{}, false, err
	}
	if len(entries) == 0 {
		return Preview{}, false, nil
	}
	newest := entries[0]
	return Preview{
		Title:       newest.Title,
		Description: Truncate(newest.Description, constants.PreviewLength),
		Count:       len(entries),
	}, true, nil
}

// Truncate shortens s to n runes and marks the cut with "..."
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
