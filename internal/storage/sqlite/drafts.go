package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
)

func (s *Store) GetDraft(ctx context.Context, date string) (models.Draft, bool, error) {
	db, err := s.conn()
	if err != nil {
		return models.Draft{}, false, errors.NewStorage("get draft", err)
	}
	var blob, updated string
	err = db.QueryRowContext(ctx, "SELECT content, updated_at FROM drafts WHERE date = ?", date).Scan(&blob, &updated)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.Draft{}, false, nil
	}
	if err != nil {
		return models.Draft{}, false, errors.NewStorage("get draft", err)
	}

	content, err := storage.DecodeDraft(date, blob)
	if err != nil {
		return models.Draft{}, true, err
	}
	return models.Draft{Date: date, Content: content, UpdatedAt: parseTimestamp(updated)}, true, nil
}

func (s *Store) PutDraft(ctx context.Context, date string, content models.EntryFields) error {
	if err := storage.ValidateDate(date); err != nil {
		return err
	}
	blob, err := storage.EncodeDraft(content)
	if err != nil {
		return errors.NewStorage("put draft", err)
	}
	db, err := s.conn()
	if err != nil {
		return errors.NewStorage("put draft", err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO drafts (date, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		date, blob, s.now().UTC().Format(time.RFC3339Nano))
	return errors.NewStorage("put draft", err)
}

func (s *Store) DeleteDraft(ctx context.Context, date string) error {
	db, err := s.conn()
	if err != nil {
		return errors.NewStorage("delete draft", err)
	}
	_, err = db.ExecContext(ctx, "DELETE FROM drafts WHERE date = ?", date)
	return errors.NewStorage("delete draft", err)
}

// ListDrafts returns every stored draft ordered by date. Drafts whose blob
// cannot be decoded are returned with empty content and Unreadable set.
func (s *Store) ListDrafts(ctx context.Context) ([]models.Draft, error) {
	db, err := s.conn()
	if err != nil {
		return nil, errors.NewStorage("list drafts", err)
	}
	rows, err := db.QueryContext(ctx, "SELECT date, content, updated_at FROM drafts ORDER BY date")
	if err != nil {
		return nil, errors.NewStorage("list drafts", err)
	}
	defer rows.Close()

	drafts := []models.Draft{}
	for rows.Next() {
		var date, blob, updated string
		if err := rows.Scan(&date, &blob, &updated); err != nil {
			return nil, errors.NewStorage("list drafts", err)
		}
		content, err := storage.DecodeDraft(date, blob)
		drafts = append(drafts, models.Draft{
			Date:       date,
			Content:    content,
			UpdatedAt:  parseTimestamp(updated),
			Unreadable: err != nil,
		})
	}
	return drafts, errors.NewStorage("list drafts", rows.Err())
}

func parseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
