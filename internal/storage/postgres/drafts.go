package postgres

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
	var blob string
	var updated time.Time
	err := s.db.QueryRowContext(ctx, "SELECT content, updated_at FROM drafts WHERE date = $1", date).Scan(&blob, &updated)
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
	return models.Draft{Date: date, Content: content, UpdatedAt: updated}, true, nil
}

func (s *Store) PutDraft(ctx context.Context, date string, content models.EntryFields) error {
	if err := storage.ValidateDate(date); err != nil {
		return err
	}
	blob, err := storage.EncodeDraft(content)
	if err != nil {
		return errors.NewStorage("put draft", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO drafts (date, content, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (date) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`,
		date, blob)
	return errors.NewStorage("put draft", err)
}

func (s *Store) DeleteDraft(ctx context.Context, date string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE date = $1", date)
	return errors.NewStorage("delete draft", err)
}

func (s *Store) ListDrafts(ctx context.Context) ([]models.Draft, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT date, content, updated_at FROM drafts ORDER BY date")
	if err != nil {
		return nil, errors.NewStorage("list drafts", err)
	}
	defer rows.Close()

	drafts := []models.Draft{}
	for rows.Next() {
		var d models.Draft
		var blob string
		if err := rows.Scan(&d.Date, &blob, &d.UpdatedAt); err != nil {
			return nil, errors.NewStorage("list drafts", err)
		}
		content, err := storage.DecodeDraft(d.Date, blob)
		d.Content = content
		d.Unreadable = err != nil
		drafts = append(drafts, d)
	}
	return drafts, errors.NewStorage("list drafts", rows.Err())
}
