package sqlite

import (
	"context"

	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
)

func (s *Store) CommitEntry(ctx context.Context, date string, fields models.EntryFields) (storage.CommitResult, error) {
	if err := storage.ValidateEntry(fields, date); err != nil {
		return storage.CommitResult{}, err
	}

	db, err := s.conn()
	if err != nil {
		return storage.CommitResult{}, errors.NewStorage("commit entry", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storage.CommitResult{}, errors.NewStorage("commit entry", err)
	}
	defer tx.Rollback()

	var result storage.CommitResult
	if result.EntryID, err = insertEntry(ctx, tx, fields, date); err != nil {
		return storage.CommitResult{}, errors.NewStorage("commit entry", err)
	}

	if text := fields.Mistakes; storage.HasMistake(text) {
		rec, err := recordMistake(ctx, tx, text)
		if err != nil {
			return storage.CommitResult{}, errors.NewStorage("commit entry", err)
		}
		result.Mistake = &rec
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM drafts WHERE date = ?", date); err != nil {
		return storage.CommitResult{}, errors.NewStorage("commit entry", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.CommitResult{}, errors.NewStorage("commit entry", err)
	}
	return result, nil
}
