package postgres

import (
	"context"

	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
)

func recordMistake(ctx context.Context, db querier, text string) (models.MistakeRecord, error) {
	rec := models.MistakeRecord{Mistake: text}
	err := db.QueryRowContext(ctx, `INSERT INTO mistakes (mistake, count) VALUES ($1, 1)
		ON CONFLICT (mistake) DO UPDATE SET count = mistakes.count + 1
		RETURNING id, count`, text).Scan(&rec.ID, &rec.Count)
	return rec, err
}

func (s *Store) RecordMistake(ctx context.Context, text string) (models.MistakeRecord, error) {
	if !storage.HasMistake(text) {
		return models.MistakeRecord{}, errors.NewValidation(string(models.FieldMistakes), "mistake must not be empty")
	}
	rec, err := recordMistake(ctx, s.db, text)
	if err != nil {
		return models.MistakeRecord{}, errors.NewStorage("record mistake", err)
	}
	return rec, nil
}

func (s *Store) ListMistakes(ctx context.Context) ([]models.MistakeRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, mistake, count FROM mistakes ORDER BY count DESC, id")
	if err != nil {
		return nil, errors.NewStorage("list mistakes", err)
	}
	defer rows.Close()

	records := []models.MistakeRecord{}
	for rows.Next() {
		var rec models.MistakeRecord
		if err := rows.Scan(&rec.ID, &rec.Mistake, &rec.Count); err != nil {
			return nil, errors.NewStorage("list mistakes", err)
		}
		records = append(records, rec)
	}
	return records, errors.NewStorage("list mistakes", rows.Err())
}
