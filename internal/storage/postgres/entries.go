package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
)

const entryColumns = "id, date, title, description, improvements, setbacks, mistakes"

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertEntry(ctx context.Context, db querier, fields models.EntryFields, date string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`INSERT INTO entries (date, title, description, improvements, setbacks, mistakes)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		date, fields.Title, fields.Description, fields.Improvements, fields.Setbacks, fields.Mistakes,
	).Scan(&id)
	return id, err
}

func (s *Store) InsertEntry(ctx context.Context, fields models.EntryFields, date string) (int64, error) {
	if err := storage.ValidateEntry(fields, date); err != nil {
		return 0, err
	}
	id, err := insertEntry(ctx, s.db, fields, date)
	if err != nil {
		return 0, errors.NewStorage("insert entry", err)
	}
	return id, nil
}

func (s *Store) ListEntriesByDate(ctx context.Context, date string) ([]models.Entry, error) {
	entries, err := s.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries WHERE date = $1 ORDER BY id DESC", date)
	return entries, errors.NewStorage("list entries", err)
}

func (s *Store) ListEntriesByMonth(ctx context.Context, year int, month time.Month) (map[string]int, error) {
	start, end := storage.MonthBounds(year, month)
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, COUNT(*) FROM entries WHERE date >= $1 AND date < $2 GROUP BY date", start, end)
	if err != nil {
		return nil, errors.NewStorage("list month", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date string
		var n int
		if err := rows.Scan(&date, &n); err != nil {
			return nil, errors.NewStorage("list month", err)
		}
		counts[date] = n
	}
	return counts, errors.NewStorage("list month", rows.Err())
}

func (s *Store) CountEntriesByDate(ctx context.Context, date string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE date = $1", date).Scan(&n); err != nil {
		return 0, errors.NewStorage("count entries", err)
	}
	return n, nil
}

func (s *Store) SearchEntries(ctx context.Context, query string) ([]models.Entry, error) {
	entries, err := s.queryEntries(ctx, "SELECT "+entryColumns+` FROM entries
		WHERE title ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\' OR improvements ILIKE $1 ESCAPE '\'
		OR setbacks ILIKE $1 ESCAPE '\' OR mistakes ILIKE $1 ESCAPE '\'
		ORDER BY date DESC, id DESC`, storage.LikePattern(query))
	return entries, errors.NewStorage("search entries", err)
}

func (s *Store) AllEntries(ctx context.Context) ([]models.Entry, error) {
	entries, err := s.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries ORDER BY date, id")
	return entries, errors.NewStorage("list all entries", err)
}

func (s *Store) DeleteEntriesWithoutDescription(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE TRIM(description) = ''")
	if err != nil {
		return 0, errors.NewStorage("prune entries", err)
	}
	n, err := res.RowsAffected()
	return n, errors.NewStorage("prune entries", err)
}

func (s *Store) DeleteEntriesBefore(ctx context.Context, date string) (int64, error) {
	if err := storage.ValidateDate(date); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE date < $1", date)
	if err != nil {
		return 0, errors.NewStorage("prune entries", err)
	}
	n, err := res.RowsAffected()
	return n, errors.NewStorage("prune entries", err)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Title, &e.Description, &e.Improvements, &e.Setbacks, &e.Mistakes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
