package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
)

const entryColumns = "id, date, title, description, improvements, setbacks, mistakes"

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertEntry(ctx context.Context, db execer, fields models.EntryFields, date string) (int64, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO entries (date, title, description, improvements, setbacks, mistakes) VALUES (?, ?, ?, ?, ?, ?)",
		date, fields.Title, fields.Description, fields.Improvements, fields.Setbacks, fields.Mistakes,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) InsertEntry(ctx context.Context, fields models.EntryFields, date string) (int64, error) {
	if err := storage.ValidateEntry(fields, date); err != nil {
		return 0, err
	}
	db, err := s.conn()
	if err != nil {
		return 0, errors.NewStorage("insert entry", err)
	}
	id, err := insertEntry(ctx, db, fields, date)
	if err != nil {
		return 0, errors.NewStorage("insert entry", err)
	}
	return id, nil
}

func (s *Store) ListEntriesByDate(ctx context.Context, date string) ([]models.Entry, error) {
	entries, err := s.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries WHERE date = ? ORDER BY id DESC", date)
	return entries, errors.NewStorage("list entries", err)
}

func (s *Store) ListEntriesByMonth(ctx context.Context, year int, month time.Month) (map[string]int, error) {
	start, end := storage.MonthBounds(year, month)
	db, err := s.conn()
	if err != nil {
		return nil, errors.NewStorage("list month", err)
	}
	rows, err := db.QueryContext(ctx,
		"SELECT date, COUNT(*) FROM entries WHERE date >= ? AND date < ? GROUP BY date", start, end)
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
	db, err := s.conn()
	if err != nil {
		return 0, errors.NewStorage("count entries", err)
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE date = ?", date).Scan(&n); err != nil {
		return 0, errors.NewStorage("count entries", err)
	}
	return n, nil
}

func (s *Store) SearchEntries(ctx context.Context, query string) ([]models.Entry, error) {
	pattern := storage.LikePattern(query)
	entries, err := s.queryEntries(ctx, "SELECT "+entryColumns+` FROM entries
		WHERE title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR improvements LIKE ? ESCAPE '\'
		OR setbacks LIKE ? ESCAPE '\' OR mistakes LIKE ? ESCAPE '\'
		ORDER BY date DESC, id DESC`,
		pattern, pattern, pattern, pattern, pattern)
	return entries, errors.NewStorage("search entries", err)
}

func (s *Store) AllEntries(ctx context.Context) ([]models.Entry, error) {
	entries, err := s.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries ORDER BY date, id")
	return entries, errors.NewStorage("list all entries", err)
}

func (s *Store) DeleteEntriesWithoutDescription(ctx context.Context) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, errors.NewStorage("prune entries", err)
	}
	res, err := db.ExecContext(ctx, "DELETE FROM entries WHERE TRIM(description) = ''")
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
	db, err := s.conn()
	if err != nil {
		return 0, errors.NewStorage("prune entries", err)
	}
	res, err := db.ExecContext(ctx, "DELETE FROM entries WHERE date < ?", date)
	if err != nil {
		return 0, errors.NewStorage("prune entries", err)
	}
	n, err := res.RowsAffected()
	return n, errors.NewStorage("prune entries", err)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
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
