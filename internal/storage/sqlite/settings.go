package sqlite

import (
	"context"

	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
)

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	db, err := s.conn()
	if err != nil {
		return models.Settings{}, errors.NewStorage("get settings", err)
	}
	rows, err := db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, errors.NewStorage("get settings", err)
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, errors.NewStorage("get settings", err)
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, errors.NewStorage("get settings", err)
	}

	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return errors.NewValidation("settings", err.Error())
	}

	db, err := s.conn()
	if err != nil {
		return errors.NewStorage("save settings", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorage("save settings", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return errors.NewStorage("save settings", err)
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.ExecContext(ctx, key, value); err != nil {
			return errors.NewStorage("save settings", err)
		}
	}

	return errors.NewStorage("save settings", tx.Commit())
}
