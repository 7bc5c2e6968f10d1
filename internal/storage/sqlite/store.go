package sqlite

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/migration"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage"
	"github.com/julianstephens/termjournal/migrations"
)

// busyTimeoutMs lets a second process wait for the write lock instead of failing
const busyTimeoutMs = 5000

// errNotOpen is returned by queries issued while the store is closed, for
// example during a backup restore
var errNotOpen = stderrors.New("database is not open")

// Store is safe for concurrent use. The pool may be closed and reopened while
// other goroutines hold the store; their queries fail instead of panicking.
type Store struct {
	path string
	mu   sync.RWMutex
	db   *sql.DB
	now  func() time.Time
}

var _ storage.Provider = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

func (s *Store) open() error {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", s.path, busyTimeoutMs)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.mu.Lock()
	s.db = db
	s.mu.Unlock()
	return nil
}

func (s *Store) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errNotOpen
	}
	return s.db, nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := s.conn(); err != nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return s.ensureDefaultSettings()
}

func (s *Store) Load() error {
	if _, err := s.conn(); err == nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) Backend() storage.Backend {
	return storage.BackendSQLite
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	db, _ := s.conn()
	return db
}

// SetClock replaces the time source used for draft timestamps
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	return migration.NewRunner(db, subFS, migration.SQLite), nil
}

// MigrationStatus reports the schema version against the embedded migrations
func (s *Store) MigrationStatus() (migration.Status, error) {
	runner, err := s.migrationRunner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status()
}

func (s *Store) runMigrations() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "backend", storage.BackendSQLite)
	})
	return err
}

// ensureDefaultSettings writes defaults for keys that are not stored yet
func (s *Store) ensureDefaultSettings() error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	for key, value := range models.SettingsToMap(models.DefaultSettings()) {
		if _, err := db.Exec("INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}
