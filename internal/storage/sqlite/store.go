package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/lo3003/studyplanner/internal/logger"
	"github.com/lo3003/studyplanner/internal/migration"
	"github.com/lo3003/studyplanner/internal/scheduler"
	"github.com/lo3003/studyplanner/internal/storage"
	"github.com/lo3003/studyplanner/internal/storage/sqlstore"
	"github.com/lo3003/studyplanner/migrations"
)

// Store is the default, file-backed Provider.
type Store struct {
	*sqlstore.Store

	path   string
	userID string
	db     *sql.DB
}

var _ storage.Provider = (*Store)(nil)

func NewStore(path, userID string) *Store {
	return &Store{
		path:   path,
		userID: userID,
	}
}

func (s *Store) open() error {
	// foreign_keys makes ON DELETE CASCADE effective; busy_timeout covers the autoplan
	// daemon and an interactive command touching the file at the same time
	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	s.Store = sqlstore.New(db, sqlstore.Question, s.userID)
	return nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		defaults := scheduler.DefaultSettings()
		defaults.UserID = s.UserID()
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS).ValidateVersion()
}

func (s *Store) GetConfigPath() string {
	return s.path
}
