package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driven"
)

// DBFileName is the database file inside the data directory.
const DBFileName = "journal.db"

// Store owns the database connection and hands out store interfaces
// backed by it.
type Store struct {
	db         *sql.DB
	path       string
	migrations *goose.Provider
}

// NewStore opens (and migrates) the database in dataDir.
// If dataDir is empty, defaults to ~/.storesync/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".storesync", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SubmissionStore returns a SubmissionStore backed by this store.
func (s *Store) SubmissionStore() driven.SubmissionStore {
	return &submissionStore{store: s}
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion() (int, error) {
	version, err := s.migrations.GetDBVersion(context.Background())
	if err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return int(version), nil
}

// migrate applies pending migrations from fsys. The goose provider keeps
// its state on the store, so stores may be opened concurrently.
func (s *Store) migrate(fsys fs.FS) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	s.migrations = provider

	if _, err := provider.Up(context.Background()); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
