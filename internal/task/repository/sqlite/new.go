package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"task-reminder/internal/task/repository"
	"task-reminder/pkg/log"
)

const memoryPath = ":memory:"

type implRepository struct {
	db  *sql.DB
	l   log.Logger
	loc *time.Location
	now func() time.Time
}

// Open opens the SQLite database at path and applies pending migrations.
func Open(path string) (*sql.DB, error) {
	dsn := memoryPath
	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == memoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// New creates a SQLite-backed Repository. Times are returned in loc.
func New(db *sql.DB, l log.Logger, loc *time.Location) repository.Repository {
	if db == nil {
		panic("task/repository/sqlite: db is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &implRepository{db: db, l: l, loc: loc, now: time.Now}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/sqlite.%s", method)
}
