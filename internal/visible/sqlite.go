package visible

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteSlot keeps the set in a single row of a sqlite key/value table.
type SQLiteSlot struct {
	db   *sql.DB
	name string
}

// OpenSQLiteSlot opens (creating if needed) the database at path and applies
// the slot schema.
func OpenSQLiteSlot(path string) (*SQLiteSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteSlot{db: db, name: SlotName}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Load reads the set. A missing row is an empty set.
func (s *SQLiteSlot) Load(ctx context.Context) (Set, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, s.name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return Set{}, nil
	}
	if err != nil {
		return Set{}, fmt.Errorf("load slot %q: %w", s.name, err)
	}
	return Decode([]byte(value))
}

// Save upserts the set.
func (s *SQLiteSlot) Save(ctx context.Context, set Set) error {
	data, err := Encode(set)
	if err != nil {
		return fmt.Errorf("encode visible-set: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.name, string(data))
	if err != nil {
		return fmt.Errorf("save slot %q: %w", s.name, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
