// Package duckdb stores per-gene overlap results in a DuckDB database.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding gene results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS gene_results (
		seq UBIGINT PRIMARY KEY,
		name VARCHAR,
		strand VARCHAR,
		chr VARCHAR,
		intersections UBIGINT
	)`)
	return err
}

// IsDuckDB checks if a path names a DuckDB database file.
func IsDuckDB(path string) bool {
	return strings.HasSuffix(path, ".duckdb") ||
		strings.HasSuffix(path, ".db")
}
