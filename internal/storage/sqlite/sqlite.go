// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/splitledger/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DataVersion derives a change token from row counts and newest timestamps
// across the tables that feed balance computations. Any write that can alter
// a balance produces a different token, which is all cache keying needs.
func (s *SQLiteStore) DataVersion(ctx context.Context) (string, error) {
	var (
		expenseCount, expenseMax       int64
		settlementCount, settlementMax int64
		memberCount                    int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM expenses),
			(SELECT IFNULL(MAX(created_at), 0) FROM expenses),
			(SELECT COUNT(*) FROM settlements),
			(SELECT IFNULL(MAX(MAX(created_at, IFNULL(completed_at, 0), IFNULL(rejected_at, 0))), 0) FROM settlements),
			(SELECT COUNT(*) FROM group_members)`,
	).Scan(&expenseCount, &expenseMax, &settlementCount, &settlementMax, &memberCount)
	if err != nil {
		return "", fmt.Errorf("failed to compute data version: %w", err)
	}
	return fmt.Sprintf("e%d.%d-s%d.%d-m%d",
		expenseCount, expenseMax, settlementCount, settlementMax, memberCount), nil
}
