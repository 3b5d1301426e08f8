// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kv

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SQLITE STORE
// =============================================================================

// schema is the key-value table. WITHOUT ROWID keeps the table clustered
// on the key, which is all this store ever queries by.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value BLOB NOT NULL
) WITHOUT ROWID;
`

// SQLiteStore persists keys in a single SQLite database file.
// Selected with storage.backend = "sqlite" in the config.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &StoreError{Op: "open", Message: "failed to create storage directory", Cause: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Op: "open", Message: "failed to open database", Cause: err}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Message: "failed to initialize schema", Cause: err}
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the value for key, or found=false when the row is absent.
func (s *SQLiteStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StoreError{Op: "get", Key: key, Message: "failed to read record", Cause: err}
	}
	return value, true, nil
}

// Set writes the value for key, replacing any previous value.
func (s *SQLiteStore) Set(key string, value []byte) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return &StoreError{Op: "set", Key: key, Message: "failed to write record", Cause: err}
	}
	return nil
}

// Delete removes the record for key. Missing keys are ignored.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return &StoreError{Op: "delete", Key: key, Message: "failed to remove record", Cause: err}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
