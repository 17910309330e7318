package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS translation_exclusions (
	collection  TEXT NOT NULL,
	document_id TEXT NOT NULL,
	locale      TEXT NOT NULL,
	paths       TEXT NOT NULL DEFAULT '[]',
	updated_at  TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (collection, document_id, locale)
);
`

// SQLiteStore is an embedded persistent exclusion store. The primary key on
// (collection, document_id, locale) enforces the at-most-one-record-per-
// triple invariant at the schema level.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the schema exists. WAL mode keeps concurrent readers cheap.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStoreFromDB wraps an existing database handle. The caller is
// responsible for the schema.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ExcludedPaths returns the stored list, empty when no record exists.
func (s *SQLiteStore) ExcludedPaths(ctx context.Context, collection, documentID, locale string) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT paths FROM translation_exclusions WHERE collection = ? AND document_id = ? AND locale = ?`,
		collection, documentID, locale,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return nil, fmt.Errorf("decoding stored paths: %w", err)
	}
	return paths, nil
}

// SetExcludedPaths upserts the list for the triple.
func (s *SQLiteStore) SetExcludedPaths(ctx context.Context, collection, documentID, locale string, paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	raw, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO translation_exclusions (collection, document_id, locale, paths, updated_at)
		 VALUES (?, ?, ?, ?, datetime('now'))
		 ON CONFLICT (collection, document_id, locale)
		 DO UPDATE SET paths = excluded.paths, updated_at = excluded.updated_at`,
		collection, documentID, locale, string(raw),
	)
	return err
}

// DeleteForDocument removes every locale's record for the document.
func (s *SQLiteStore) DeleteForDocument(ctx context.Context, collection, documentID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM translation_exclusions WHERE collection = ? AND document_id = ?`,
		collection, documentID,
	)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Verify SQLiteStore implements ExclusionStore.
var _ ExclusionStore = (*SQLiteStore)(nil)
