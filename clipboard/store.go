// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clipboard/store.go
// Summary: SQLite-backed clipboard history with full-text search.
//
// History lives in a single table with an FTS5 trigram index so any
// substring of a copied snippet can be matched from the tile.

package clipboard

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

// Kind tags what a history entry holds.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// Entry is one clipboard history item.
type Entry struct {
	ID       int64
	Time     time.Time
	Kind     Kind
	Content  string
	Language string
}

// FirstLine returns the display title for an entry.
func (e Entry) FirstLine() string {
	if e.Kind == KindImage {
		return "<img>"
	}
	line, _, _ := strings.Cut(e.Content, "\n")
	return line
}

// Current schema version - bump when schema changes require reindexing
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,     -- UnixNano
    kind INTEGER NOT NULL DEFAULT 0,
    language TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
`

// FTS schema - separate so it can be rebuilt on version changes
const ftsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS history_fts USING fts5(
    content,
    content='history',
    content_rowid='id',
    tokenize='trigram'
);

CREATE TRIGGER IF NOT EXISTS history_ai AFTER INSERT ON history BEGIN
    INSERT INTO history_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS history_ad AFTER DELETE ON history BEGIN
    INSERT INTO history_fts(history_fts, rowid, content) VALUES ('delete', old.id, old.content);
END;
`

// Store persists clipboard history in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	dsn := dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	needsReindex, err := checkAndMigrateSchema(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("check schema version: %w", err)
	}

	if _, err := db.Exec(ftsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create FTS schema: %w", err)
	}

	if needsReindex {
		log.Printf("[HISTORY] Schema version changed, rebuilding FTS index")
		if _, err := db.Exec("INSERT INTO history_fts(rowid, content) SELECT id, content FROM history"); err != nil {
			db.Close()
			return nil, fmt.Errorf("rebuild FTS index: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func checkAndMigrateSchema(db *sql.DB) (bool, error) {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil {
		// Missing row or table, treat as fresh.
		current = 0
	}
	if current == schemaVersion {
		return false, nil
	}

	drops := []string{
		"DROP TRIGGER IF EXISTS history_ai",
		"DROP TRIGGER IF EXISTS history_ad",
		"DROP TABLE IF EXISTS history_fts",
	}
	for _, stmt := range drops {
		if _, err := db.Exec(stmt); err != nil {
			return false, fmt.Errorf("migration failed on %q: %w", stmt, err)
		}
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return false, fmt.Errorf("update schema version: %w", err)
	}
	return current != 0, nil
}

// Add appends an entry unless it duplicates the most recent one.
// The stored entry (with its assigned ID) is returned.
func (s *Store) Add(e Entry) (Entry, error) {
	latest, err := s.latest()
	if err != nil {
		return Entry{}, err
	}
	if latest != nil && latest.Kind == e.Kind && latest.Content == e.Content {
		return *latest, nil
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	res, err := s.db.Exec(
		"INSERT INTO history (timestamp, kind, language, content) VALUES (?, ?, ?, ?)",
		e.Time.UnixNano(), int(e.Kind), e.Language, e.Content,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert history entry: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Store) latest() (*Entry, error) {
	row := s.db.QueryRow(
		"SELECT id, timestamp, kind, language, content FROM history ORDER BY timestamp DESC, id DESC LIMIT 1")
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		"SELECT id, timestamp, kind, language, content FROM history ORDER BY timestamp DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// likeEscaper quotes the LIKE wildcards and the escape character
// itself for substring patterns.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search matches entries by substring, newest first. Queries shorter
// than three characters use LIKE because the trigram tokenizer needs
// at least one full trigram.
func (s *Store) Search(query string, limit int) ([]Entry, error) {
	if query == "" {
		return s.Recent(limit)
	}

	var rows *sql.Rows
	var err error
	if utf8.RuneCountInString(query) < 3 {
		pattern := "%" + likeEscaper.Replace(query) + "%"
		rows, err = s.db.Query(`
			SELECT id, timestamp, kind, language, content
			FROM history
			WHERE content LIKE ? ESCAPE '\'
			ORDER BY timestamp DESC
			LIMIT ?
		`, pattern, limit)
	} else {
		// Double quotes make the FTS query a literal substring match.
		quoted := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
		rows, err = s.db.Query(`
			SELECT h.id, h.timestamp, h.kind, h.language, h.content
			FROM history_fts
			JOIN history h ON h.id = history_fts.rowid
			WHERE history_fts MATCH ?
			ORDER BY h.timestamp DESC
			LIMIT ?
		`, quoted, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Trim deletes everything beyond the newest max entries.
func (s *Store) Trim(max int) error {
	if max <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY timestamp DESC, id DESC LIMIT ?
		)
	`, max)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var tsNano int64
	var kind int
	if err := row.Scan(&e.ID, &tsNano, &kind, &e.Language, &e.Content); err != nil {
		return Entry{}, err
	}
	e.Time = time.Unix(0, tsNano)
	e.Kind = Kind(kind)
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			continue // skip malformed rows
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
