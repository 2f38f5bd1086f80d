// Package index maintains a SQLite index of entry keys and DOIs
// across one or more bib files, for fast duplicate checks before
// appending new entries.
package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bibkit/bibkit/internal/bib"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite index database.
type DB struct {
	db *sql.DB
}

// Open opens or creates the index at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			doi TEXT,
			title TEXT,
			year TEXT,
			file TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_key ON entries(key);
		CREATE INDEX IF NOT EXISTS idx_entries_doi ON entries(doi)
			WHERE doi IS NOT NULL AND doi != '';
	`
	_, err := db.Exec(schema)
	return err
}

// Add indexes every entry of a library under the given file path.
// Entries previously indexed for that file are replaced.
func (d *DB) Add(file string, lib *bib.Library) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries WHERE file = ?", file); err != nil {
		return fmt.Errorf("clearing file entries: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO entries (key, entry_type, doi, title, year, file)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range lib.Entries() {
		doi, _ := e.Lookup("doi")
		title, _ := e.Lookup("title")
		year, _ := e.Lookup("year")
		if _, err := stmt.Exec(e.Key, e.Type, doi, title, year, file); err != nil {
			return fmt.Errorf("indexing entry %q: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Clear removes every indexed entry.
func (d *DB) Clear() error {
	if _, err := d.db.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	return nil
}

// HasKey reports whether any indexed entry uses the key.
func (d *DB) HasKey(key string) (bool, error) {
	return d.exists("SELECT 1 FROM entries WHERE key = ? LIMIT 1", key)
}

// HasDOI reports whether any indexed entry carries the DOI.
func (d *DB) HasDOI(doi string) (bool, error) {
	return d.exists("SELECT 1 FROM entries WHERE doi = ? LIMIT 1", doi)
}

func (d *DB) exists(query, arg string) (bool, error) {
	var one int
	err := d.db.QueryRow(query, arg).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("querying index: %w", err)
	}
	return true, nil
}

// Count reports the number of indexed entries.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// Duplicate records one key or DOI shared by several indexed entries.
type Duplicate struct {
	Value string   // the shared key or DOI
	Files []string // every file containing it, sorted
}

// DuplicateKeys returns keys used by more than one indexed entry.
func (d *DB) DuplicateKeys() ([]Duplicate, error) {
	return d.duplicates("key", "")
}

// DuplicateDOIs returns DOIs carried by more than one indexed entry.
func (d *DB) DuplicateDOIs() ([]Duplicate, error) {
	return d.duplicates("doi", "AND doi IS NOT NULL AND doi != ''")
}

func (d *DB) duplicates(column, filter string) ([]Duplicate, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s, GROUP_CONCAT(file, '|')
		FROM entries
		WHERE 1=1 %[2]s
		GROUP BY %[1]s
		HAVING COUNT(*) > 1
		ORDER BY %[1]s
	`, column, filter)

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying duplicates: %w", err)
	}
	defer rows.Close()

	var dups []Duplicate
	for rows.Next() {
		var dup Duplicate
		var files string
		if err := rows.Scan(&dup.Value, &files); err != nil {
			return nil, fmt.Errorf("scanning duplicate: %w", err)
		}
		dup.Files = strings.Split(files, "|")
		dups = append(dups, dup)
	}
	return dups, rows.Err()
}

// Check reports cross-file duplicates as diagnostics.
func (d *DB) Check() ([]bib.Diagnostic, error) {
	var diags []bib.Diagnostic

	keys, err := d.DuplicateKeys()
	if err != nil {
		return nil, err
	}
	for _, dup := range keys {
		diags = append(diags, bib.Diagnostic{
			Severity: bib.SeverityWarning,
			Message: fmt.Sprintf("key %q appears in multiple entries (%s)",
				dup.Value, strings.Join(dup.Files, ", ")),
		})
	}

	dois, err := d.DuplicateDOIs()
	if err != nil {
		return nil, err
	}
	for _, dup := range dois {
		diags = append(diags, bib.Diagnostic{
			Severity: bib.SeverityWarning,
			Message: fmt.Sprintf("DOI %q appears in multiple entries (%s)",
				dup.Value, strings.Join(dup.Files, ", ")),
		})
	}
	return diags, nil
}
