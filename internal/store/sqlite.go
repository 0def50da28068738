package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/medtrack/medtrack/internal/record"
)

// SQLite stores the collection in a single-table SQLite database.
// The autoincrement position column preserves insertion order; Save
// replaces every row inside one transaction, so a reader sees either
// the old or the new collection, never a mix.
type SQLite struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens (or creates) a SQLite-backed store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %v", ErrIOFailure, path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS medicines (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT NOT NULL,
		strength TEXT NOT NULL,
		form     TEXT NOT NULL,
		batch    TEXT NOT NULL DEFAULT '',
		expiry   TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT ''
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema in %s: %v", ErrCorrupt, path, err)
	}

	return &SQLite{path: path, db: db}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Load returns every row in insertion order, re-validating each one.
// A row that fails validation marks the whole store corrupt.
func (s *SQLite) Load() ([]record.MedicineRecord, error) {
	rows, err := s.db.Query(
		"SELECT name, strength, form, batch, expiry, location FROM medicines ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrCorrupt, s.path, err)
	}
	defer rows.Close()

	recs := []record.MedicineRecord{}
	for rows.Next() {
		var f record.Fields
		if err := rows.Scan(&f.Name, &f.Strength, &f.Form, &f.Batch, &f.Expiry, &f.Location); err != nil {
			return nil, fmt.Errorf("%w: scan row in %s: %v", ErrCorrupt, s.path, err)
		}
		rec, err := record.Validate(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", ErrCorrupt, s.path, len(recs), err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrIOFailure, s.path, err)
	}
	return recs, nil
}

// Save replaces the stored collection with recs in one transaction.
func (s *SQLite) Save(recs []record.MedicineRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin tx on %s: %v", ErrIOFailure, s.path, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM medicines"); err != nil {
		return fmt.Errorf("%w: clear %s: %v", ErrIOFailure, s.path, err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO medicines (name, strength, form, batch, expiry, location) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("%w: prepare insert on %s: %v", ErrIOFailure, s.path, err)
	}
	defer stmt.Close()

	for _, r := range recs {
		if _, err := stmt.Exec(r.Name, r.Strength, r.Form, r.Batch, r.Expiry.String(), r.Location); err != nil {
			return fmt.Errorf("%w: insert into %s: %v", ErrIOFailure, s.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit to %s: %v", ErrIOFailure, s.path, err)
	}
	return nil
}

// Close shuts down the database handle.
func (s *SQLite) Close() error { return s.db.Close() }
