// Package store persists the full medicine record collection.
//
// Store is the primary abstraction. JSONFile is the default backend — a
// single UTF-8 file holding one JSON array, rewritten atomically on every
// save. SQLite is an alternate backend using pure-Go SQLite
// (modernc.org/sqlite) for people who prefer a database file.
//
// Both backends load the whole collection into memory, fail fast on any
// corrupt entry, and never perform a partial load or a partial write.
package store

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/medtrack/medtrack/internal/record"
)

// DefaultFileName is the store location when no --file override is given.
const DefaultFileName = "medicines.json"

// Sentinel errors for the two store failure classes. Wrapped errors
// carry the detail; match with errors.Is.
var (
	// ErrCorrupt means the store exists but its content is malformed
	// or holds an entry that fails record validation.
	ErrCorrupt = errors.New("store is corrupt")

	// ErrIOFailure means the store file or its directory could not be
	// read or written.
	ErrIOFailure = errors.New("store I/O failure")
)

// Store loads and saves the complete record collection.
type Store interface {
	// Load returns every stored record in insertion order. A store
	// that does not exist yet loads as an empty collection.
	Load() ([]record.MedicineRecord, error)

	// Save replaces the stored collection with recs, atomically.
	Save(recs []record.MedicineRecord) error

	// Path returns the backing file path.
	Path() string

	// Close releases backend resources.
	Close() error
}

// Open picks a backend from the file extension: .db, .sqlite and
// .sqlite3 open the SQLite backend, everything else the JSON file.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return NewJSONFile(path), nil
	}
}
