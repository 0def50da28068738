package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack/internal/record"
)

// JSONFile stores the collection as one JSON array in a UTF-8 text file.
// Saves are atomic: the new content is written to a uniquely named temp
// file in the same directory, synced, then renamed over the old file, so
// a reader always sees either the fully-old or fully-new content.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSON-file store for the given path. The file is
// not touched until Load or Save is called.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (s *JSONFile) Path() string { return s.path }

// storedEntry is the wire shape of one record. All fields are read as
// raw strings so every loaded entry goes back through record.Validate.
type storedEntry struct {
	Name     string `json:"name"`
	Strength string `json:"strength"`
	Form     string `json:"form"`
	Batch    string `json:"batch"`
	Expiry   string `json:"expiry"`
	Location string `json:"location"`
}

// Load reads the whole collection. A missing file is an empty
// collection, not an error. Malformed JSON or any entry failing
// validation aborts the load with ErrCorrupt.
func (s *JSONFile) Load() ([]record.MedicineRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []record.MedicineRecord{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrIOFailure, s.path, err)
	}

	var entries []storedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCorrupt, s.path, err)
	}

	recs := make([]record.MedicineRecord, 0, len(entries))
	for i, e := range entries {
		rec, err := record.Validate(record.Fields{
			Name:     e.Name,
			Strength: e.Strength,
			Form:     e.Form,
			Batch:    e.Batch,
			Expiry:   e.Expiry,
			Location: e.Location,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %v", ErrCorrupt, s.path, i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Save writes the whole collection, replacing prior content atomically.
func (s *JSONFile) Save(recs []record.MedicineRecord) error {
	if recs == nil {
		recs = []record.MedicineRecord{} // encode as [], not null
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	data = append(data, '\n')

	// Unique temp name so two racing invocations never clobber each
	// other's in-flight write.
	dir := filepath.Dir(s.path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %v", ErrIOFailure, dir, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: write %s: %v", ErrIOFailure, tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: sync %s: %v", ErrIOFailure, tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close %s: %v", ErrIOFailure, tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: rename into %s: %v", ErrIOFailure, s.path, err)
	}
	return nil
}

// Close is a no-op; the JSON backend holds no open resources.
func (s *JSONFile) Close() error { return nil }
