// Package record defines the medicine entry model and its validation rules.
//
// A MedicineRecord is one tracked item: what it is, how strong, in which
// form, and when it expires. Validation is a pure constructor — it trims,
// checks, and either returns a normalized record or a ValidationError
// naming the offending field. Nothing in this package touches the clock
// or the filesystem.
package record

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the only accepted expiry format.
const dateLayout = "2006-01-02"

// Reason classifies why validation rejected a field or argument.
type Reason string

const (
	MissingField    Reason = "missing_field"
	InvalidDate     Reason = "invalid_date"
	InvalidArgument Reason = "invalid_argument"
)

// ValidationError reports a rejected field or argument by name.
type ValidationError struct {
	Field  string
	Reason Reason
	Detail string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case MissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case InvalidDate:
		return fmt.Sprintf("%s: %s (use YYYY-MM-DD)", e.Field, e.Detail)
	default:
		return fmt.Sprintf("%s: %s", e.Field, e.Detail)
	}
}

// Date is a calendar day with no time-of-day component.
// It round-trips through JSON as a "YYYY-MM-DD" string.
type Date struct {
	t time.Time
}

// ParseDate parses a "YYYY-MM-DD" string into a Date. Impossible
// calendar dates (2026-02-30) are rejected, not normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return Date{t: t}, nil
}

// NewDate builds a Date from its components. Intended for tests and
// fixed reference dates; out-of-range components are normalized the
// way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today truncates a wall-clock instant to its calendar day.
func Today(now time.Time) Date {
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) String() string { return d.t.Format(dateLayout) }

// IsZero reports whether d is the uninitialized Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MedicineRecord is one tracked medicine item. Identity is positional:
// the store preserves insertion order and duplicates are permitted.
type MedicineRecord struct {
	Name     string `json:"name"`
	Strength string `json:"strength"`
	Form     string `json:"form"`
	Batch    string `json:"batch"`
	Expiry   Date   `json:"expiry"`
	Location string `json:"location"`
}

// Fields is the raw, untrimmed input for one record, as collected from
// the CLI or read back from the store.
type Fields struct {
	Name     string
	Strength string
	Form     string
	Batch    string
	Expiry   string
	Location string
}

// Validate normalizes and checks one set of fields. Name, strength and
// form must be non-empty after trimming; expiry must be a real calendar
// date in YYYY-MM-DD form. Batch and location are optional and default
// to empty. Validate has no side effects and is idempotent: feeding a
// valid record's fields back through it yields the same record.
func Validate(f Fields) (MedicineRecord, error) {
	rec := MedicineRecord{
		Name:     strings.TrimSpace(f.Name),
		Strength: strings.TrimSpace(f.Strength),
		Form:     strings.TrimSpace(f.Form),
		Batch:    strings.TrimSpace(f.Batch),
		Location: strings.TrimSpace(f.Location),
	}

	for _, req := range []struct {
		field string
		value string
	}{
		{"name", rec.Name},
		{"strength", rec.Strength},
		{"form", rec.Form},
	} {
		if req.value == "" {
			return MedicineRecord{}, &ValidationError{Field: req.field, Reason: MissingField}
		}
	}

	expiry, err := ParseDate(strings.TrimSpace(f.Expiry))
	if err != nil {
		return MedicineRecord{}, &ValidationError{
			Field:  "expiry",
			Reason: InvalidDate,
			Detail: err.Error(),
		}
	}
	rec.Expiry = expiry

	return rec, nil
}

// AsFields converts a record back to its raw field representation.
// Used by store backends to re-validate loaded entries.
func (r MedicineRecord) AsFields() Fields {
	return Fields{
		Name:     r.Name,
		Strength: r.Strength,
		Form:     r.Form,
		Batch:    r.Batch,
		Expiry:   r.Expiry.String(),
		Location: r.Location,
	}
}
