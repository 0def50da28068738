// Package query implements pure filters over a medicine record
// collection. Every function takes the collection and, where dates
// matter, an injected "today" — the clock is never read here, so
// results are deterministic and testable. Inputs are never mutated;
// every function returns a fresh slice.
package query

import (
	"sort"
	"strings"

	"github.com/medtrack/medtrack/internal/record"
)

// DefaultWindowDays is the expiring-soon window when none is given.
const DefaultWindowDays = 30

// All returns a copy of the collection in original insertion order.
func All(recs []record.MedicineRecord) []record.MedicineRecord {
	out := make([]record.MedicineRecord, len(recs))
	copy(out, recs)
	return out
}

// ExpiringWithin returns the records whose expiry falls in the
// inclusive window [today, today+windowDays], sorted by ascending
// expiry with ties kept in insertion order. A negative window is
// rejected with an invalid-argument validation error.
func ExpiringWithin(recs []record.MedicineRecord, today record.Date, windowDays int) ([]record.MedicineRecord, error) {
	if windowDays < 0 {
		return nil, &record.ValidationError{
			Field:  "days",
			Reason: record.InvalidArgument,
			Detail: "must be a non-negative integer",
		}
	}

	limit := today.AddDays(windowDays)
	out := []record.MedicineRecord{}
	for _, r := range recs {
		if !r.Expiry.Before(today) && !r.Expiry.After(limit) {
			out = append(out, r)
		}
	}
	sortByExpiry(out)
	return out, nil
}

// Expired returns the records whose expiry is strictly before today,
// sorted by ascending expiry with ties kept in insertion order. A
// record expiring today is "soon", not expired.
func Expired(recs []record.MedicineRecord, today record.Date) []record.MedicineRecord {
	out := []record.MedicineRecord{}
	for _, r := range recs {
		if r.Expiry.Before(today) {
			out = append(out, r)
		}
	}
	sortByExpiry(out)
	return out
}

// Search returns the records whose name contains q, case-insensitively.
// The empty query matches every record. Insertion order is preserved;
// there is no relevance ranking.
func Search(recs []record.MedicineRecord, q string) []record.MedicineRecord {
	needle := strings.ToLower(q)
	out := []record.MedicineRecord{}
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// sortByExpiry sorts in place by ascending expiry date. The sort is
// stable so equal dates keep their original insertion order.
func sortByExpiry(recs []record.MedicineRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Expiry.Before(recs[j].Expiry)
	})
}
