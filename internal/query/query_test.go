package query

import (
	"errors"
	"testing"

	"github.com/medtrack/medtrack/internal/record"
)

// rec builds a valid record with the given name and expiry.
func rec(t *testing.T, name, expiry string) record.MedicineRecord {
	t.Helper()
	r, err := record.Validate(record.Fields{
		Name:     name,
		Strength: "10 mg",
		Form:     "tablet",
		Expiry:   expiry,
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func date(t *testing.T, s string) record.Date {
	t.Helper()
	d, err := record.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func names(recs []record.MedicineRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func equalNames(a []record.MedicineRecord, want ...string) bool {
	got := names(a)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestAll_CopiesInInsertionOrder(t *testing.T) {
	in := []record.MedicineRecord{
		rec(t, "B", "2026-05-01"),
		rec(t, "A", "2026-01-01"),
	}
	out := All(in)
	if !equalNames(out, "B", "A") {
		t.Errorf("order = %v", names(out))
	}

	// Mutating the copy must not touch the input.
	out[0].Name = "changed"
	if in[0].Name != "B" {
		t.Error("All returned a view into the input")
	}
}

func TestExpiringWithin_InclusiveBounds(t *testing.T) {
	today := date(t, "2026-12-01")
	recs := []record.MedicineRecord{rec(t, "Ibuprofen", "2026-12-31")}

	// 2026-12-31 is exactly today+30, so the inclusive window catches
	// it at 30 days and misses it at 29.
	out, err := ExpiringWithin(recs, today, 29)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("days=29: got %v, want none", names(out))
	}

	out, err = ExpiringWithin(recs, today, 30)
	if err != nil {
		t.Fatal(err)
	}
	if !equalNames(out, "Ibuprofen") {
		t.Errorf("days=30: got %v", names(out))
	}
}

func TestExpiringWithin_TodayIsSoonNotExpired(t *testing.T) {
	today := date(t, "2026-12-31")
	recs := []record.MedicineRecord{rec(t, "Paracetamol", "2026-12-31")}

	soon, err := ExpiringWithin(recs, today, 30)
	if err != nil {
		t.Fatal(err)
	}
	if !equalNames(soon, "Paracetamol") {
		t.Error("record expiring today should count as soon")
	}
	if got := Expired(recs, today); len(got) != 0 {
		t.Errorf("record expiring today counted as expired: %v", names(got))
	}
}

func TestExpiringWithin_ZeroWindow(t *testing.T) {
	today := date(t, "2026-06-15")
	recs := []record.MedicineRecord{
		rec(t, "today", "2026-06-15"),
		rec(t, "tomorrow", "2026-06-16"),
	}
	out, err := ExpiringWithin(recs, today, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !equalNames(out, "today") {
		t.Errorf("got %v", names(out))
	}
}

func TestExpiringWithin_NegativeWindow(t *testing.T) {
	_, err := ExpiringWithin(nil, date(t, "2026-01-01"), -1)
	var verr *record.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Reason != record.InvalidArgument {
		t.Errorf("Reason = %q", verr.Reason)
	}
	if verr.Field != "days" {
		t.Errorf("Field = %q", verr.Field)
	}
}

func TestExpiringWithin_SortedByExpiryStable(t *testing.T) {
	today := date(t, "2026-01-01")
	recs := []record.MedicineRecord{
		rec(t, "late", "2026-01-20"),
		rec(t, "early-first", "2026-01-05"),
		rec(t, "early-second", "2026-01-05"), // same expiry, inserted later
		rec(t, "mid", "2026-01-10"),
	}
	out, err := ExpiringWithin(recs, today, 30)
	if err != nil {
		t.Fatal(err)
	}
	if !equalNames(out, "early-first", "early-second", "mid", "late") {
		t.Errorf("order = %v", names(out))
	}
	// Input untouched.
	if !equalNames(recs, "late", "early-first", "early-second", "mid") {
		t.Errorf("input mutated: %v", names(recs))
	}
}

func TestExpired_StrictlyBefore(t *testing.T) {
	today := date(t, "2026-06-15")
	recs := []record.MedicineRecord{
		rec(t, "yesterday", "2026-06-14"),
		rec(t, "today", "2026-06-15"),
		rec(t, "long-gone", "2025-01-01"),
	}
	out := Expired(recs, today)
	if !equalNames(out, "long-gone", "yesterday") {
		t.Errorf("got %v", names(out))
	}
}

func TestExpiredAndSoon_Disjoint(t *testing.T) {
	today := date(t, "2026-06-15")
	recs := []record.MedicineRecord{
		rec(t, "a", "2026-06-10"),
		rec(t, "b", "2026-06-15"),
		rec(t, "c", "2026-06-20"),
		rec(t, "d", "2026-08-01"),
	}
	soon, err := ExpiringWithin(recs, today, 30)
	if err != nil {
		t.Fatal(err)
	}
	expired := Expired(recs, today)

	seen := map[string]bool{}
	for _, r := range expired {
		seen[r.Name] = true
	}
	for _, r := range soon {
		if seen[r.Name] {
			t.Errorf("%s is both expired and soon", r.Name)
		}
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	recs := []record.MedicineRecord{
		rec(t, "Ibuprofen", "2026-01-01"),
		rec(t, "Paracetamol", "2026-01-01"),
	}
	out := Search(recs, "IBU")
	if !equalNames(out, "Ibuprofen") {
		t.Errorf("got %v", names(out))
	}
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	recs := []record.MedicineRecord{
		rec(t, "Zinc", "2026-01-01"),
		rec(t, "Aspirin", "2026-01-01"),
	}
	out := Search(recs, "")
	if !equalNames(out, "Zinc", "Aspirin") {
		t.Errorf("got %v, want all in insertion order", names(out))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	recs := []record.MedicineRecord{rec(t, "Ibuprofen", "2026-01-01")}
	if out := Search(recs, "xyz"); len(out) != 0 {
		t.Errorf("got %v", names(out))
	}
}

func TestSearch_PreservesInsertionOrder(t *testing.T) {
	recs := []record.MedicineRecord{
		rec(t, "Vitamin C", "2026-09-01"),
		rec(t, "Vitamin A", "2026-01-01"),
		rec(t, "Vitamin B12", "2026-05-01"),
	}
	out := Search(recs, "vitamin")
	if !equalNames(out, "Vitamin C", "Vitamin A", "Vitamin B12") {
		t.Errorf("order = %v", names(out))
	}
}
