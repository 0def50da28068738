// Package export serializes a medicine record collection to tabular
// formats. Exports are direct: whatever collection is passed in is
// written in its current order, with no filtering or computed columns.
// Callers that want a filtered export apply the query package first.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/medtrack/medtrack/internal/record"
)

// columns is the fixed export column order, shared by CSV and XLSX.
var columns = []string{"name", "strength", "form", "batch", "expiry", "location"}

// ToCSV renders the collection as RFC-4180 CSV text: one header row,
// then one row per record. Fields containing commas, quotes or
// newlines are quoted, with embedded quotes doubled.
func ToCSV(recs []record.MedicineRecord) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range recs {
		if err := w.Write(row(r)); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// row maps one record onto the export columns.
func row(r record.MedicineRecord) []string {
	return []string{r.Name, r.Strength, r.Form, r.Batch, r.Expiry.String(), r.Location}
}
