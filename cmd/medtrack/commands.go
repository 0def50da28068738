package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/medtrack/medtrack/internal/export"
	"github.com/medtrack/medtrack/internal/observability"
	"github.com/medtrack/medtrack/internal/query"
	"github.com/medtrack/medtrack/internal/record"
	"github.com/medtrack/medtrack/internal/store"
)

// app carries one command invocation's dependencies. The store is
// opened per command so version/help never touch the disk, and "today"
// is captured once in main so every query sees the same reference date.
type app struct {
	storePath string
	log       *observability.Logger
	out       io.Writer
	today     record.Date
}

// openStore opens the configured store backend.
func (a *app) openStore() (store.Store, error) {
	st, err := store.Open(a.storePath)
	if err != nil {
		return nil, err
	}
	a.log.Debug("store opened", "path", st.Path())
	return st, nil
}

// load reads the full collection from an open store.
func (a *app) load(st store.Store) ([]record.MedicineRecord, error) {
	recs, err := st.Load()
	if err != nil {
		return nil, err
	}
	a.log.StoreEvent("load", st.Path(), len(recs))
	return recs, nil
}

// runAdd validates the new record, appends it and saves. A validation
// failure returns before the store is touched.
func (a *app) runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	var f record.Fields
	fs.StringVar(&f.Name, "name", "", "medicine name (required)")
	fs.StringVar(&f.Strength, "strength", "", "dosage strength, e.g. \"400 mg\" (required)")
	fs.StringVar(&f.Form, "form", "", "form: tablet, capsule, syrup, ... (required)")
	fs.StringVar(&f.Batch, "batch", "", "batch number (optional)")
	fs.StringVar(&f.Expiry, "expiry", "", "expiry date, YYYY-MM-DD (required)")
	fs.StringVar(&f.Location, "location", "", "storage location (optional)")
	fs.Parse(args)

	rec, err := record.Validate(f)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := a.load(st)
	if err != nil {
		return err
	}

	recs = append(recs, rec)
	if err := st.Save(recs); err != nil {
		return err
	}
	a.log.StoreEvent("save", st.Path(), len(recs))

	fmt.Fprintf(a.out, "Added: %s %s %s (expiry %s)\n", rec.Name, rec.Strength, rec.Form, rec.Expiry)
	return nil
}

// runList prints every record in insertion order.
func (a *app) runList(args []string) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := a.load(st)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No medicines yet. Use 'add' to add your first one.")
		return nil
	}
	a.printRecords(query.All(recs))
	return nil
}

// runSoon prints records expiring within the window.
func (a *app) runSoon(args []string) error {
	fs := flag.NewFlagSet("soon", flag.ExitOnError)
	days := fs.Int("days", query.DefaultWindowDays, "window in days")
	fs.Parse(args)

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := a.load(st)
	if err != nil {
		return err
	}

	matches, err := query.ExpiringWithin(recs, a.today, *days)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintf(a.out, "No items expiring in the next %d days.\n", *days)
		return nil
	}
	fmt.Fprintf(a.out, "Expiring in the next %d days:\n", *days)
	a.printRecords(matches)
	return nil
}

// runExpired prints records whose expiry is strictly before today.
func (a *app) runExpired(args []string) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := a.load(st)
	if err != nil {
		return err
	}

	matches := query.Expired(recs, a.today)
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No expired items.")
		return nil
	}
	fmt.Fprintln(a.out, "Expired items:")
	a.printRecords(matches)
	return nil
}

// runFind prints records whose name matches the query substring.
func (a *app) runFind(args []string) error {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	q := fs.String("query", "", "name substring, case-insensitive")
	fs.Parse(args)

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := a.load(st)
	if err != nil {
		return err
	}

	matches := query.Search(recs, *q)
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}
	a.printRecords(matches)
	return nil
}

// runExport writes the full collection to CSV and/or XLSX files,
// overwriting existing files.
func (a *app) runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	csvPath := fs.String("csv", "", "write CSV to this path")
	xlsxPath := fs.String("xlsx", "", "write an Excel workbook to this path")
	fs.Parse(args)

	if *csvPath == "" && *xlsxPath == "" {
		return errors.New("export: at least one of --csv or --xlsx is required")
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := a.load(st)
	if err != nil {
		return err
	}

	if *csvPath != "" {
		text, err := export.ToCSV(recs)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*csvPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *csvPath, err)
		}
		fmt.Fprintf(a.out, "Exported %d items to %s\n", len(recs), *csvPath)
	}
	if *xlsxPath != "" {
		if err := export.ToXLSX(recs, *xlsxPath); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Exported %d items to %s\n", len(recs), *xlsxPath)
	}
	return nil
}

// runRemove deletes every record whose name equals the given name,
// case-insensitively. The store is saved only when something matched.
func (a *app) runRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	name := fs.String("name", "", "medicine name to remove (required)")
	fs.Parse(args)

	target := strings.TrimSpace(*name)
	if target == "" {
		return &record.ValidationError{Field: "name", Reason: record.MissingField}
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := a.load(st)
	if err != nil {
		return err
	}

	kept := make([]record.MedicineRecord, 0, len(recs))
	for _, r := range recs {
		if !strings.EqualFold(r.Name, target) {
			kept = append(kept, r)
		}
	}
	removed := len(recs) - len(kept)
	if removed == 0 {
		return fmt.Errorf("item not found: %s", target)
	}

	if err := st.Save(kept); err != nil {
		return err
	}
	a.log.StoreEvent("save", st.Path(), len(kept), "removed", removed)

	fmt.Fprintf(a.out, "Removed %s\n", target)
	return nil
}

// printRecords renders records one per line.
func (a *app) printRecords(recs []record.MedicineRecord) {
	for _, r := range recs {
		fmt.Fprintln(a.out, formatRecord(r))
	}
}

// formatRecord renders one record as a single human-readable line, e.g.
//
//	- Ibuprofen (400 mg) tablet [batch=B123, expiry=2026-12-31, loc=Shelf B]
func formatRecord(r record.MedicineRecord) string {
	core := fmt.Sprintf("%s (%s) %s", r.Name, r.Strength, r.Form)
	extras := []string{}
	if r.Batch != "" {
		extras = append(extras, "batch="+r.Batch)
	}
	extras = append(extras, "expiry="+r.Expiry.String())
	if r.Location != "" {
		extras = append(extras, "loc="+r.Location)
	}
	return fmt.Sprintf("- %s [%s]", core, strings.Join(extras, ", "))
}
