package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/medtrack/medtrack/internal/record"
)

// SheetName is the worksheet holding the exported records.
const SheetName = "Medicines"

// ToXLSX writes the collection to an Excel workbook at path, one
// worksheet with the same columns and order as the CSV export.
// An existing file at path is overwritten.
func ToXLSX(recs []record.MedicineRecord, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name worksheet: %w", err)
	}

	if err := writeRow(f, 1, columns); err != nil {
		return err
	}
	for i, r := range recs {
		if err := writeRow(f, i+2, row(r)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeRow fills one worksheet row (1-based) with the given values.
func writeRow(f *excelize.File, rowNum int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}
