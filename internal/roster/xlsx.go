// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSX is a roster stored in the first sheet of a workbook. Other sheets
// and formatting are preserved on save.
type XLSX struct {
	path  string
	f     *excelize.File
	sheet string
	hdr   header
	rows  [][]string // data rows, header excluded
}

// OpenXLSX opens the workbook at path.
func OpenXLSX(path string) (*XLSX, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	sheet := f.GetSheetName(0)
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	all, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	t := &XLSX{path: path, f: f, sheet: sheet}
	if len(all) > 0 {
		t.hdr = newHeader(all[0])
		t.rows = all[1:]
	} else {
		t.hdr = newHeader(nil)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *XLSX) Len() int { return len(t.rows) }

// Get returns the trimmed value of a cell.
func (t *XLSX) Get(row int, col string) string {
	c, ok := t.hdr.col(col)
	if !ok {
		return ""
	}
	return cell(t.rows, row, c)
}

// HasColumn reports whether the header contains col.
func (t *XLSX) HasColumn(col string) bool {
	_, ok := t.hdr.col(col)
	return ok
}

// Set writes a string cell.
func (t *XLSX) Set(row int, col string, value string) error {
	c, ok := t.hdr.col(col)
	if !ok {
		return fmt.Errorf("unknown column %q", col)
	}
	if err := checkRow(row, len(t.rows)); err != nil {
		return err
	}
	// Data row 0 lives on spreadsheet row 2.
	name, err := excelize.CoordinatesToCellName(c+1, row+2)
	if err != nil {
		return err
	}
	if err := t.f.SetCellStr(t.sheet, name, value); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	setCell(t.rows, row, c, value)
	return nil
}

// EnsureColumns appends missing header cells.
func (t *XLSX) EnsureColumns(cols ...string) error {
	for _, col := range cols {
		if col == "" {
			return fmt.Errorf("empty column name")
		}
		if t.HasColumn(col) {
			continue
		}
		c := t.hdr.add(col)
		name, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := t.f.SetCellStr(t.sheet, name, col); err != nil {
			return fmt.Errorf("writing header %s: %w", name, err)
		}
	}
	return nil
}

// Save writes the workbook back to its path.
func (t *XLSX) Save() error {
	if err := t.f.SaveAs(t.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", t.path, err)
	}
	return nil
}

// Close releases the workbook.
func (t *XLSX) Close() error { return t.f.Close() }
