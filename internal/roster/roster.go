// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster reads and writes the researcher roster: a table with a
// header row whose cells are addressed by data row index and column name.
// Spreadsheets (.xlsx) and comma-separated files (.csv) are supported.
package roster

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table is a mutable roster. Rows are numbered from 0, excluding the header.
type Table interface {
	// Len returns the number of data rows.
	Len() int
	// Get returns the trimmed cell value, or "" for missing cells and
	// unknown columns.
	Get(row int, col string) string
	// Set writes a cell. The column must exist.
	Set(row int, col string, value string) error
	// HasColumn reports whether the header contains col.
	HasColumn(col string) bool
	// EnsureColumns appends missing columns to the header.
	EnsureColumns(cols ...string) error
	// Save persists all changes to the file the table was opened from.
	Save() error
	Close() error
}

// Open opens the roster at path, choosing the format by extension.
func Open(path string) (Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return OpenXLSX(path)
	case ".csv":
		return OpenCSV(path)
	default:
		return nil, fmt.Errorf("unsupported roster format %q: use .xlsx or .csv", filepath.Ext(path))
	}
}

// RequireColumns returns an error naming every column missing from t.
func RequireColumns(t Table, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.HasColumn(c) {
			missing = append(missing, fmt.Sprintf("%q", c))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("roster is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// header maps column names to positions.
type header struct {
	names []string
	index map[string]int
}

// newHeader keeps every position; a repeated name resolves to its first
// occurrence.
func newHeader(names []string) header {
	h := header{index: make(map[string]int, len(names))}
	for i, n := range names {
		n = strings.TrimSpace(n)
		h.names = append(h.names, n)
		if _, dup := h.index[n]; n != "" && !dup {
			h.index[n] = i
		}
	}
	return h
}

func (h *header) add(name string) int {
	if i, ok := h.index[name]; ok {
		return i
	}
	h.names = append(h.names, name)
	i := len(h.names) - 1
	if name != "" {
		h.index[name] = i
	}
	return i
}

func (h header) col(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

func checkRow(row, n int) error {
	if row < 0 || row >= n {
		return fmt.Errorf("row %d out of range [0, %d)", row, n)
	}
	return nil
}

func cell(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return strings.TrimSpace(rows[row][col])
}

// setCell writes value into rows, padding a short row.
func setCell(rows [][]string, row, col int, value string) {
	for len(rows[row]) <= col {
		rows[row] = append(rows[row], "")
	}
	rows[row][col] = value
}
