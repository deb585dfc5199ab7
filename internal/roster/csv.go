// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSV is a roster held in memory and rewritten in full on Save.
type CSV struct {
	path string
	bom  bool
	hdr  header
	rows [][]string
}

// OpenCSV reads the comma-separated file at path. A UTF-8 byte order mark
// is tolerated and written back on save.
func OpenCSV(path string) (*CSV, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	bom := bytes.HasPrefix(data, utf8BOM)
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV %s: %w", path, err)
	}

	t := &CSV{path: path, bom: bom}
	if len(all) > 0 {
		t.hdr = newHeader(all[0])
		t.rows = all[1:]
	} else {
		t.hdr = newHeader(nil)
	}
	return t, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Len returns the number of data rows.
func (t *CSV) Len() int { return len(t.rows) }

// Get returns the trimmed value of a cell.
func (t *CSV) Get(row int, col string) string {
	c, ok := t.hdr.col(col)
	if !ok {
		return ""
	}
	return cell(t.rows, row, c)
}

// HasColumn reports whether the header contains col.
func (t *CSV) HasColumn(col string) bool {
	_, ok := t.hdr.col(col)
	return ok
}

// Set writes a cell.
func (t *CSV) Set(row int, col string, value string) error {
	c, ok := t.hdr.col(col)
	if !ok {
		return fmt.Errorf("unknown column %q", col)
	}
	if err := checkRow(row, len(t.rows)); err != nil {
		return err
	}
	setCell(t.rows, row, c, value)
	return nil
}

// EnsureColumns appends missing columns to the header.
func (t *CSV) EnsureColumns(cols ...string) error {
	for _, col := range cols {
		if col == "" {
			return fmt.Errorf("empty column name")
		}
		t.hdr.add(col)
	}
	return nil
}

// Save writes the table to a temporary file next to path and renames it
// into place so an interrupted save never truncates the roster.
func (t *CSV) Save() error {
	var buf bytes.Buffer
	if t.bom {
		buf.Write(utf8BOM)
	}
	w := csv.NewWriter(&buf)
	if err := w.Write(t.hdr.names); err != nil {
		return err
	}
	width := len(t.hdr.names)
	for _, row := range t.rows {
		out := make([]string, max(width, len(row)))
		copy(out, row)
		if err := w.Write(out); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encoding CSV: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".roster-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing roster %s: %w", t.path, err)
	}
	return nil
}

// Close is a no-op; the file is only touched by Save.
func (t *CSV) Close() error { return nil }
