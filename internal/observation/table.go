// Package observation holds species occurrence records loaded from CSV
// observation files and the column-preserving table they travel in.
package observation

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/tlarcher/geolife-go/internal/errors"
)

// Well-known column names of GeoLifeCLEF observation files.
const (
	ColLon       = "lon"
	ColLat       = "lat"
	ColSpeciesID = "speciesId"
	ColSubset    = "subset"
)

// Table is an in-memory CSV table preserving column order exactly as read.
// Rows are immutable once loaded; transforming operations return views or
// new tables.
type Table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

// NewTable builds a table from a header and rows. Every row must have the
// same width as the header.
func NewTable(header []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		if _, ok := index[col]; ok {
			return nil, errors.Newf("duplicate column %q", col).
				Component("observation").
				Category(errors.CategoryValidation).
				Build()
		}
		index[col] = i
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, errors.Newf("row %d has %d fields, header has %d", i, len(row), len(header)).
				Component("observation").
				Category(errors.CategoryFileParsing).
				Build()
		}
	}
	return &Table{header: header, index: index, rows: rows}, nil
}

// ReadCSV loads an observation table from a CSV file.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf("observation file not found: %s", path).
				Component("observation").
				Category(errors.CategoryNotFound).
				FileContext(path).
				Build()
		}
		return nil, errors.New(err).
			Component("observation").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Newf("malformed CSV %s: %w", path, err).
			Component("observation").
			Category(errors.CategoryFileParsing).
			FileContext(path).
			Build()
	}
	if len(records) == 0 {
		return nil, errors.Newf("empty CSV file: %s", path).
			Component("observation").
			Category(errors.CategoryFileParsing).
			FileContext(path).
			Build()
	}

	return NewTable(records[0], records[1:])
}

// WriteCSV writes the table to path, preserving column order.
func (t *Table) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.New(err).
			Component("observation").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.header); err != nil {
		return errors.New(err).
			Component("observation").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	for _, row := range t.rows {
		if err := writer.Write(row); err != nil {
			return errors.New(err).
				Component("observation").
				Category(errors.CategoryFileIO).
				FileContext(path).
				Build()
		}
	}
	writer.Flush()
	return writer.Error()
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	return t.header
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// RequireColumns fails fast with a descriptive error naming the first
// missing required column.
func (t *Table) RequireColumns(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return errors.Newf("missing required column %q", name).
				Component("observation").
				Category(errors.CategoryValidation).
				Context("columns", t.header).
				Build()
		}
	}
	return nil
}

// Strings returns the raw values of a column.
func (t *Table) Strings(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.Newf("missing required column %q", name).
			Component("observation").
			Category(errors.CategoryValidation).
			Build()
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Floats parses a column as float64 values.
func (t *Table) Floats(name string) ([]float64, error) {
	raw, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for r, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Newf("column %q row %d: cannot parse %q as number", name, r, s).
				Component("observation").
				Category(errors.CategoryFileParsing).
				Build()
		}
		out[r] = v
	}
	return out, nil
}

// Select returns a new table containing the given rows, in order. Row
// slices are shared with the receiver.
func (t *Table) Select(rows []int) *Table {
	selected := make([][]string, 0, len(rows))
	for _, r := range rows {
		selected = append(selected, t.rows[r])
	}
	return &Table{header: t.header, index: t.index, rows: selected}
}

// WithSubset returns a copy of the table with a subset tag column appended
// holding tag for every record. An existing subset column is overwritten
// in place instead of duplicated.
func (t *Table) WithSubset(tag string) *Table {
	if i, ok := t.index[ColSubset]; ok {
		rows := make([][]string, len(t.rows))
		for r, row := range t.rows {
			clone := make([]string, len(row))
			copy(clone, row)
			clone[i] = tag
			rows[r] = clone
		}
		return &Table{header: t.header, index: t.index, rows: rows}
	}

	header := make([]string, 0, len(t.header)+1)
	header = append(header, t.header...)
	header = append(header, ColSubset)
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		tagged := make([]string, 0, len(row)+1)
		tagged = append(tagged, row...)
		tagged = append(tagged, tag)
		rows[r] = tagged
	}
	return &Table{header: header, index: index, rows: rows}
}

// Append concatenates other below the receiver. Headers must match exactly.
func (t *Table) Append(other *Table) (*Table, error) {
	if len(t.header) != len(other.header) {
		return nil, errors.Newf("cannot append: %d columns vs %d", len(other.header), len(t.header)).
			Component("observation").
			Category(errors.CategoryValidation).
			Build()
	}
	for i, col := range t.header {
		if other.header[i] != col {
			return nil, errors.Newf("cannot append: column %d is %q, expected %q", i, other.header[i], col).
				Component("observation").
				Category(errors.CategoryValidation).
				Build()
		}
	}
	rows := make([][]string, 0, len(t.rows)+len(other.rows))
	rows = append(rows, t.rows...)
	rows = append(rows, other.rows...)
	return &Table{header: t.header, index: t.index, rows: rows}, nil
}

// Row returns the fields of record r. The returned slice must not be
// modified.
func (t *Table) Row(r int) []string {
	return t.rows[r]
}

// Reorder returns a table with columns rearranged to the given order.
// Every column of the receiver must appear exactly once.
func (t *Table) Reorder(order []string) (*Table, error) {
	if len(order) != len(t.header) {
		return nil, errors.Newf("reorder lists %d columns, table has %d", len(order), len(t.header)).
			Component("observation").
			Category(errors.CategoryValidation).
			Build()
	}
	src := make([]int, len(order))
	seen := make(map[string]bool, len(order))
	for i, col := range order {
		j, ok := t.index[col]
		if !ok || seen[col] {
			return nil, errors.Newf("reorder references column %q not present exactly once", col).
				Component("observation").
				Category(errors.CategoryValidation).
				Build()
		}
		seen[col] = true
		src[i] = j
	}

	header := make([]string, len(order))
	copy(header, order)
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		rearranged := make([]string, len(src))
		for i, j := range src {
			rearranged[i] = row[j]
		}
		rows[r] = rearranged
	}
	return &Table{header: header, index: index, rows: rows}, nil
}
