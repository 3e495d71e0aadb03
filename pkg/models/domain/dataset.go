package domain

import (
	"fmt"
	"slices"
)

// Dataset is a column-oriented, read-only table of survey responses.
// Methods never modify the receiver; derived datasets share column storage.
type Dataset struct {
	columns []string
	index   map[string]int
	values  [][]Value // values[col][row]
	rows    int
}

// NewDataset builds a dataset from per-column values. Every column must have the same length.
func NewDataset(columns []string, values [][]Value) (*Dataset, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("got %d columns but %d value slices", len(columns), len(values))
	}
	ds := &Dataset{
		columns: slices.Clone(columns),
		index:   make(map[string]int, len(columns)),
		values:  values,
	}
	for i, name := range columns {
		if _, dup := ds.index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		ds.index[name] = i
		if i == 0 {
			ds.rows = len(values[i])
			continue
		}
		if len(values[i]) != ds.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(values[i]), ds.rows)
		}
	}
	return ds, nil
}

// NewRawDataset builds a dataset of raw text values from row-major records.
func NewRawDataset(columns []string, records [][]string) (*Dataset, error) {
	values := make([][]Value, len(columns))
	for c := range columns {
		values[c] = make([]Value, len(records))
	}
	for r, record := range records {
		if len(record) != len(columns) {
			return nil, fmt.Errorf("record %d has %d fields, expected %d", r, len(record), len(columns))
		}
		for c, text := range record {
			values[c][r] = RawValue(text)
		}
	}
	return NewDataset(columns, values)
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return d.rows
}

func (d *Dataset) Columns() []string {
	return slices.Clone(d.columns)
}

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns the values of a column. The returned slice must not be modified.
func (d *Dataset) Column(name string) ([]Value, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	return d.values[i], nil
}

// Value returns the cell at row for the named column.
func (d *Dataset) Value(row int, column string) (Value, error) {
	col, err := d.Column(column)
	if err != nil {
		return Value{}, err
	}
	if row < 0 || row >= d.rows {
		return Value{}, fmt.Errorf("row %d out of range [0,%d)", row, d.rows)
	}
	return col[row], nil
}

// Record returns the raw text of one row keyed by column name.
func (d *Dataset) Record(row int) map[string]string {
	rec := make(map[string]string, len(d.columns))
	for i, name := range d.columns {
		rec[name] = d.values[i][row].Text
	}
	return rec
}

// WithColumn returns a copy of the dataset with one column replaced.
func (d *Dataset) WithColumn(name string, values []Value) (*Dataset, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	if len(values) != d.rows {
		return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(values), d.rows)
	}
	next := slices.Clone(d.values)
	next[i] = values
	return &Dataset{columns: d.columns, index: d.index, values: next, rows: d.rows}, nil
}

// Subset returns the rows at the given indices, in that order.
func (d *Dataset) Subset(rows []int) *Dataset {
	values := make([][]Value, len(d.columns))
	for c := range d.columns {
		col := make([]Value, len(rows))
		for i, r := range rows {
			col[i] = d.values[c][r]
		}
		values[c] = col
	}
	return &Dataset{columns: d.columns, index: d.index, values: values, rows: len(rows)}
}
