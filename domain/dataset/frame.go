package dataset

import (
	"fmt"
	"math"
	"sort"
)

// Frame is the canonical data object for one analysis run: a column-oriented
// table of patient records. Numeric columns use NaN as the missing sentinel,
// categorical columns use the empty string. The frame is built once by the
// loader, extended with derived columns by the outcome deriver, and read-only
// from that point forward.
type Frame struct {
	columns []string
	numeric map[string][]float64
	labels  map[string][]string
	rows    int
}

// NewFrame creates an empty frame with the given row count
func NewFrame(rows int) *Frame {
	return &Frame{
		numeric: make(map[string][]float64),
		labels:  make(map[string][]string),
		rows:    rows,
	}
}

// RowCount returns the number of rows in the frame
func (f *Frame) RowCount() int {
	return f.rows
}

// Columns returns column names in insertion order
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// HasColumn reports whether a column of either kind exists
func (f *Frame) HasColumn(name string) bool {
	_, num := f.numeric[name]
	_, lab := f.labels[name]
	return num || lab
}

// Numeric returns a numeric column. The second result is false when the
// column does not exist or is categorical.
func (f *Frame) Numeric(name string) ([]float64, bool) {
	col, ok := f.numeric[name]
	return col, ok
}

// Labels returns a categorical column
func (f *Frame) Labels(name string) ([]string, bool) {
	col, ok := f.labels[name]
	return col, ok
}

// SetNumeric adds or replaces a numeric column. Column additions are the only
// mutation the frame supports; rows are never added or removed.
func (f *Frame) SetNumeric(name string, values []float64) error {
	if len(values) != f.rows {
		return fmt.Errorf("column %s has %d values, frame has %d rows", name, len(values), f.rows)
	}
	if !f.HasColumn(name) {
		f.columns = append(f.columns, name)
	}
	delete(f.labels, name)
	f.numeric[name] = values
	return nil
}

// SetLabels adds or replaces a categorical column
func (f *Frame) SetLabels(name string, values []string) error {
	if len(values) != f.rows {
		return fmt.Errorf("column %s has %d values, frame has %d rows", name, len(values), f.rows)
	}
	if !f.HasColumn(name) {
		f.columns = append(f.columns, name)
	}
	delete(f.numeric, name)
	f.labels[name] = values
	return nil
}

// GroupValues partitions a numeric column by the labels of a categorical
// column, dropping rows where the value is NaN or the label is blank.
// Group keys are returned sorted for deterministic iteration.
func (f *Frame) GroupValues(groupCol, valueCol string) (map[string][]float64, []string, error) {
	labels, ok := f.labels[groupCol]
	if !ok {
		return nil, nil, fmt.Errorf("grouping column %s not found", groupCol)
	}
	values, ok := f.numeric[valueCol]
	if !ok {
		return nil, nil, fmt.Errorf("value column %s not found", valueCol)
	}

	groups := make(map[string][]float64)
	for i := 0; i < f.rows; i++ {
		if labels[i] == "" || math.IsNaN(values[i]) {
			continue
		}
		groups[labels[i]] = append(groups[labels[i]], values[i])
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return groups, keys, nil
}

// DropMissing returns the paired label/value rows where the value is not NaN
// and the label is not blank, preserving row order
func (f *Frame) DropMissing(groupCol, valueCol string) ([]string, []float64, error) {
	labels, ok := f.labels[groupCol]
	if !ok {
		return nil, nil, fmt.Errorf("grouping column %s not found", groupCol)
	}
	values, ok := f.numeric[valueCol]
	if !ok {
		return nil, nil, fmt.Errorf("value column %s not found", valueCol)
	}

	outLabels := make([]string, 0, f.rows)
	outValues := make([]float64, 0, f.rows)
	for i := 0; i < f.rows; i++ {
		if labels[i] == "" || math.IsNaN(values[i]) {
			continue
		}
		outLabels = append(outLabels, labels[i])
		outValues = append(outValues, values[i])
	}
	return outLabels, outValues, nil
}
