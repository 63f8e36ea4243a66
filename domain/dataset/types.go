package dataset

import (
	"math"
	"strconv"
	"strings"
)

// ColumnKind classifies a column for analysis dispatch. The kind is decided
// once at Dataset construction and consulted by every renderer in a run.
type ColumnKind string

const (
	KindNumerical   ColumnKind = "numerical"
	KindCategorical ColumnKind = "categorical"
)

// numericThreshold is the fraction of non-missing cells that must parse as
// numbers for a column to be classified as numerical.
const numericThreshold = 0.8

// Column is one named, kind-tagged column of the dataset. Cells are stored
// as raw strings; missing values are empty strings. Numerical columns keep
// a parsed float view with NaN marking missing or unparsable cells.
type Column struct {
	Name  string
	Kind  ColumnKind
	cells []string
	nums  []float64
}

// Dataset is an ordered collection of named columns, immutable for the
// duration of an analysis run.
type Dataset struct {
	columns []Column
	index   map[string]int
}

// New builds a Dataset from headers and row-major string records, inferring
// each column's kind from its cell contents.
func New(headers []string, rows [][]string) *Dataset {
	ds := &Dataset{
		columns: make([]Column, 0, len(headers)),
		index:   make(map[string]int, len(headers)),
	}

	for i, name := range headers {
		cells := make([]string, len(rows))
		for r, row := range rows {
			if i < len(row) {
				cells[r] = strings.TrimSpace(row[i])
			}
		}
		col := newColumn(name, cells)
		ds.index[name] = len(ds.columns)
		ds.columns = append(ds.columns, col)
	}

	return ds
}

// newColumn infers the column kind and pre-parses the numeric view.
func newColumn(name string, cells []string) Column {
	nonMissing := 0
	numeric := 0
	for _, c := range cells {
		if c == "" {
			continue
		}
		nonMissing++
		if _, err := strconv.ParseFloat(c, 64); err == nil {
			numeric++
		}
	}

	kind := KindCategorical
	if nonMissing > 0 && float64(numeric)/float64(nonMissing) >= numericThreshold {
		kind = KindNumerical
	}

	col := Column{Name: name, Kind: kind, cells: cells}
	if kind == KindNumerical {
		col.nums = make([]float64, len(cells))
		for i, c := range cells {
			v, err := strconv.ParseFloat(c, 64)
			if c == "" || err != nil {
				col.nums[i] = math.NaN()
				continue
			}
			col.nums[i] = v
		}
	}
	return col
}

// NumRows returns the row count.
func (ds *Dataset) NumRows() int {
	if len(ds.columns) == 0 {
		return 0
	}
	return len(ds.columns[0].cells)
}

// NumCols returns the column count.
func (ds *Dataset) NumCols() int {
	return len(ds.columns)
}

// Columns returns all columns in dataset order.
func (ds *Dataset) Columns() []Column {
	return ds.columns
}

// Column looks up a column by name.
func (ds *Dataset) Column(name string) (Column, bool) {
	i, ok := ds.index[name]
	if !ok {
		return Column{}, false
	}
	return ds.columns[i], true
}

// HasColumn reports whether a column with the given name exists.
func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.index[name]
	return ok
}

// ColumnNames returns the ordered column names.
func (ds *Dataset) ColumnNames() []string {
	names := make([]string, len(ds.columns))
	for i, c := range ds.columns {
		names[i] = c.Name
	}
	return names
}

// NumericalColumns returns the numerical columns in dataset order.
func (ds *Dataset) NumericalColumns() []Column {
	var out []Column
	for _, c := range ds.columns {
		if c.Kind == KindNumerical {
			out = append(out, c)
		}
	}
	return out
}

// CategoricalColumns returns the categorical columns in dataset order.
func (ds *Dataset) CategoricalColumns() []Column {
	var out []Column
	for _, c := range ds.columns {
		if c.Kind == KindCategorical {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of cells in the column.
func (c Column) Len() int {
	return len(c.cells)
}

// Values returns a copy of the raw string cells.
func (c Column) Values() []string {
	out := make([]string, len(c.cells))
	copy(out, c.cells)
	return out
}

// Floats returns a copy of the parsed numeric view, with NaN marking
// missing or unparsable cells. Only meaningful for numerical columns.
func (c Column) Floats() []float64 {
	out := make([]float64, len(c.nums))
	copy(out, c.nums)
	return out
}

// ValidFloats returns the non-NaN numeric values in row order.
func (c Column) ValidFloats() []float64 {
	out := make([]float64, 0, len(c.nums))
	for _, v := range c.nums {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// MissingCount counts empty cells.
func (c Column) MissingCount() int {
	n := 0
	for _, v := range c.cells {
		if v == "" {
			n++
		}
	}
	return n
}

// DistinctCount counts distinct non-missing cell values.
func (c Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.cells))
	for _, v := range c.cells {
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}
