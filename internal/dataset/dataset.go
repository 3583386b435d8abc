package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Dataset is an immutable table of listings. Cell text is kept verbatim;
// numeric columns are parsed once at load.
type Dataset struct {
	source string
	header []string
	rows   [][]string
	nums   [][]float64 // column-major, nil for categorical columns
	schema *Schema
}

// FromTable builds a Dataset from a header row followed by data rows.
// A leading positional index column is dropped.
func FromTable(source string, table [][]string) (*Dataset, error) {
	if len(table) == 0 || len(table[0]) == 0 {
		return nil, &LoadError{Path: source, Op: "header", Err: ErrNoHeader}
	}
	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = strings.TrimSpace(h)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	rows := table[1:]

	if isIndexColumn(header[0]) {
		header = header[1:]
		trimmed := make([][]string, len(rows))
		for i, r := range rows {
			if len(r) > 0 {
				trimmed[i] = r[1:]
			}
		}
		rows = trimmed
	}

	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		if _, dup := seen[h]; dup {
			return nil, &LoadError{Path: source, Op: "header", Err: fmt.Errorf("%w: %q", ErrDuplicateColumn, h)}
		}
		seen[h] = struct{}{}
	}
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := seen[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Path: source, Op: "schema", Err: fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))}
	}

	ncol := len(header)
	for i, r := range rows {
		if len(r) != ncol {
			return nil, &LoadError{Path: source, Op: "parse", Err: fmt.Errorf("row %d: expected %d fields, got %d", i+1, ncol, len(r))}
		}
	}

	ds := &Dataset{source: source, header: header, rows: rows, nums: make([][]float64, ncol)}
	cols := make([]Column, ncol)
	for j, name := range header {
		kind, known := KnownKind(name)
		vals, ok := parseColumn(rows, j)
		switch {
		case known && kind == Numeric && !ok:
			return nil, &LoadError{Path: source, Op: "parse", Err: fmt.Errorf("%w: %s", ErrNotNumeric, name)}
		case !known && ok:
			kind = Numeric
		case !known:
			kind = Categorical
		}
		if kind == Numeric {
			ds.nums[j] = vals
		}
		cols[j] = Column{Name: name, Kind: kind, Index: j}
	}
	ds.schema = newSchema(cols)
	return ds, nil
}

func isIndexColumn(h string) bool {
	return h == "" || strings.HasPrefix(h, "Unnamed: 0")
}

// parseColumn parses column j as numbers; empty cells become NaN.
// ok is false if any non-empty cell is not a number, any cell is infinite, or
// the column has no numbers.
func parseColumn(rows [][]string, j int) ([]float64, bool) {
	vals := make([]float64, len(rows))
	seen := 0
	for i, r := range rows {
		v := strings.TrimSpace(r[j])
		if v == "" {
			vals[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(f, 0) {
			return nil, false
		}
		vals[i] = f
		seen++
	}
	return vals, seen > 0 || len(rows) == 0
}

// Source is the path the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Header returns a copy of the column names.
func (d *Dataset) Header() []string {
	out := make([]string, len(d.header))
	copy(out, d.header)
	return out
}

// Schema returns the column registry of the dataset.
func (d *Dataset) Schema() *Schema { return d.schema }

// Row returns a copy of row i.
func (d *Dataset) Row(i int) []string {
	out := make([]string, len(d.rows[i]))
	copy(out, d.rows[i])
	return out
}

// Text returns the raw cell of row i in the named column.
func (d *Dataset) Text(i int, col string) string {
	c, ok := d.schema.Lookup(col)
	if !ok {
		return ""
	}
	return d.rows[i][c.Index]
}

// Number returns the parsed cell of row i in the named numeric column.
// It returns NaN for categorical columns, unknown columns and empty cells.
func (d *Dataset) Number(i int, col string) float64 {
	c, ok := d.schema.Lookup(col)
	if !ok || d.nums[c.Index] == nil {
		return math.NaN()
	}
	return d.nums[c.Index][i]
}

// Bounds returns the observed min and max of a numeric column.
// ok is false when the column is not numeric or has no values.
func (d *Dataset) Bounds(col string) (lo, hi float64, ok bool) {
	c, found := d.schema.Lookup(col)
	if !found || d.nums[c.Index] == nil {
		return 0, 0, false
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range d.nums[c.Index] {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	return lo, hi, true
}

// Levels returns the sorted distinct values of a column.
func (d *Dataset) Levels(col string) []string {
	c, ok := d.schema.Lookup(col)
	if !ok {
		return nil
	}
	set := make(map[string]struct{})
	for _, r := range d.rows {
		set[r[c.Index]] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// All returns a view over every row.
func (d *Dataset) All() *View {
	idx := make([]int, len(d.rows))
	for i := range idx {
		idx[i] = i
	}
	return &View{ds: d, idx: idx}
}
