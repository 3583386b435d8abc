package dataset

import "math"

// View is an ordered subset of a Dataset's rows. It never copies cell data.
type View struct {
	ds  *Dataset
	idx []int
}

// NewView returns a view over the given dataset row indices.
// Indices are kept in the order given; callers pass ascending indices.
func NewView(ds *Dataset, idx []int) *View {
	cp := make([]int, len(idx))
	copy(cp, idx)
	return &View{ds: ds, idx: cp}
}

// Dataset returns the underlying dataset.
func (v *View) Dataset() *Dataset { return v.ds }

// Len returns the number of rows in the view.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.idx)
}

// Empty reports whether the view has no rows.
func (v *View) Empty() bool { return v.Len() == 0 }

// Index returns the dataset row index of the i-th view row.
func (v *View) Index(i int) int { return v.idx[i] }

// Indices returns a copy of the dataset row indices.
func (v *View) Indices() []int {
	out := make([]int, len(v.idx))
	copy(out, v.idx)
	return out
}

// Text returns the raw cell of the i-th view row.
func (v *View) Text(i int, col string) string { return v.ds.Text(v.idx[i], col) }

// Number returns the parsed cell of the i-th view row.
func (v *View) Number(i int, col string) float64 { return v.ds.Number(v.idx[i], col) }

// Row returns a copy of the i-th view row.
func (v *View) Row(i int) []string { return v.ds.Row(v.idx[i]) }

// Head returns up to n rows from the start of the view.
func (v *View) Head(n int) [][]string {
	if n > v.Len() {
		n = v.Len()
	}
	out := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, v.Row(i))
	}
	return out
}

// Numbers returns the non-NaN values of a numeric column, in view order.
func (v *View) Numbers(col string) []float64 {
	out := make([]float64, 0, v.Len())
	for i := range v.idx {
		x := v.Number(i, col)
		if math.IsNaN(x) {
			continue
		}
		out = append(out, x)
	}
	return out
}
