package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

// ColumnStats is the describe() row of one numeric column.
type ColumnStats struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q1    float64 `json:"q1"`
	Q2    float64 `json:"median"`
	Q3    float64 `json:"q3"`
	Max   float64 `json:"max"`
}

// Describe computes count, mean, sample std, min, quartiles and max for every
// numeric column of v, in file order. Empty cells are skipped. Stats of a
// column without values are NaN except Count.
func Describe(v *dataset.View) []ColumnStats {
	schema := v.Dataset().Schema()
	var out []ColumnStats
	for _, name := range schema.Names(dataset.Numeric) {
		out = append(out, Summarize(name, v.Numbers(name)))
	}
	return out
}

// Summarize computes ColumnStats over vals.
func Summarize(name string, vals []float64) ColumnStats {
	s := ColumnStats{Name: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Q2, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	// Welford update
	var mean, m2 float64
	for i, x := range vals {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}
	s.Mean = mean
	if len(vals) > 1 {
		s.Std = math.Sqrt(m2 / float64(len(vals)-1))
	} else {
		s.Std = math.NaN()
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q1 = Quantile(sorted, 0.25)
	s.Q2 = Quantile(sorted, 0.5)
	s.Q3 = Quantile(sorted, 0.75)
	return s
}

// Quantile returns the q-th quantile of sorted using linear interpolation
// between closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
