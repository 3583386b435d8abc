// Package filter turns sidebar widget values into a filtered view of a dataset.
package filter

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

var (
	// ErrUnknownColumn indicates a filter names a column the dataset lacks.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrKindMismatch indicates a set filter on a numeric column or a range on a categorical one.
	ErrKindMismatch = errors.New("column kind mismatch")
	// ErrInvalidValue indicates a widget value that cannot be decoded.
	ErrInvalidValue = errors.New("invalid filter value")
)

// Range is an inclusive numeric interval.
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Contains reports whether lo <= v <= hi. NaN is never contained.
func (r Range) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= r.Lo && v <= r.Hi
}

// State is one combination of filter constraints. An absent or empty category
// set means no restriction on that column.
type State struct {
	Categories map[string][]string `json:"categories,omitempty"`
	Ranges     map[string]Range    `json:"ranges,omitempty"`
}

// Include restricts col to the given values.
func (s *State) Include(col string, values ...string) {
	if s.Categories == nil {
		s.Categories = make(map[string][]string)
	}
	s.Categories[col] = append(s.Categories[col], values...)
}

// Between restricts col to [lo, hi].
func (s *State) Between(col string, lo, hi float64) {
	if s.Ranges == nil {
		s.Ranges = make(map[string]Range)
	}
	s.Ranges[col] = Range{Lo: lo, Hi: hi}
}

// Active reports whether any constraint would remove rows from some dataset.
func (s State) Active() bool {
	for _, vals := range s.Categories {
		if len(vals) > 0 {
			return true
		}
	}
	return len(s.Ranges) > 0
}

// Validate checks every constrained column exists with the right kind.
func (s State) Validate(schema *dataset.Schema) error {
	for col := range s.Categories {
		c, ok := schema.Lookup(col)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, col)
		}
		if c.Kind != dataset.Categorical {
			return fmt.Errorf("%w: %s is %s, set filters need categorical", ErrKindMismatch, col, c.Kind)
		}
	}
	for col, r := range s.Ranges {
		c, ok := schema.Lookup(col)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, col)
		}
		if c.Kind != dataset.Numeric {
			return fmt.Errorf("%w: %s is %s, range filters need numeric", ErrKindMismatch, col, c.Kind)
		}
		if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) {
			return fmt.Errorf("%w: %s range has NaN bound", ErrInvalidValue, col)
		}
	}
	return nil
}

// Default returns the all-pass state with the vehicle age slider spanning the
// observed bounds.
func Default(ds *dataset.Dataset) State {
	var s State
	if lo, hi, ok := ds.Bounds(dataset.ColVehicleAge); ok {
		s.Between(dataset.ColVehicleAge, math.Floor(lo), math.Ceil(hi))
	}
	return s
}

// Merge returns base with every dimension constrained in over replacing the
// matching dimension of base. Neither argument is modified.
func Merge(base, over State) State {
	var out State
	for col, vals := range base.Categories {
		out.Include(col, vals...)
	}
	for col, r := range base.Ranges {
		out.Between(col, r.Lo, r.Hi)
	}
	for col, vals := range over.Categories {
		delete(out.Categories, col)
		out.Include(col, vals...)
	}
	for col, r := range over.Ranges {
		out.Between(col, r.Lo, r.Hi)
	}
	return out
}

// Apply filters the whole dataset.
func Apply(ds *dataset.Dataset, s State) (*dataset.View, error) {
	return Refine(ds.All(), s)
}

type predicate func(v *dataset.View, i int) bool

// Refine keeps the rows of v that satisfy every constraint of s.
// Row order is preserved and v is not modified.
func Refine(v *dataset.View, s State) (*dataset.View, error) {
	ds := v.Dataset()
	if err := s.Validate(ds.Schema()); err != nil {
		return nil, err
	}
	preds := compile(s)
	keep := make([]int, 0, v.Len())
rows:
	for i := 0; i < v.Len(); i++ {
		for _, p := range preds {
			if !p(v, i) {
				continue rows
			}
		}
		keep = append(keep, v.Index(i))
	}
	return dataset.NewView(ds, keep), nil
}

func compile(s State) []predicate {
	var preds []predicate
	for _, col := range sortedKeys(s.Categories) {
		col := col
		vals := s.Categories[col]
		if len(vals) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(vals))
		for _, x := range vals {
			set[x] = struct{}{}
		}
		preds = append(preds, func(v *dataset.View, i int) bool {
			_, ok := set[v.Text(i, col)]
			return ok
		})
	}
	cols := make([]string, 0, len(s.Ranges))
	for col := range s.Ranges {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		col := col
		r := s.Ranges[col]
		preds = append(preds, func(v *dataset.View, i int) bool {
			return r.Contains(v.Number(i, col))
		})
	}
	return preds
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
