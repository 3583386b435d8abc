package view

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

// ErrInvalidSelection indicates an axis, column or grouping choice that the
// dataset cannot satisfy.
var ErrInvalidSelection = errors.New("invalid selection")

// MaxBins is the largest histogram bin count accepted anywhere.
const MaxBins = 500

// Selections are the user-chosen columns and sizes of the configurable panels.
// An empty group column means no grouping.
type Selections struct {
	HeadRows  int    `json:"head_rows"`
	TopN      int    `json:"top_n"`
	TopColumn string `json:"top_column"`

	ScatterX     string   `json:"scatter_x"`
	ScatterY     string   `json:"scatter_y"`
	ScatterColor string   `json:"scatter_color"`
	ScatterHover []string `json:"scatter_hover"`

	HistColumn string `json:"hist_column"`
	HistBins   int    `json:"hist_bins"`
	HistGroup  string `json:"hist_group,omitempty"`

	BoxColumn string `json:"box_column"`
	BoxGroup  string `json:"box_group,omitempty"`
}

// DefaultSelections mirrors the fixed panels of the dashboard.
func DefaultSelections() Selections {
	return Selections{
		HeadRows:     5,
		TopN:         20,
		TopColumn:    dataset.ColModel,
		ScatterX:     dataset.ColMileage,
		ScatterY:     dataset.ColSellingPrice,
		ScatterColor: dataset.ColTransmission,
		ScatterHover: []string{dataset.ColModel, dataset.ColBrand},
		HistColumn:   dataset.ColSellingPrice,
		HistBins:     30,
		BoxColumn:    dataset.ColSellingPrice,
		BoxGroup:     dataset.ColFuelType,
	}
}

// Validate checks every chosen column against the schema.
func (s Selections) Validate(schema *dataset.Schema) error {
	if s.HeadRows < 0 || s.TopN < 0 {
		return fmt.Errorf("%w: head rows and top n must not be negative", ErrInvalidSelection)
	}
	if s.HistBins < 1 || s.HistBins > MaxBins {
		return fmt.Errorf("%w: bins must be between 1 and %d, got %d", ErrInvalidSelection, MaxBins, s.HistBins)
	}
	checks := []struct {
		what, col string
		kind      dataset.Kind
		optional  bool
	}{
		{"top column", s.TopColumn, dataset.Categorical, false},
		{"scatter x", s.ScatterX, dataset.Numeric, false},
		{"scatter y", s.ScatterY, dataset.Numeric, false},
		{"scatter color", s.ScatterColor, dataset.Categorical, true},
		{"histogram column", s.HistColumn, dataset.Numeric, false},
		{"histogram group", s.HistGroup, dataset.Categorical, true},
		{"box column", s.BoxColumn, dataset.Numeric, false},
		{"box group", s.BoxGroup, dataset.Categorical, true},
	}
	for _, c := range checks {
		if c.col == "" && c.optional {
			continue
		}
		if err := expect(schema, c.what, c.col, c.kind); err != nil {
			return err
		}
	}
	for _, h := range s.ScatterHover {
		if _, ok := schema.Lookup(h); !ok {
			return fmt.Errorf("%w: hover field %q is not a column", ErrInvalidSelection, h)
		}
	}
	return nil
}

func expect(schema *dataset.Schema, what, col string, kind dataset.Kind) error {
	c, ok := schema.Lookup(col)
	if !ok {
		return fmt.Errorf("%w: %s %q is not a column", ErrInvalidSelection, what, col)
	}
	if c.Kind != kind {
		return fmt.Errorf("%w: %s %q is %s, need %s", ErrInvalidSelection, what, col, c.Kind, kind)
	}
	return nil
}

// SelectionsFromValues overrides base with query values:
// head, top, top_col, x, y, color, hover, hist, bins, hist_group, box, box_group.
// A value of "none" clears an optional grouping.
func SelectionsFromValues(q url.Values, base Selections) (Selections, error) {
	s := base
	ints := []struct {
		key string
		dst *int
	}{{"head", &s.HeadRows}, {"top", &s.TopN}, {"bins", &s.HistBins}}
	for _, it := range ints {
		raw := strings.TrimSpace(q.Get(it.key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return base, fmt.Errorf("%w: %s=%q", ErrInvalidSelection, it.key, raw)
		}
		*it.dst = n
	}
	strs := []struct {
		key string
		dst *string
	}{
		{"top_col", &s.TopColumn}, {"x", &s.ScatterX}, {"y", &s.ScatterY}, {"color", &s.ScatterColor},
		{"hist", &s.HistColumn}, {"hist_group", &s.HistGroup}, {"box", &s.BoxColumn}, {"box_group", &s.BoxGroup},
	}
	for _, it := range strs {
		if !q.Has(it.key) {
			continue
		}
		v := strings.TrimSpace(q.Get(it.key))
		if v == "none" {
			v = ""
		}
		*it.dst = v
	}
	if q.Has("hover") {
		s.ScatterHover = nil
		for _, h := range q["hover"] {
			if h = strings.TrimSpace(h); h != "" {
				s.ScatterHover = append(s.ScatterHover, h)
			}
		}
	}
	return s, nil
}

// Values encodes s in the form SelectionsFromValues reads.
func (s Selections) Values() url.Values {
	q := url.Values{}
	q.Set("head", strconv.Itoa(s.HeadRows))
	q.Set("top", strconv.Itoa(s.TopN))
	q.Set("bins", strconv.Itoa(s.HistBins))
	q.Set("top_col", s.TopColumn)
	q.Set("x", s.ScatterX)
	q.Set("y", s.ScatterY)
	q.Set("color", orNone(s.ScatterColor))
	q.Set("hist", s.HistColumn)
	q.Set("hist_group", orNone(s.HistGroup))
	q.Set("box", s.BoxColumn)
	q.Set("box_group", orNone(s.BoxGroup))
	for _, h := range s.ScatterHover {
		q.Add("hover", h)
	}
	return q
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
