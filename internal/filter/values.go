package filter

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

const (
	minSuffix = "_min"
	maxSuffix = "_max"
)

// FromValues decodes widget values: repeated categorical keys
// (brand=Honda&brand=Kia) and numeric bounds (vehicle_age_min, vehicle_age_max).
// Keys that name no dataset column are ignored so other selections can share
// the same query string. A range with a single bound is open on the other side.
func FromValues(values url.Values, schema *dataset.Schema) (State, error) {
	var s State
	for key, vals := range values {
		if schema.Is(key, dataset.Categorical) {
			for _, v := range vals {
				if v != "" {
					s.Include(key, v)
				}
			}
			continue
		}
		col, bound := splitBound(key)
		if bound == "" || !schema.Is(col, dataset.Numeric) {
			continue
		}
		raw := strings.TrimSpace(first(vals))
		if raw == "" {
			continue
		}
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(x) {
			return State{}, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
		}
		r, ok := s.Ranges[col]
		if !ok {
			r = Range{Lo: math.Inf(-1), Hi: math.Inf(1)}
		}
		if bound == minSuffix {
			r.Lo = x
		} else {
			r.Hi = x
		}
		s.Between(col, r.Lo, r.Hi)
	}
	return s, nil
}

// Values encodes s in the form FromValues reads. Infinite bounds are omitted.
func (s State) Values() url.Values {
	out := url.Values{}
	for col, vals := range s.Categories {
		for _, v := range vals {
			out.Add(col, v)
		}
	}
	for col, r := range s.Ranges {
		if !math.IsInf(r.Lo, 0) {
			out.Set(col+minSuffix, formatFloat(r.Lo))
		}
		if !math.IsInf(r.Hi, 0) {
			out.Set(col+maxSuffix, formatFloat(r.Hi))
		}
	}
	return out
}

func splitBound(key string) (col, bound string) {
	switch {
	case strings.HasSuffix(key, minSuffix):
		return strings.TrimSuffix(key, minSuffix), minSuffix
	case strings.HasSuffix(key, maxSuffix):
		return strings.TrimSuffix(key, maxSuffix), maxSuffix
	}
	return key, ""
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
