package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

// CategoryCount is the frequency of one value.
type CategoryCount struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// ValueCounts returns value frequencies of col in v, most frequent first and
// ties broken by value. n <= 0 returns every value.
func ValueCounts(v *dataset.View, col string, n int) []CategoryCount {
	counts := make(map[string]int)
	for i := 0; i < v.Len(); i++ {
		counts[v.Text(i, col)]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, CategoryCount{Value: k, Count: c, Share: float64(c) / float64(v.Len())})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Proportions is ValueCounts over every value; shares sum to 1 for a non-empty view.
func Proportions(v *dataset.View, col string) []CategoryCount {
	return ValueCounts(v, col, 0)
}

// GroupBy splits v's values of the numeric column into groups keyed by the
// categorical column. Groups are returned in key order.
func GroupBy(v *dataset.View, numeric, by string) (keys []string, groups map[string][]float64) {
	groups = make(map[string][]float64)
	for i := 0; i < v.Len(); i++ {
		x := v.Number(i, numeric)
		if math.IsNaN(x) {
			continue
		}
		k := v.Text(i, by)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], x)
	}
	sort.Strings(keys)
	return keys, groups
}
