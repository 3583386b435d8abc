package view

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/cardash/internal/analysis"
	"github.com/KaramelBytes/cardash/internal/dataset"
)

// HistogramChart bins col into equal-width bins spanning its range in v,
// overlaid per level of group when group is set.
func HistogramChart(v *dataset.View, col string, bins int, group string) Chart {
	title := fmt.Sprintf("Distribution of %s", col)
	if group != "" {
		title += " by " + group
	}
	if v.Empty() {
		return placeholder("histogram", KindHistogram, title)
	}
	if bins < 1 {
		bins = 1
	}
	keys, groups := groupValues(v, col, group)
	var all []float64
	for _, k := range keys {
		all = append(all, groups[k]...)
	}
	if len(all) == 0 {
		return placeholder("histogram", KindHistogram, title)
	}
	edges := binEdges(all, bins)
	h := &Histogram{Edges: edges}
	for _, k := range keys {
		h.Groups = append(h.Groups, BinGroup{Name: k, Counts: countBins(groups[k], edges)})
	}
	return Chart{ID: "histogram", Kind: KindHistogram, Title: title, XLabel: col, YLabel: "count", Histogram: h}
}

// binEdges returns bins+1 equal-width edges from min to max. A constant column
// gets a single unit-wide bin centered on its value.
func binEdges(vals []float64, bins int) []float64 {
	lo, hi := vals[0], vals[0]
	for _, x := range vals {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		return []float64{lo - 0.5, hi + 0.5}
	}
	width := (hi - lo) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi
	return edges
}

// countBins counts vals into [e_i, e_i+1) bins; the last bin includes its upper edge.
func countBins(vals, edges []float64) []int {
	n := len(edges) - 1
	counts := make([]int, n)
	lo, hi := edges[0], edges[n]
	for _, x := range vals {
		if x < lo || x > hi {
			continue
		}
		i := int(float64(n) * (x - lo) / (hi - lo))
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}
	return counts
}

// BoxChart returns Tukey boxplots of col per level of group (one box named
// after col when group is empty).
func BoxChart(v *dataset.View, col, group string) Chart {
	title := fmt.Sprintf("Boxplot of %s", col)
	if group != "" {
		title += " by " + group
	}
	if v.Empty() {
		return placeholder("boxplot", KindBox, title)
	}
	c := Chart{ID: "boxplot", Kind: KindBox, Title: title, XLabel: group, YLabel: col}
	keys, groups := groupValues(v, col, group)
	for _, k := range keys {
		if len(groups[k]) == 0 {
			continue
		}
		c.Boxes = append(c.Boxes, tukey(k, groups[k]))
	}
	if len(c.Boxes) == 0 {
		return placeholder("boxplot", KindBox, title)
	}
	return c
}

func tukey(name string, vals []float64) Box {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	b := Box{
		Group:  name,
		Count:  len(sorted),
		Q1:     analysis.Quantile(sorted, 0.25),
		Median: analysis.Quantile(sorted, 0.5),
		Q3:     analysis.Quantile(sorted, 0.75),
	}
	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Q1, b.Q3
	for _, x := range sorted {
		if x >= lowFence {
			b.LowerWhisker = x
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			b.UpperWhisker = sorted[i]
			break
		}
	}
	for _, x := range sorted {
		if x < lowFence || x > highFence {
			b.Outliers = append(b.Outliers, x)
		}
	}
	return b
}

func groupValues(v *dataset.View, col, group string) ([]string, map[string][]float64) {
	if group == "" {
		return []string{col}, map[string][]float64{col: v.Numbers(col)}
	}
	return analysis.GroupBy(v, col, group)
}
