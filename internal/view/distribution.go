package view

import (
	"github.com/KaramelBytes/cardash/internal/analysis"
	"github.com/KaramelBytes/cardash/internal/dataset"
)

// Pie returns the proportion breakdown of a categorical column.
func Pie(v *dataset.View, col, title string) Chart {
	if v.Empty() {
		return placeholder(col, KindPie, title)
	}
	c := Chart{ID: col, Kind: KindPie, Title: title}
	for _, cc := range analysis.Proportions(v, col) {
		c.Slices = append(c.Slices, Slice{Label: cc.Value, Count: cc.Count, Share: cc.Share})
	}
	return c
}
