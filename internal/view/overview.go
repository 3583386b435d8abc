package view

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/cardash/internal/analysis"
	"github.com/KaramelBytes/cardash/internal/dataset"
)

// HeadTable returns the first n rows of v.
func HeadTable(v *dataset.View, n int) Table {
	t := Table{ID: "preview", Title: "Dataset Preview", Columns: v.Dataset().Header()}
	if v.Empty() {
		t.Empty, t.Message = true, NoDataMessage
		return t
	}
	t.Rows = v.Head(n)
	return t
}

// StatsTable returns describe() statistics, one row per numeric column.
func StatsTable(v *dataset.View) Table {
	t := Table{
		ID:      "summary",
		Title:   "Summary Statistics",
		Columns: []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"},
	}
	if v.Empty() {
		t.Empty, t.Message = true, NoDataMessage
		return t
	}
	for _, s := range analysis.Describe(v) {
		t.Rows = append(t.Rows, []string{
			s.Name, fmt.Sprint(s.Count), fnum(s.Mean), fnum(s.Std), fnum(s.Min),
			fnum(s.Q1), fnum(s.Q2), fnum(s.Q3), fnum(s.Max),
		})
	}
	return t
}

// TopValues returns a horizontal bar chart of the n most frequent values of col.
func TopValues(v *dataset.View, col string, n int) Chart {
	title := fmt.Sprintf("Top %d Car Models", n)
	if col != dataset.ColModel {
		title = fmt.Sprintf("Top %d %s", n, col)
	}
	id := "top_" + col + "s"
	if v.Empty() {
		return placeholder(id, KindBar, title)
	}
	c := Chart{ID: id, Kind: KindBar, Title: title, XLabel: "count", YLabel: col, Horizontal: true}
	for _, cc := range analysis.ValueCounts(v, col, n) {
		c.Bars = append(c.Bars, Bar{Label: cc.Value, Value: float64(cc.Count)})
	}
	return c
}

func fnum(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.6g", f)
}
