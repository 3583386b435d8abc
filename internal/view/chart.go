// Package view builds chart and table descriptions from a filtered view.
// Every builder is pure and returns a placeholder instead of failing when the
// view has no rows.
package view

// Kind names the visual form of a chart.
type Kind string

const (
	KindBar       Kind = "bar"
	KindPie       Kind = "pie"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindBox       Kind = "box"
)

// NoDataMessage is shown in place of a chart when the filtered view is empty.
const NoDataMessage = "No data matches the current filters."

// Chart is a renderable chart description.
type Chart struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	Title      string     `json:"title"`
	XLabel     string     `json:"x_label,omitempty"`
	YLabel     string     `json:"y_label,omitempty"`
	Horizontal bool       `json:"horizontal,omitempty"`
	Empty      bool       `json:"empty,omitempty"`
	Message    string     `json:"message,omitempty"`
	Bars       []Bar      `json:"bars,omitempty"`
	Slices     []Slice    `json:"slices,omitempty"`
	Series     []Series   `json:"series,omitempty"`
	Histogram  *Histogram `json:"histogram,omitempty"`
	Boxes      []Box      `json:"boxes,omitempty"`
}

// Bar is one labelled bar.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Slice is one pie segment.
type Slice struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Field is a hover detail shown for a point.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Point is one scatter marker.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Hover []Field `json:"hover,omitempty"`
}

// Series is the set of points sharing one color level.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Histogram holds shared bin edges and per-group counts.
// len(Edges) == len(Counts)+1 for every group.
type Histogram struct {
	Edges  []float64  `json:"edges"`
	Groups []BinGroup `json:"groups"`
}

// BinGroup is the bin counts of one overlay group.
type BinGroup struct {
	Name   string `json:"name"`
	Counts []int  `json:"counts"`
}

// Box is the five-number summary of one group with Tukey whiskers.
type Box struct {
	Group        string    `json:"group"`
	Count        int       `json:"count"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// Table is a tabular panel.
type Table struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Empty   bool       `json:"empty,omitempty"`
	Message string     `json:"message,omitempty"`
}

func placeholder(id string, kind Kind, title string) Chart {
	return Chart{ID: id, Kind: kind, Title: title, Empty: true, Message: NoDataMessage}
}
