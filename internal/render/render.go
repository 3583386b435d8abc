// Package render draws view charts as PNG images with go-chart.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/cardash/internal/view"
)

// Size is the pixel size of a rendered chart.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used for zero dimensions.
var DefaultSize = Size{Width: 900, Height: 500}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultSize.Width
	}
	if s.Height <= 0 {
		s.Height = DefaultSize.Height
	}
	return s
}

// PNG writes c to w. Empty charts become a placeholder image carrying the chart
// message instead of an error.
func PNG(w io.Writer, c view.Chart, size Size) error {
	size = size.orDefault()
	if c.Empty {
		return placeholder(w, c.Title, c.Message, size)
	}
	if !drawable(c) {
		return placeholder(w, c.Title, view.NoDataMessage, size)
	}
	var buf bytes.Buffer
	var err error
	switch c.Kind {
	case view.KindBar:
		err = barChart(c, size).Render(chart.PNG, &buf)
	case view.KindPie:
		err = pieChart(c, size).Render(chart.PNG, &buf)
	case view.KindScatter:
		err = scatterChart(c, size).Render(chart.PNG, &buf)
	case view.KindHistogram:
		if len(c.Histogram.Groups) == 1 {
			err = histogramBars(c, size).Render(chart.PNG, &buf)
		} else {
			err = histogramOverlay(c, size).Render(chart.PNG, &buf)
		}
	case view.KindBox:
		err = boxChart(c, size).Render(chart.PNG, &buf)
	default:
		return fmt.Errorf("render: unsupported chart kind %q", c.Kind)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", c.ID, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// drawable reports whether c has anything go-chart can plot. go-chart refuses
// charts without values, so those fall back to the placeholder.
func drawable(c view.Chart) bool {
	switch c.Kind {
	case view.KindBar:
		return len(c.Bars) > 0
	case view.KindPie:
		for _, s := range c.Slices {
			if s.Count > 0 {
				return true
			}
		}
		return false
	case view.KindScatter:
		for _, s := range c.Series {
			if len(s.Points) > 0 {
				return true
			}
		}
		return false
	case view.KindHistogram:
		return c.Histogram != nil && len(c.Histogram.Groups) > 0 && len(c.Histogram.Edges) > 1
	case view.KindBox:
		return len(c.Boxes) > 0
	}
	return true
}

// Bytes is PNG into a fresh buffer.
func Bytes(c view.Chart, size Size) ([]byte, error) {
	var buf bytes.Buffer
	if err := PNG(&buf, c, size); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// dotStyle draws markers only, no connecting line.
func dotStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    3,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{StrokeColor: col, StrokeWidth: width}
}

// paddedRange widens [lo, hi] by 5% so markers are not clipped, and gives a
// degenerate range a non-zero span.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(lo), 1)
	}
	pad := span * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func barWidth(n int, size Size) int {
	if n == 0 {
		return 10
	}
	w := (size.Width-160)/n - 4
	if w < 4 {
		w = 4
	}
	if w > 60 {
		w = 60
	}
	return w
}

func barChart(c view.Chart, size Size) chart.BarChart {
	maxV := 0.0
	bars := make([]chart.Value, 0, len(c.Bars))
	for i, b := range c.Bars {
		maxV = math.Max(maxV, b.Value)
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: chart.GetDefaultColor(i), StrokeColor: chart.GetDefaultColor(i)},
		})
	}
	if maxV == 0 {
		maxV = 1
	}
	return chart.BarChart{
		Title:      c.Title,
		Background: background(),
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth(len(bars), size),
		BarSpacing: 4,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: maxV * 1.1},
		},
		Bars: bars,
	}
}

func pieChart(c view.Chart, size Size) chart.PieChart {
	vals := make([]chart.Value, 0, len(c.Slices))
	for _, s := range c.Slices {
		if s.Count == 0 {
			continue
		}
		vals = append(vals, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", s.Label, s.Share*100),
			Value: float64(s.Count),
		})
	}
	return chart.PieChart{
		Title:  c.Title,
		Width:  size.Width,
		Height: size.Height,
		Values: vals,
	}
}

func scatterChart(c view.Chart, size Size) *chart.Chart {
	xlo, xhi := math.Inf(1), math.Inf(-1)
	ylo, yhi := math.Inf(1), math.Inf(-1)
	series := make([]chart.Series, 0, len(c.Series))
	for i, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.X, p.Y
			xlo, xhi = math.Min(xlo, p.X), math.Max(xhi, p.X)
			ylo, yhi = math.Min(ylo, p.Y), math.Max(yhi, p.Y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   dotStyle(chart.GetDefaultColor(i)),
		})
	}
	ch := &chart.Chart{
		Title:      c.Title,
		Background: background(),
		Width:      size.Width,
		Height:     size.Height,
		XAxis:      chart.XAxis{Name: c.XLabel, Range: paddedRange(xlo, xhi)},
		YAxis:      chart.YAxis{Name: c.YLabel, Range: paddedRange(ylo, yhi)},
		Series:     series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(ch)}
	}
	return ch
}

func histogramBars(c view.Chart, size Size) chart.BarChart {
	h := c.Histogram
	counts := h.Groups[0].Counts
	bars := make([]view.Bar, len(counts))
	for i, n := range counts {
		bars[i] = view.Bar{Label: fmt.Sprintf("%.4g", h.Edges[i]), Value: float64(n)}
	}
	bc := barChart(view.Chart{Title: c.Title, XLabel: c.YLabel, Bars: bars}, size)
	for i := range bc.Bars {
		bc.Bars[i].Style = chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue}
	}
	bc.BarSpacing = 1
	return bc
}

// histogramOverlay draws one frequency polygon per group over shared bin centers.
func histogramOverlay(c view.Chart, size Size) *chart.Chart {
	h := c.Histogram
	centers := make([]float64, len(h.Edges)-1)
	for i := range centers {
		centers[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	maxN := 0
	series := make([]chart.Series, 0, len(h.Groups))
	for i, g := range h.Groups {
		ys := make([]float64, len(g.Counts))
		for j, n := range g.Counts {
			ys[j] = float64(n)
			if n > maxN {
				maxN = n
			}
		}
		col := chart.GetDefaultColor(i)
		st := lineStyle(col, 2)
		st.DotColor = col
		st.DotWidth = 2
		series = append(series, chart.ContinuousSeries{Name: g.Name, XValues: centers, YValues: ys, Style: st})
	}
	ch := &chart.Chart{
		Title:      c.Title,
		Background: background(),
		Width:      size.Width,
		Height:     size.Height,
		XAxis:      chart.XAxis{Name: c.XLabel, Range: &chart.ContinuousRange{Min: h.Edges[0], Max: h.Edges[len(h.Edges)-1]}},
		YAxis:      chart.YAxis{Name: c.YLabel, Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, float64(maxN)*1.1)}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}

// boxChart draws each box as line segments at x = group index. go-chart takes
// the x-range from the ticks when they are set, so unlabeled ticks pin both
// ends half a slot beyond the outer boxes.
func boxChart(c view.Chart, size Size) *chart.Chart {
	const half = 0.3
	lo, hi := math.Inf(1), math.Inf(-1)
	var series []chart.Series
	xmax := float64(len(c.Boxes)) - 0.5
	ticks := make([]chart.Tick, 0, len(c.Boxes)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, b := range c.Boxes {
		x := float64(i)
		col := chart.GetDefaultColor(i)
		ticks = append(ticks, chart.Tick{Value: x, Label: b.Group})
		lo, hi = math.Min(lo, b.LowerWhisker), math.Max(hi, b.UpperWhisker)
		series = append(series,
			chart.ContinuousSeries{
				XValues: []float64{x, x},
				YValues: []float64{b.LowerWhisker, b.Q1},
				Style:   lineStyle(col, 1),
			},
			chart.ContinuousSeries{
				XValues: []float64{x, x},
				YValues: []float64{b.Q3, b.UpperWhisker},
				Style:   lineStyle(col, 1),
			},
			chart.ContinuousSeries{
				XValues: []float64{x - half, x + half, x + half, x - half, x - half},
				YValues: []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
				Style:   lineStyle(col, 2),
			},
			chart.ContinuousSeries{
				XValues: []float64{x - half, x + half},
				YValues: []float64{b.Median, b.Median},
				Style:   lineStyle(col, 3),
			},
		)
		if len(b.Outliers) > 0 {
			xs := make([]float64, len(b.Outliers))
			for j, o := range b.Outliers {
				xs[j] = x
				lo, hi = math.Min(lo, o), math.Max(hi, o)
			}
			series = append(series, chart.ContinuousSeries{XValues: xs, YValues: b.Outliers, Style: dotStyle(col)})
		}
	}
	ticks = append(ticks, chart.Tick{Value: xmax})
	return &chart.Chart{
		Title:      c.Title,
		Background: background(),
		Width:      size.Width,
		Height:     size.Height,
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: -0.5, Max: xmax},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Name: c.YLabel, Range: paddedRange(lo, hi)},
		Series: series,
	}
}
