package view

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

// ErrUnknownChart indicates a chart id that the dashboard does not produce.
var ErrUnknownChart = errors.New("unknown chart")

// Tab is one panel group of the dashboard.
type Tab struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Tables []Table `json:"tables,omitempty"`
	Charts []Chart `json:"charts,omitempty"`
}

// Dashboard is every panel computed from one filtered view.
type Dashboard struct {
	Source     string     `json:"source"`
	Rows       int        `json:"rows"`
	Total      int        `json:"total"`
	Export     string     `json:"export"`
	Selections Selections `json:"selections"`
	Tabs       []Tab      `json:"tabs"`
}

// Build validates sel and computes all tabs for v.
func Build(v *dataset.View, sel Selections) (*Dashboard, error) {
	ds := v.Dataset()
	if err := sel.Validate(ds.Schema()); err != nil {
		return nil, err
	}
	d := &Dashboard{
		Source:     filepath.Base(ds.Source()),
		Rows:       v.Len(),
		Total:      ds.Len(),
		Export:     dataset.ExportName(ds.Source()),
		Selections: sel,
	}
	d.Tabs = []Tab{
		{
			ID:     "overview",
			Title:  "Dataset Overview",
			Tables: []Table{HeadTable(v, sel.HeadRows), StatsTable(v)},
			Charts: []Chart{TopValues(v, sel.TopColumn, sel.TopN)},
		},
		{
			ID:    "seller_transmission",
			Title: "Seller & Transmission",
			Charts: []Chart{
				Pie(v, dataset.ColSellerType, "Seller Type Distribution"),
				Pie(v, dataset.ColTransmission, "Transmission Type Distribution"),
			},
		},
		{
			ID:     "fuel",
			Title:  "Fuel Analysis",
			Charts: []Chart{Pie(v, dataset.ColFuelType, "Fuel Type Distribution")},
		},
		{
			ID:    "scatter",
			Title: "Scatter Plots",
			Charts: []Chart{
				PriceVsAge(v),
				PriceVsMileage(v),
				Scatter(v, "custom_scatter", fmt.Sprintf("%s vs %s", sel.ScatterY, sel.ScatterX),
					sel.ScatterX, sel.ScatterY, sel.ScatterColor, sel.ScatterHover),
			},
		},
		{
			ID:    "distributions",
			Title: "Distributions",
			Charts: []Chart{
				HistogramChart(v, sel.HistColumn, sel.HistBins, sel.HistGroup),
				BoxChart(v, sel.BoxColumn, sel.BoxGroup),
			},
		},
	}
	return d, nil
}

// Chart returns the chart with the given id.
func (d *Dashboard) Chart(id string) (Chart, error) {
	for _, t := range d.Tabs {
		for _, c := range t.Charts {
			if c.ID == id {
				return c, nil
			}
		}
	}
	return Chart{}, fmt.Errorf("%w: %s", ErrUnknownChart, id)
}

// Charts returns every chart in tab order.
func (d *Dashboard) Charts() []Chart {
	var out []Chart
	for _, t := range d.Tabs {
		out = append(out, t.Charts...)
	}
	return out
}
