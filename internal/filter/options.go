package filter

import (
	"math"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

// Dimension is one sidebar multi-select.
type Dimension struct {
	Column string   `json:"column"`
	Label  string   `json:"label"`
	Levels []string `json:"levels"`
}

// Slider is an integer range widget.
type Slider struct {
	Column string `json:"column"`
	Label  string `json:"label"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

// Widgets lists the sidebar controls for a dataset.
type Widgets struct {
	Dimensions []Dimension `json:"dimensions"`
	Age        Slider      `json:"vehicle_age"`
}

// Sidebar holds the categorical columns offered as multi-selects, in display order.
var Sidebar = []Dimension{
	{Column: dataset.ColBrand, Label: "Select Brand(s)"},
	{Column: dataset.ColFuelType, Label: "Select Fuel Type(s)"},
	{Column: dataset.ColTransmission, Label: "Select Transmission(s)"},
	{Column: dataset.ColSellerType, Label: "Select Seller Type(s)"},
}

// Options returns the widget option lists for ds.
func Options(ds *dataset.Dataset) Widgets {
	w := Widgets{Age: Slider{Column: dataset.ColVehicleAge, Label: "Select Vehicle Age Range"}}
	for _, d := range Sidebar {
		d.Levels = ds.Levels(d.Column)
		w.Dimensions = append(w.Dimensions, d)
	}
	if lo, hi, ok := ds.Bounds(dataset.ColVehicleAge); ok {
		w.Age.Min = int(math.Floor(lo))
		w.Age.Max = int(math.Ceil(hi))
	}
	return w
}
