package view

import (
	"math"
	"sort"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

// Scatter plots y against x with one series per level of color (a single
// series when color is empty). Rows with a missing x or y are skipped.
func Scatter(v *dataset.View, id, title, x, y, color string, hover []string) Chart {
	if v.Empty() {
		return placeholder(id, KindScatter, title)
	}
	c := Chart{ID: id, Kind: KindScatter, Title: title, XLabel: x, YLabel: y}
	byLevel := map[string]*Series{}
	var levels []string
	for i := 0; i < v.Len(); i++ {
		px, py := v.Number(i, x), v.Number(i, y)
		if math.IsNaN(px) || math.IsNaN(py) {
			continue
		}
		level := y
		if color != "" {
			level = v.Text(i, color)
		}
		s, ok := byLevel[level]
		if !ok {
			s = &Series{Name: level}
			byLevel[level] = s
			levels = append(levels, level)
		}
		p := Point{X: px, Y: py}
		for _, h := range hover {
			p.Hover = append(p.Hover, Field{Name: h, Value: v.Text(i, h)})
		}
		s.Points = append(s.Points, p)
	}
	sort.Strings(levels)
	for _, l := range levels {
		c.Series = append(c.Series, *byLevel[l])
	}
	if len(c.Series) == 0 {
		c.Empty, c.Message = true, NoDataMessage
	}
	return c
}

// PriceVsAge is selling price against vehicle age colored by brand.
func PriceVsAge(v *dataset.View) Chart {
	return Scatter(v, "price_vs_age", "Selling Price vs Vehicle Age",
		dataset.ColVehicleAge, dataset.ColSellingPrice, dataset.ColBrand,
		[]string{dataset.ColModel, dataset.ColMileage, dataset.ColFuelType})
}

// PriceVsMileage is selling price against mileage colored by fuel type.
func PriceVsMileage(v *dataset.View) Chart {
	return Scatter(v, "price_vs_mileage", "Selling Price vs Mileage",
		dataset.ColMileage, dataset.ColSellingPrice, dataset.ColFuelType,
		[]string{dataset.ColModel, dataset.ColBrand, dataset.ColVehicleAge})
}
