package view

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromTable("cardekho_dataset.csv", [][]string{
		dataset.RequiredColumns,
		{"Maruti", "Alto", "9", "19.7", "Petrol", "Individual", "Manual", "120000"},
		{"Hyundai", "Grand", "5", "18.9", "Petrol", "Individual", "Manual", "550000"},
		{"Hyundai", "i20", "11", "17", "Petrol", "Dealer", "Manual", "215000"},
		{"Maruti", "Alto", "9", "20.92", "Petrol", "Individual", "Manual", "226000"},
		{"Ford", "Ecosport", "6", "22.77", "Diesel", "Dealer", "Manual", "570000"},
		{"Honda", "City", "2", "17.8", "Petrol", "Dealer", "Automatic", "800000"},
		{"Toyota", "Innova", "3", "12.9", "Diesel", "Individual", "Manual", "1500000"},
		{"BMW", "X5", "1", "11", "Diesel", "Dealer", "Automatic", "9000000"},
	})
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	return ds
}

func empty(t *testing.T) *dataset.View { return dataset.NewView(sample(t), nil) }

func TestBuildersHandleEmptyView(t *testing.T) {
	v := empty(t)
	charts := []Chart{
		TopValues(v, dataset.ColModel, 20),
		Pie(v, dataset.ColFuelType, "Fuel"),
		PriceVsAge(v),
		PriceVsMileage(v),
		HistogramChart(v, dataset.ColSellingPrice, 10, ""),
		BoxChart(v, dataset.ColSellingPrice, dataset.ColFuelType),
	}
	for _, c := range charts {
		if !c.Empty || c.Message != NoDataMessage {
			t.Errorf("%s: expected placeholder, got %+v", c.ID, c)
		}
	}
	for _, tb := range []Table{HeadTable(v, 5), StatsTable(v)} {
		if !tb.Empty || len(tb.Rows) != 0 {
			t.Errorf("%s: expected empty table", tb.ID)
		}
	}
	d, err := Build(v, DefaultSelections())
	if err != nil {
		t.Fatalf("Build on empty view: %v", err)
	}
	for _, c := range d.Charts() {
		if !c.Empty {
			t.Errorf("%s should be empty", c.ID)
		}
	}
}

func TestTopValues(t *testing.T) {
	c := TopValues(sample(t).All(), dataset.ColModel, 3)
	if c.ID != "top_models" || !c.Horizontal || len(c.Bars) != 3 {
		t.Fatalf("chart = %+v", c)
	}
	if c.Bars[0].Label != "Alto" || c.Bars[0].Value != 2 {
		t.Fatalf("first bar = %+v", c.Bars[0])
	}
}

func TestPieShares(t *testing.T) {
	c := Pie(sample(t).All(), dataset.ColTransmission, "T")
	if len(c.Slices) != 2 {
		t.Fatalf("slices = %+v", c.Slices)
	}
	if c.Slices[0].Label != "Manual" || c.Slices[0].Count != 6 || c.Slices[0].Share != 0.75 {
		t.Fatalf("manual slice = %+v", c.Slices[0])
	}
}

func TestScatterGroupsAndHover(t *testing.T) {
	c := PriceVsMileage(sample(t).All())
	if len(c.Series) != 2 || c.Series[0].Name != "Diesel" || c.Series[1].Name != "Petrol" {
		t.Fatalf("series = %+v", c.Series)
	}
	p := c.Series[1].Points[0]
	if p.X != 19.7 || p.Y != 120000 {
		t.Fatalf("first petrol point = %+v", p)
	}
	want := []Field{{"model", "Alto"}, {"brand", "Maruti"}, {"vehicle_age", "9"}}
	if !reflect.DeepEqual(p.Hover, want) {
		t.Fatalf("hover = %+v", p.Hover)
	}
	single := Scatter(sample(t).All(), "s", "s", dataset.ColMileage, dataset.ColSellingPrice, "", nil)
	if len(single.Series) != 1 || len(single.Series[0].Points) != 8 {
		t.Fatalf("ungrouped series = %+v", single.Series)
	}
}

func TestHistogram(t *testing.T) {
	v := sample(t).All()
	c := HistogramChart(v, dataset.ColVehicleAge, 5, "")
	h := c.Histogram
	if h == nil || len(h.Edges) != 6 || len(h.Groups) != 1 {
		t.Fatalf("histogram = %+v", h)
	}
	if h.Edges[0] != 1 || h.Edges[5] != 11 {
		t.Fatalf("edges = %v", h.Edges)
	}
	total := 0
	for _, n := range h.Groups[0].Counts {
		total += n
	}
	if total != v.Len() {
		t.Fatalf("counts sum %d, want %d", total, v.Len())
	}
	// ages 1 2 3 5 6 9 9 11 into width-2 bins
	if want := []int{2, 1, 2, 0, 3}; !reflect.DeepEqual(h.Groups[0].Counts, want) {
		t.Fatalf("counts = %v, want %v", h.Groups[0].Counts, want)
	}

	grouped := HistogramChart(v, dataset.ColVehicleAge, 5, dataset.ColFuelType)
	if len(grouped.Histogram.Groups) != 2 {
		t.Fatalf("grouped = %+v", grouped.Histogram.Groups)
	}
}

func TestHistogramConstantColumn(t *testing.T) {
	ds := sample(t)
	v := dataset.NewView(ds, []int{0, 3})
	h := HistogramChart(v, dataset.ColVehicleAge, 10, "").Histogram
	if !reflect.DeepEqual(h.Edges, []float64{8.5, 9.5}) || h.Groups[0].Counts[0] != 2 {
		t.Fatalf("constant histogram = %+v", h)
	}
}

func TestBoxWhiskersAndOutliers(t *testing.T) {
	c := BoxChart(sample(t).All(), dataset.ColSellingPrice, "")
	if len(c.Boxes) != 1 {
		t.Fatalf("boxes = %+v", c.Boxes)
	}
	b := c.Boxes[0]
	if b.Count != 8 || len(b.Outliers) != 1 || b.Outliers[0] != 9000000 {
		t.Fatalf("box = %+v", b)
	}
	if b.UpperWhisker != 1500000 || b.LowerWhisker != 120000 {
		t.Fatalf("whiskers = %v %v", b.LowerWhisker, b.UpperWhisker)
	}
	grouped := BoxChart(sample(t).All(), dataset.ColSellingPrice, dataset.ColFuelType)
	if len(grouped.Boxes) != 2 || grouped.Boxes[0].Group != "Diesel" {
		t.Fatalf("grouped boxes = %+v", grouped.Boxes)
	}
}

func TestSelectionsValidate(t *testing.T) {
	schema := sample(t).Schema()
	if err := DefaultSelections().Validate(schema); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	bad := []func(*Selections){
		func(s *Selections) { s.ScatterX = dataset.ColBrand },
		func(s *Selections) { s.ScatterColor = dataset.ColSellingPrice },
		func(s *Selections) { s.HistColumn = "nope" },
		func(s *Selections) { s.HistBins = 0 },
		func(s *Selections) { s.BoxGroup = dataset.ColMileage },
		func(s *Selections) { s.ScatterHover = []string{"colour"} },
		func(s *Selections) { s.TopN = -1 },
	}
	for i, mut := range bad {
		s := DefaultSelections()
		mut(&s)
		if err := s.Validate(schema); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("case %d: expected ErrInvalidSelection, got %v", i, err)
		}
		if _, err := Build(sample(t).All(), s); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("case %d: Build should reject, got %v", i, err)
		}
	}
}

func TestSelectionsFromValues(t *testing.T) {
	q := url.Values{
		"x":          {"vehicle_age"},
		"color":      {"none"},
		"bins":       {"12"},
		"hist_group": {"fuel_type"},
		"hover":      {"model", ""},
	}
	s, err := SelectionsFromValues(q, DefaultSelections())
	if err != nil {
		t.Fatalf("SelectionsFromValues: %v", err)
	}
	if s.ScatterX != dataset.ColVehicleAge || s.ScatterColor != "" || s.HistBins != 12 || s.HistGroup != dataset.ColFuelType {
		t.Fatalf("selections = %+v", s)
	}
	if !reflect.DeepEqual(s.ScatterHover, []string{"model"}) {
		t.Fatalf("hover = %v", s.ScatterHover)
	}
	back, err := SelectionsFromValues(s.Values(), Selections{})
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if !reflect.DeepEqual(back, s) {
		t.Fatalf("round trip: %+v vs %+v", back, s)
	}
	if _, err := SelectionsFromValues(url.Values{"bins": {"many"}}, DefaultSelections()); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestDashboardChartLookup(t *testing.T) {
	d, err := Build(sample(t).All(), DefaultSelections())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.Export != "filtered_cardekho_dataset.csv" || d.Rows != 8 || len(d.Tabs) != 5 {
		t.Fatalf("dashboard = %+v", d)
	}
	for _, id := range []string{"top_models", "seller_type", "transmission_type", "fuel_type", "price_vs_age", "price_vs_mileage", "custom_scatter", "histogram", "boxplot"} {
		if _, err := d.Chart(id); err != nil {
			t.Errorf("Chart(%q): %v", id, err)
		}
	}
	if _, err := d.Chart("radar"); !errors.Is(err, ErrUnknownChart) {
		t.Fatalf("expected ErrUnknownChart, got %v", err)
	}
}
