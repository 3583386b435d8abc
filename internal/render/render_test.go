package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/filter"
	"github.com/KaramelBytes/cardash/internal/view"
)

func sampleView(t *testing.T) *dataset.View {
	t.Helper()
	ds, err := dataset.FromTable("cars.csv", [][]string{
		dataset.RequiredColumns,
		{"Maruti", "Alto", "9", "19.7", "Petrol", "Individual", "Manual", "120000"},
		{"Hyundai", "i20", "11", "17", "Petrol", "Dealer", "Manual", "215000"},
		{"Ford", "Ecosport", "6", "22.77", "Diesel", "Dealer", "Manual", "570000"},
		{"Honda", "City", "2", "17.8", "Petrol", "Dealer", "Automatic", "800000"},
		{"Toyota", "Innova", "3", "12.9", "Diesel", "Individual", "Manual", "1500000"},
		{"BMW", "X5", "1", "11", "Diesel", "Dealer", "Automatic", "9000000"},
	})
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	return ds.All()
}

func decode(t *testing.T, id string, b []byte, size Size) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("%s: not a png: %v", id, err)
	}
	if got := img.Bounds().Dx(); got != size.Width {
		t.Errorf("%s: width=%d want %d", id, got, size.Width)
	}
}

func TestRenderEveryDashboardChart(t *testing.T) {
	sel := view.DefaultSelections()
	sel.HistBins = 8
	d, err := view.Build(sampleView(t), sel)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	size := Size{Width: 640, Height: 360}
	for _, c := range d.Charts() {
		b, err := Bytes(c, size)
		if err != nil {
			t.Fatalf("%s: %v", c.ID, err)
		}
		decode(t, c.ID, b, size)
	}
}

func TestRenderOverlaidHistogram(t *testing.T) {
	c := view.HistogramChart(sampleView(t), dataset.ColSellingPrice, 5, dataset.ColFuelType)
	if c.Histogram == nil || len(c.Histogram.Groups) < 2 {
		t.Fatalf("expected overlay groups, got %+v", c.Histogram)
	}
	b, err := Bytes(c, Size{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	decode(t, c.ID, b, DefaultSize)
}

func TestRenderEmptyCharts(t *testing.T) {
	v := dataset.NewView(sampleView(t).Dataset(), nil)
	d, err := view.Build(v, view.DefaultSelections())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, c := range d.Charts() {
		b, err := Bytes(c, DefaultSize)
		if err != nil {
			t.Fatalf("%s: placeholder failed: %v", c.ID, err)
		}
		decode(t, c.ID, b, DefaultSize)
	}
}

func TestRenderDegenerateInputs(t *testing.T) {
	cases := []view.Chart{
		{ID: "bars", Kind: view.KindBar},
		{ID: "pie", Kind: view.KindPie, Slices: []view.Slice{{Label: "x", Count: 0}}},
		{ID: "scatter", Kind: view.KindScatter, Series: []view.Series{{Name: "a"}}},
		{ID: "single", Kind: view.KindScatter, Series: []view.Series{{Name: "a", Points: []view.Point{{X: 1, Y: 1}}}}},
		{ID: "box", Kind: view.KindBox, Boxes: []view.Box{{Group: "all", Count: 1, Q1: 5, Median: 5, Q3: 5, LowerWhisker: 5, UpperWhisker: 5}}},
	}
	for _, c := range cases {
		b, err := Bytes(c, DefaultSize)
		if err != nil {
			t.Fatalf("%s: %v", c.ID, err)
		}
		decode(t, c.ID, b, DefaultSize)
	}
}

func TestRenderSingleBox(t *testing.T) {
	all := sampleView(t)
	filtered := func(col, value string) *dataset.View {
		var st filter.State
		st.Include(col, value)
		v, err := filter.Apply(all.Dataset(), st)
		if err != nil {
			t.Fatalf("Apply %s=%s: %v", col, value, err)
		}
		return v
	}

	t.Run("ungrouped", func(t *testing.T) {
		c := view.BoxChart(all, dataset.ColSellingPrice, "")
		if len(c.Boxes) != 1 {
			t.Fatalf("boxes=%d want 1", len(c.Boxes))
		}
		b, err := Bytes(c, DefaultSize)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		decode(t, c.ID, b, DefaultSize)
	})

	for name, v := range map[string]*dataset.View{
		"one fuel type": filtered(dataset.ColFuelType, "Petrol"),
		"one row":       filtered(dataset.ColBrand, "BMW"),
	} {
		t.Run(name, func(t *testing.T) {
			d, err := view.Build(v, view.DefaultSelections())
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			box, err := d.Chart("boxplot")
			if err != nil {
				t.Fatal(err)
			}
			if len(box.Boxes) != 1 {
				t.Fatalf("boxes=%d want 1", len(box.Boxes))
			}
			for _, c := range d.Charts() {
				b, err := Bytes(c, DefaultSize)
				if err != nil {
					t.Fatalf("%s: %v", c.ID, err)
				}
				decode(t, c.ID, b, DefaultSize)
			}
		})
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := Bytes(view.Chart{ID: "x", Kind: "radar"}, DefaultSize); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
