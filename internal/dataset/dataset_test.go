package dataset

import (
	"archive/zip"
	"bytes"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var carsCSV = strings.Join([]string{
	",car_name,brand,model,vehicle_age,km_driven,seller_type,fuel_type,transmission_type,mileage,engine,max_power,seats,selling_price",
	"0,Maruti Alto,Maruti,Alto,9,120000,Individual,Petrol,Manual,19.7,796,46.3,5,120000",
	"1,Hyundai Grand,Hyundai,Grand,5,20000,Individual,Petrol,Manual,18.9,1197,82,5,550000",
	"2,Hyundai i20,Hyundai,i20,11,60000,Individual,Petrol,Manual,17,1197,80,5,215000",
	"3,Maruti Alto,Maruti,Alto,9,37000,Individual,Petrol,Manual,20.92,998,67.1,5,226000",
	"4,Ford Ecosport,Ford,Ecosport,6,30000,Dealer,Diesel,Manual,22.77,1498,98.59,5,570000",
}, "\n") + "\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadCSVDropsIndexColumn(t *testing.T) {
	p := writeFile(t, "cardekho_dataset.csv", carsCSV)
	ds, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 5 {
		t.Fatalf("rows = %d, want 5", ds.Len())
	}
	h := ds.Header()
	if h[0] != ColCarName {
		t.Fatalf("expected index column dropped, header starts with %q", h[0])
	}
	if got := ds.Text(1, ColBrand); got != "Hyundai" {
		t.Fatalf("Text(1, brand) = %q", got)
	}
	if got := ds.Number(3, ColMileage); got != 20.92 {
		t.Fatalf("Number(3, mileage) = %v", got)
	}
	if !ds.Schema().Is(ColVehicleAge, Numeric) || !ds.Schema().Is(ColFuelType, Categorical) {
		t.Fatalf("unexpected schema kinds: %+v", ds.Schema().Columns())
	}
}

func TestLoadUnnamedIndexHeader(t *testing.T) {
	content := strings.Replace(carsCSV, ",car_name", "Unnamed: 0,car_name", 1)
	ds, err := Load(writeFile(t, "cars.csv", content), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := ds.Schema().Lookup("Unnamed: 0"); ok {
		t.Fatalf("Unnamed: 0 should be dropped")
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
	}{
		{"missing column", "brand,model\nHonda,City\n", ErrMissingColumn},
		{"not numeric", strings.Replace(carsCSV, ",9,120000,", ",nine,120000,", 1), ErrNotNumeric},
		{"infinite", strings.Replace(carsCSV, ",120000\n", ",+Inf\n", 1), ErrNotNumeric},
		{"negative infinite", strings.Replace(carsCSV, ",19.7,", ",-inf,", 1), ErrNotNumeric},
		{"empty", "", ErrNoHeader},
		{"duplicate", "brand,brand\nA,B\n", ErrDuplicateColumn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.csv", tc.content), Options{})
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %T %v", err, err)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMalformedRow(t *testing.T) {
	content := carsCSV + "5,Only,Three\n"
	_, err := Load(writeFile(t, "bad.csv", content), Options{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	var le *LoadError
	if !errors.As(err, &le) || le.Op != "read" {
		t.Fatalf("expected read LoadError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestInferredColumnKinds(t *testing.T) {
	table := [][]string{
		append(append([]string{}, RequiredColumns...), "owner_count", "city"),
		{"Honda", "City", "2", "17.5", "Petrol", "Dealer", "Manual", "500000", "1", "Pune"},
		{"Honda", "Jazz", "4", "", "Petrol", "Dealer", "Manual", "400000", "2", "Delhi"},
	}
	ds, err := FromTable("mem", table)
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	if !ds.Schema().Is("owner_count", Numeric) {
		t.Fatalf("owner_count should be numeric")
	}
	if !ds.Schema().Is("city", Categorical) {
		t.Fatalf("city should be categorical")
	}
	if v := ds.Number(1, ColMileage); !math.IsNaN(v) {
		t.Fatalf("empty numeric cell should be NaN, got %v", v)
	}
	if got := ds.All().Numbers(ColMileage); len(got) != 1 {
		t.Fatalf("Numbers should skip NaN, got %v", got)
	}
}

func TestInferredInfiniteColumnIsCategorical(t *testing.T) {
	table := [][]string{
		append(append([]string{}, RequiredColumns...), "torque"),
		{"Honda", "City", "2", "17.5", "Petrol", "Dealer", "Manual", "500000", "145"},
		{"Honda", "Jazz", "4", "18.1", "Petrol", "Dealer", "Manual", "400000", "Inf"},
	}
	ds, err := FromTable("mem", table)
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	if !ds.Schema().Is("torque", Categorical) {
		t.Fatal("torque with an infinite cell should be categorical")
	}
	for _, col := range ds.Schema().Names(Numeric) {
		for _, x := range ds.All().Numbers(col) {
			if math.IsInf(x, 0) {
				t.Fatalf("%s holds infinite value", col)
			}
		}
	}
}

func TestBoundsAndLevels(t *testing.T) {
	ds, err := Load(writeFile(t, "cars.csv", carsCSV), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lo, hi, ok := ds.Bounds(ColVehicleAge)
	if !ok || lo != 5 || hi != 11 {
		t.Fatalf("Bounds = %v %v %v", lo, hi, ok)
	}
	if _, _, ok := ds.Bounds(ColBrand); ok {
		t.Fatalf("Bounds on categorical column should fail")
	}
	if got, want := ds.Levels(ColBrand), []string{"Ford", "Hyundai", "Maruti"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Levels = %v, want %v", got, want)
	}
}

func TestCacheLoadsOnce(t *testing.T) {
	calls := 0
	c := NewCache("x.csv", Options{})
	c.load = func(string, Options) (*Dataset, error) {
		calls++
		return FromTable("x.csv", [][]string{RequiredColumns})
	}
	first, err := c.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, _ := c.Get()
		if again != first {
			t.Fatalf("Get returned a different handle")
		}
	}
	if calls != 1 {
		t.Fatalf("load called %d times, want 1", calls)
	}
}

func TestCSVExportRoundTrip(t *testing.T) {
	ds, err := Load(writeFile(t, "cars.csv", carsCSV), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	v := NewView(ds, []int{1, 3, 4})
	b, err := EncodeCSV(v)
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	table, err := ReadCSV(bytes.NewReader(b), ',')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	back, err := FromTable("export", table)
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	if !reflect.DeepEqual(back.Header(), ds.Header()) {
		t.Fatalf("header mismatch: %v vs %v", back.Header(), ds.Header())
	}
	if back.Len() != v.Len() {
		t.Fatalf("rows = %d, want %d", back.Len(), v.Len())
	}
	for i := 0; i < v.Len(); i++ {
		if !reflect.DeepEqual(back.Row(i), v.Row(i)) {
			t.Fatalf("row %d mismatch: %v vs %v", i, back.Row(i), v.Row(i))
		}
	}
}

func TestExportName(t *testing.T) {
	cases := map[string]string{
		"cardekho_dataset.csv":     "filtered_cardekho_dataset.csv",
		"/data/cars.xlsx":          "filtered_cars.csv",
		filepath.Join("a", "b.tsv"): "filtered_b.csv",
	}
	for in, want := range cases {
		if got := ExportName(in); got != want {
			t.Errorf("ExportName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHead(t *testing.T) {
	ds, err := Load(writeFile(t, "cars.csv", carsCSV), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(ds.All().Head(3)); got != 3 {
		t.Fatalf("Head(3) = %d rows", got)
	}
	if got := len(ds.All().Head(50)); got != 5 {
		t.Fatalf("Head(50) = %d rows", got)
	}
}

// buildXLSX writes a minimal workbook with one sheet using shared and inline strings.
func buildXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	var shared []string
	sharedIdx := map[string]int{}
	var sheet strings.Builder
	sheet.WriteString(`<?xml version="1.0" encoding="UTF-8"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
	for i, r := range rows {
		sheet.WriteString(`<row r="` + itoa(i+1) + `">`)
		for j, v := range r {
			ref := string(rune('A'+j)) + itoa(i+1)
			if _, err := parseNum(v); err == nil {
				sheet.WriteString(`<c r="` + ref + `"><v>` + v + `</v></c>`)
				continue
			}
			idx, ok := sharedIdx[v]
			if !ok {
				idx = len(shared)
				sharedIdx[v] = idx
				shared = append(shared, v)
			}
			sheet.WriteString(`<c r="` + ref + `" t="s"><v>` + itoa(idx) + `</v></c>`)
		}
		sheet.WriteString(`</row>`)
	}
	sheet.WriteString(`</sheetData></worksheet>`)

	var sst strings.Builder
	sst.WriteString(`<?xml version="1.0" encoding="UTF-8"?><sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	for _, s := range shared {
		sst.WriteString(`<si><t>` + s + `</t></si>`)
	}
	sst.WriteString(`</sst>`)

	files := map[string]string{
		"xl/workbook.xml":            `<?xml version="1.0"?><workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="Listings" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?><Relationships><Relationship Id="rId1" Target="worksheets/sheet1.xml"/></Relationships>`,
		"xl/worksheets/sheet1.xml":   sheet.String(),
		"xl/sharedStrings.xml":       sst.String(),
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	p := filepath.Join(t.TempDir(), "cars.xlsx")
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return p
}

func TestLoadXLSX(t *testing.T) {
	rows := [][]string{
		RequiredColumns,
		{"Honda", "City", "2", "17.5", "Petrol", "Dealer", "Manual", "500000"},
		{"Toyota", "Innova", "5", "12.9", "Diesel", "Individual", "Manual", "900000"},
	}
	p := buildXLSX(t, rows)
	ds, err := Load(p, Options{SheetName: "listings"})
	if err != nil {
		t.Fatalf("Load xlsx: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d", ds.Len())
	}
	if got := ds.Text(1, ColModel); got != "Innova" {
		t.Fatalf("model = %q", got)
	}
	if got := ds.Number(0, ColSellingPrice); got != 500000 {
		t.Fatalf("price = %v", got)
	}
	if _, err := Load(p, Options{SheetName: "missing"}); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
}

func TestColumnIndex(t *testing.T) {
	cases := map[string]int{"A1": 0, "C12": 2, "Z3": 25, "AA1": 26, "ab7": 27}
	for ref, want := range cases {
		if got := columnIndex(ref); got != want {
			t.Errorf("columnIndex(%q) = %d, want %d", ref, got, want)
		}
	}
}
