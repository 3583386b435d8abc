package dataset

import "sort"

// Kind is the semantic type of a column.
type Kind string

const (
	Categorical Kind = "categorical"
	Numeric     Kind = "numeric"
)

// Column names of the listings dataset.
const (
	ColCarName      = "car_name"
	ColBrand        = "brand"
	ColModel        = "model"
	ColVehicleAge   = "vehicle_age"
	ColKmDriven     = "km_driven"
	ColSellerType   = "seller_type"
	ColFuelType     = "fuel_type"
	ColTransmission = "transmission_type"
	ColMileage      = "mileage"
	ColEngine       = "engine"
	ColMaxPower     = "max_power"
	ColSeats        = "seats"
	ColSellingPrice = "selling_price"
)

// RequiredColumns must be present in every input file.
var RequiredColumns = []string{
	ColBrand, ColModel, ColVehicleAge, ColMileage,
	ColFuelType, ColSellerType, ColTransmission, ColSellingPrice,
}

// registry holds the known kinds. Columns not listed here are inferred.
var registry = map[string]Kind{
	ColCarName:      Categorical,
	ColBrand:        Categorical,
	ColModel:        Categorical,
	ColVehicleAge:   Numeric,
	ColKmDriven:     Numeric,
	ColSellerType:   Categorical,
	ColFuelType:     Categorical,
	ColTransmission: Categorical,
	ColMileage:      Numeric,
	ColEngine:       Numeric,
	ColMaxPower:     Numeric,
	ColSeats:        Numeric,
	ColSellingPrice: Numeric,
}

// KnownKind reports the registered kind of a column name.
func KnownKind(name string) (Kind, bool) {
	k, ok := registry[name]
	return k, ok
}

// Column describes one column of a loaded dataset.
type Column struct {
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Index int    `json:"index"`
}

// Schema maps column names to their position and kind.
type Schema struct {
	cols   []Column
	byName map[string]int
}

func newSchema(cols []Column) *Schema {
	s := &Schema{cols: cols, byName: make(map[string]int, len(cols))}
	for i, c := range cols {
		s.byName[c.Name] = i
	}
	return s
}

// Lookup returns the column with the given name.
func (s *Schema) Lookup(name string) (Column, bool) {
	if s == nil {
		return Column{}, false
	}
	i, ok := s.byName[name]
	if !ok {
		return Column{}, false
	}
	return s.cols[i], true
}

// Is reports whether name exists and has the given kind.
func (s *Schema) Is(name string, kind Kind) bool {
	c, ok := s.Lookup(name)
	return ok && c.Kind == kind
}

// Columns returns all columns in file order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.cols))
	copy(out, s.cols)
	return out
}

// Names returns column names of the given kind in file order.
func (s *Schema) Names(kind Kind) []string {
	var out []string
	for _, c := range s.cols {
		if c.Kind == kind {
			out = append(out, c.Name)
		}
	}
	return out
}

// SortedNames is Names sorted alphabetically.
func (s *Schema) SortedNames(kind Kind) []string {
	out := s.Names(kind)
	sort.Strings(out)
	return out
}
