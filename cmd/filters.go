package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/filter"
)

// filterFlags are the sidebar filters as command line flags.
type filterFlags struct {
	brands        []string
	fuels         []string
	transmissions []string
	sellers       []string
	ageMin        float64
	ageMax        float64
	where         []string
	ranges        []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.brands, "brand", nil, "keep only these brands (repeatable or comma separated)")
	fs.StringSliceVar(&f.fuels, "fuel", nil, "keep only these fuel types")
	fs.StringSliceVar(&f.transmissions, "transmission", nil, "keep only these transmission types")
	fs.StringSliceVar(&f.sellers, "seller", nil, "keep only these seller types")
	fs.Float64Var(&f.ageMin, "age-min", 0, "minimum vehicle age in years (default: observed minimum)")
	fs.Float64Var(&f.ageMax, "age-max", 0, "maximum vehicle age in years (default: observed maximum)")
	fs.StringArrayVar(&f.where, "where", nil, "categorical filter col=v1,v2 on any column (repeatable)")
	fs.StringArrayVar(&f.ranges, "range", nil, "numeric filter col=lo:hi on any column, either bound may be empty (repeatable)")
}

// state builds the filter state on top of the dataset defaults.
func (f *filterFlags) state(cmd *cobra.Command, ds *dataset.Dataset) (filter.State, error) {
	var over filter.State
	for col, vals := range map[string][]string{
		dataset.ColBrand:        f.brands,
		dataset.ColFuelType:     f.fuels,
		dataset.ColTransmission: f.transmissions,
		dataset.ColSellerType:   f.sellers,
	} {
		if len(vals) > 0 {
			over.Include(col, vals...)
		}
	}
	for _, w := range f.where {
		col, rest, ok := strings.Cut(w, "=")
		if !ok || strings.TrimSpace(col) == "" {
			return filter.State{}, fmt.Errorf("invalid --where %q (use col=v1,v2)", w)
		}
		var vals []string
		for _, v := range strings.Split(rest, ",") {
			if v = strings.TrimSpace(v); v != "" {
				vals = append(vals, v)
			}
		}
		over.Include(strings.TrimSpace(col), vals...)
	}

	base := filter.Default(ds)
	age := base.Ranges[dataset.ColVehicleAge]
	if cmd.Flags().Changed("age-min") || cmd.Flags().Changed("age-max") {
		if cmd.Flags().Changed("age-min") {
			age.Lo = f.ageMin
		}
		if cmd.Flags().Changed("age-max") {
			age.Hi = f.ageMax
		}
		if age.Lo > age.Hi {
			return filter.State{}, fmt.Errorf("--age-min %g is greater than --age-max %g", age.Lo, age.Hi)
		}
		over.Between(dataset.ColVehicleAge, age.Lo, age.Hi)
	}
	for _, r := range f.ranges {
		col, lo, hi, err := parseRange(r)
		if err != nil {
			return filter.State{}, err
		}
		over.Between(col, lo, hi)
	}
	return filter.Merge(base, over), nil
}

func parseRange(s string) (col string, lo, hi float64, err error) {
	col, bounds, ok := strings.Cut(s, "=")
	loS, hiS, ok2 := strings.Cut(bounds, ":")
	if !ok || !ok2 || strings.TrimSpace(col) == "" {
		return "", 0, 0, fmt.Errorf("invalid --range %q (use col=lo:hi)", s)
	}
	lo, hi = math.Inf(-1), math.Inf(1)
	if v := strings.TrimSpace(loS); v != "" {
		if lo, err = strconv.ParseFloat(v, 64); err != nil {
			return "", 0, 0, fmt.Errorf("invalid --range lower bound %q: %w", v, err)
		}
	}
	if v := strings.TrimSpace(hiS); v != "" {
		if hi, err = strconv.ParseFloat(v, 64); err != nil {
			return "", 0, 0, fmt.Errorf("invalid --range upper bound %q: %w", v, err)
		}
	}
	return strings.TrimSpace(col), lo, hi, nil
}

// filtered loads the dataset and applies the flag state.
func (f *filterFlags) filtered(cmd *cobra.Command) (*dataset.View, error) {
	ds, err := loadDataset()
	if err != nil {
		return nil, err
	}
	st, err := f.state(cmd, ds)
	if err != nil {
		return nil, err
	}
	return filter.Apply(ds, st)
}
