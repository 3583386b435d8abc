package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/filter"
	"github.com/KaramelBytes/cardash/internal/utils"
)

var optJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the filter values and columns available in the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		w := filter.Options(ds)
		out := cmd.OutOrStdout()
		if optJSON {
			b, err := utils.PrettyJSON(w)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		fmt.Fprintf(out, "Dataset: %s (%d rows)\n\n", ds.Source(), ds.Len())
		for _, d := range w.Dimensions {
			fmt.Fprintf(out, "%s [--%s]\n", d.Label, flagFor(d.Column))
			fmt.Fprintf(out, "  %s\n", strings.Join(d.Levels, ", "))
		}
		fmt.Fprintf(out, "%s [--age-min/--age-max]\n  %d to %d\n\n", w.Age.Label, w.Age.Min, w.Age.Max)
		fmt.Fprintf(out, "Numeric columns:     %s\n", strings.Join(ds.Schema().SortedNames(dataset.Numeric), ", "))
		fmt.Fprintf(out, "Categorical columns: %s\n", strings.Join(ds.Schema().SortedNames(dataset.Categorical), ", "))
		return nil
	},
}

func flagFor(col string) string {
	switch col {
	case dataset.ColFuelType:
		return "fuel"
	case dataset.ColTransmission:
		return "transmission"
	case dataset.ColSellerType:
		return "seller"
	}
	return col
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&optJSON, "json", false, "print as JSON")
}
