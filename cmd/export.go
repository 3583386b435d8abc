package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/utils"
)

var (
	expFilters filterFlags
	expOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered rows as CSV",
	Long: `Write the filtered rows as CSV with the original header and cell values.
The default file name is filtered_<dataset name>.csv in the current directory;
pass -o - to write to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := expFilters.filtered(cmd)
		if err != nil {
			return err
		}
		if expOutput == "-" {
			return dataset.WriteCSV(cmd.OutOrStdout(), v)
		}
		b, err := dataset.EncodeCSV(v)
		if err != nil {
			return err
		}
		path := utils.ResolveOutput(expOutput, dataset.ExportName(v.Dataset().Source()))
		if dir := filepath.Dir(path); dir != "." {
			if err := utils.EnsureDir(dir); err != nil {
				return err
			}
		}
		if err := utils.SafeWriteFile(path, b); err != nil {
			return err
		}
		if v.Empty() {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠ No rows match the filters; wrote header only to %s\n", path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d of %d rows to %s\n", v.Len(), v.Dataset().Len(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	expFilters.register(exportCmd)
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output file or directory ('-' for stdout)")
}
