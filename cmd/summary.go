package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cardash/internal/analysis"
	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/utils"
)

var (
	sumFilters  filterFlags
	sumOutput   string
	sumHeadRows int
	sumTopN     int
	sumTopCol   string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dataset overview of the filtered rows as Markdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := sumFilters.filtered(cmd)
		if err != nil {
			return err
		}
		head, top := cfg.HeadRows, cfg.TopN
		if cmd.Flags().Changed("head") {
			head = sumHeadRows
		}
		if cmd.Flags().Changed("top") {
			top = sumTopN
		}
		if !v.Dataset().Schema().Is(sumTopCol, dataset.Categorical) {
			return fmt.Errorf("--top-col %q is not a categorical column", sumTopCol)
		}
		md := analysis.NewOverview(v, head, top, sumTopCol).Markdown()

		if sumOutput != "" {
			if err := utils.SafeWriteFile(sumOutput, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary of %d rows to %s\n", v.Len(), sumOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	sumFilters.register(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "optional path to write the summary (Markdown)")
	summaryCmd.Flags().IntVar(&sumHeadRows, "head", 5, "number of head rows to include (default from head_rows)")
	summaryCmd.Flags().IntVar(&sumTopN, "top", 20, "number of top values to list (default from top_n)")
	summaryCmd.Flags().StringVar(&sumTopCol, "top-col", dataset.ColModel, "categorical column for the top values section")
}
