package cmd

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cardash/internal/render"
	"github.com/KaramelBytes/cardash/internal/utils"
	"github.com/KaramelBytes/cardash/internal/view"
)

var (
	rdrFilters filterFlags
	rdrOutDir  string
	rdrFormat  string
	rdrOnly    []string
	rdrWidth   int
	rdrHeight  int
	rdrQuiet   bool
	rdrSelect  []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every dashboard chart of the filtered rows to a directory",
	Long: `Render every dashboard chart of the filtered rows to a directory as PNG images,
JSON chart descriptions, or both. Panel choices use the same keys as the web
dashboard, e.g. --set x=km_driven --set hist_group=fuel_type --set bins=50.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		png, js := false, false
		switch strings.ToLower(rdrFormat) {
		case "png":
			png = true
		case "json":
			js = true
		case "both":
			png, js = true, true
		default:
			return fmt.Errorf("unsupported --format: %s (use png|json|both)", rdrFormat)
		}
		sel, err := renderSelections()
		if err != nil {
			return err
		}
		v, err := rdrFilters.filtered(cmd)
		if err != nil {
			return err
		}
		d, err := view.Build(v, sel)
		if err != nil {
			return err
		}
		charts := d.Charts()
		if len(rdrOnly) > 0 {
			charts = charts[:0]
			for _, id := range rdrOnly {
				c, err := d.Chart(id)
				if err != nil {
					return err
				}
				charts = append(charts, c)
			}
		}
		if err := utils.EnsureDir(rdrOutDir); err != nil {
			return err
		}
		size := render.Size{Width: cfg.ChartWidth, Height: cfg.ChartHeight}
		if cmd.Flags().Changed("width") {
			size.Width = rdrWidth
		}
		if cmd.Flags().Changed("height") {
			size.Height = rdrHeight
		}

		out := cmd.OutOrStdout()
		total := len(charts)
		for i, c := range charts {
			if !rdrQuiet {
				fmt.Fprintf(out, "[%d/%d] Rendering %s...\n", i+1, total, c.ID)
			}
			if png {
				b, err := render.Bytes(c, size)
				if err != nil {
					return err
				}
				if err := utils.SafeWriteFile(filepath.Join(rdrOutDir, c.ID+".png"), b); err != nil {
					return err
				}
			}
			if js {
				b, err := utils.PrettyJSON(c)
				if err != nil {
					return err
				}
				if err := utils.SafeWriteFile(filepath.Join(rdrOutDir, c.ID+".json"), b); err != nil {
					return err
				}
			}
		}
		if js {
			b, err := utils.PrettyJSON(d)
			if err != nil {
				return err
			}
			if err := utils.SafeWriteFile(filepath.Join(rdrOutDir, "dashboard.json"), b); err != nil {
				return err
			}
		}
		if v.Empty() {
			fmt.Fprintf(out, "⚠ %s\n", view.NoDataMessage)
		}
		fmt.Fprintf(out, "✓ Rendered %d charts for %d rows to %s\n", total, v.Len(), rdrOutDir)
		return nil
	},
}

// renderSelections applies --set key=value pairs on top of the configured defaults.
func renderSelections() (view.Selections, error) {
	base := view.DefaultSelections()
	base.HeadRows, base.TopN, base.HistBins = cfg.HeadRows, cfg.TopN, cfg.HistBins
	q := url.Values{}
	for _, kv := range rdrSelect {
		k, val, ok := strings.Cut(kv, "=")
		if !ok {
			return base, fmt.Errorf("invalid --set %q (use key=value)", kv)
		}
		k = strings.TrimSpace(k)
		if k == "hover" {
			for _, h := range strings.Split(val, ",") {
				q.Add(k, h)
			}
			continue
		}
		q.Set(k, val)
	}
	return view.SelectionsFromValues(q, base)
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rdrFilters.register(renderCmd)
	renderCmd.Flags().StringVarP(&rdrOutDir, "out", "o", "charts", "output directory")
	renderCmd.Flags().StringVar(&rdrFormat, "format", "png", "output format: png | json | both")
	renderCmd.Flags().StringSliceVar(&rdrOnly, "only", nil, "render only these chart ids")
	renderCmd.Flags().IntVar(&rdrWidth, "width", 900, "chart width in pixels (default from chart_width)")
	renderCmd.Flags().IntVar(&rdrHeight, "height", 500, "chart height in pixels (default from chart_height)")
	renderCmd.Flags().BoolVarP(&rdrQuiet, "quiet", "q", false, "suppress progress output")
	renderCmd.Flags().StringArrayVar(&rdrSelect, "set", nil, "panel choice key=value; keys: x, y, color, hover, hist, bins, hist_group, box, box_group, top, top_col, head")
}
