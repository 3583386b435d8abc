package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cardash/internal/dashboard"
	"github.com/KaramelBytes/cardash/internal/obs"
	"github.com/KaramelBytes/cardash/internal/render"
	"github.com/KaramelBytes/cardash/internal/server"
	"github.com/KaramelBytes/cardash/internal/view"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		addr := cfg.ListenAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		sel := view.DefaultSelections()
		sel.HeadRows, sel.TopN, sel.HistBins = cfg.HeadRows, cfg.TopN, cfg.HistBins

		app := dashboard.New(ds)
		m := obs.NewMetrics()
		m.DatasetRows.Set(float64(ds.Len()))
		app.Subscribe(m.Observe)
		app.Subscribe(func(s *dashboard.Snapshot) {
			slog.Debug("recomputed", "rows", s.View.Len(), "took", s.Took)
		})

		srv := server.New(app, m, slog.Default(), server.Options{
			Addr:       addr,
			ChartSize:  render.Size{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
			Selections: sel,
		})
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8501", "listen address (default from listen_addr)")
}
