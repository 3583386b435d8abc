package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/cardash/internal/config"
	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/logging"
)

var (
	cfgFile  string
	debug    bool
	dataPath string

	// Loaded configuration
	cfg *cfgpkg.Global

	// one dataset per process, keyed by path
	cache *dataset.Cache
)

var rootCmd = &cobra.Command{
	Use:   "cardash",
	Short: "cardash: explore used-car listings from the terminal or a browser",
	Long: `cardash loads a used-car listings file (CSV, TSV or XLSX), filters it by brand,
fuel type, transmission, seller type and vehicle age, and renders summary tables and
charts. Use 'serve' for the browser dashboard or the other commands for scripted output.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.cardash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset file (overrides data_path)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	if cmd.Flags().Changed("data") && dataPath != "" {
		cfg.DataPath = dataPath
	}
	if _, err := logging.Init(os.Stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Debug: debug}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	return nil
}

// loadDataset returns the process dataset, loading it on first use.
func loadDataset() (*dataset.Dataset, error) {
	if cfg == nil || cfg.DataPath == "" {
		return nil, fmt.Errorf("no dataset: pass --data or set data_path")
	}
	if cache == nil || cache.Path() != cfg.DataPath {
		cache = dataset.NewCache(cfg.DataPath, dataset.Options{SheetName: cfg.SheetName})
	}
	return cache.Get()
}
