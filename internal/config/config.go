package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/cardash/internal/view"
)

// EnvPrefix is prepended to every environment override (CARDASH_DATA_PATH, ...).
const EnvPrefix = "CARDASH"

// Global configuration structure.
type Global struct {
	// Dataset
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`

	// Server
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`

	// Panels
	HeadRows    int `mapstructure:"head_rows" yaml:"head_rows"`
	TopN        int `mapstructure:"top_n" yaml:"top_n"`
	HistBins    int `mapstructure:"hist_bins" yaml:"hist_bins"`
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists every settable key in display order.
var Keys = []string{
	"data_path", "sheet_name", "listen_addr",
	"head_rows", "top_n", "hist_bins", "chart_width", "chart_height",
	"log_level", "log_format",
}

func defaults(v *viper.Viper) {
	v.SetDefault("data_path", "cardekho_dataset.csv")
	v.SetDefault("sheet_name", "")
	v.SetDefault("listen_addr", ":8501")
	v.SetDefault("head_rows", 5)
	v.SetDefault("top_n", 20)
	v.SetDefault("hist_bins", 30)
	v.SetDefault("chart_width", 900)
	v.SetDefault("chart_height", 500)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Dir returns ~/.cardash.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".cardash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.cardash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is loaded into the environment first;
// variables already set are not overridden.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	defaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the dashboard cannot work with.
func (c *Global) Validate() error {
	switch {
	case c.HeadRows < 0:
		return fmt.Errorf("head_rows must not be negative, got %d", c.HeadRows)
	case c.TopN < 1:
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	case c.HistBins < 1 || c.HistBins > view.MaxBins:
		return fmt.Errorf("hist_bins must be between 1 and %d, got %d", view.MaxBins, c.HistBins)
	case c.ChartWidth < 100 || c.ChartHeight < 100:
		return fmt.Errorf("chart size must be at least 100x100, got %dx%d", c.ChartWidth, c.ChartHeight)
	}
	return nil
}
