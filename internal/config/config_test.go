package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/cardash/internal/view"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// keep any .env in the package dir out of the test
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ListenAddr != ":8501" || c.HeadRows != 5 || c.TopN != 20 || c.HistBins != 30 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestSaveLoadRoundTripAndEnv(t *testing.T) {
	home := isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	c.DataPath = "/data/cars.csv"
	c.TopN = 10
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".cardash", "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	t.Setenv("CARDASH_TOP_N", "7")
	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got.DataPath != "/data/cars.csv" {
		t.Errorf("data_path = %q", got.DataPath)
	}
	if got.TopN != 7 {
		t.Errorf("env should override file, top_n = %d", got.TopN)
	}
}

func TestDotEnvFile(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("CARDASH_LISTEN_ADDR=:9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CARDASH_LISTEN_ADDR", "")
	os.Unsetenv("CARDASH_LISTEN_ADDR")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.ListenAddr != ":9000" {
		t.Fatalf("listen_addr = %q", c.ListenAddr)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"no bins":       "hist_bins: 0\n",
		"too many bins": "hist_bins: 600\n",
		"negative head": "head_rows: -1\n",
		"tiny chart":    "chart_width: 50\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateHistBinsBound(t *testing.T) {
	isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	c.HistBins = view.MaxBins
	if err := c.Validate(); err != nil {
		t.Fatalf("MaxBins rejected: %v", err)
	}
	c.HistBins = view.MaxBins + 1
	if err := c.Validate(); err == nil {
		t.Fatal("expected error above MaxBins")
	}
}
