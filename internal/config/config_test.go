package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setTempHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix home layout")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDefaultDataDirUnderHome(t *testing.T) {
	home := setTempHome(t)

	cfg := DefaultConfig()
	dir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	want := filepath.Join(home, ".local", "share", "episodic")
	if dir != want {
		t.Fatalf("unexpected data dir: got %q want %q", dir, want)
	}

	cacheDir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir: %v", err)
	}
	if want := filepath.Join(home, ".cache", "episodic"); cacheDir != want {
		t.Fatalf("unexpected cache dir: got %q want %q", cacheDir, want)
	}
}

func TestDataDirOverrideWins(t *testing.T) {
	home := setTempHome(t)

	cfg := DefaultConfig()
	cfg.Storage.DataDir = "~/elsewhere"

	dir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join(home, "elsewhere"); dir != want {
		t.Fatalf("override not honored: got %q want %q", dir, want)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setTempHome(t)
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Catalog.BaseURL != "https://api.tvmaze.com" {
		t.Fatalf("unexpected base url: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Country != "US" {
		t.Fatalf("unexpected country: %q", cfg.Catalog.Country)
	}
	if got := cfg.Catalog.Timeout(); got != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", got)
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	setTempHome(t)
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "catalog:\n  base_url: http://localhost:9090\n  country: DE\nstorage:\n  data_dir: /srv/episodic\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Catalog.BaseURL != "http://localhost:9090" {
		t.Fatalf("base url not loaded: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Country != "DE" {
		t.Fatalf("country not loaded: %q", cfg.Catalog.Country)
	}
	if cfg.Storage.DataDir != "/srv/episodic" {
		t.Fatalf("data dir not loaded: %q", cfg.Storage.DataDir)
	}
}

func TestLoadConfigMissingExplicitPathFails(t *testing.T) {
	setTempHome(t)
	t.Cleanup(viper.Reset)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestSaveConfigRoundTripsThroughFile(t *testing.T) {
	setTempHome(t)
	t.Cleanup(viper.Reset)

	cfg := DefaultConfig()
	cfg.Catalog.Country = "GB"
	cfg.Storage.CacheDir = "/var/cache/episodic"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	// Drop in-memory state so the reload proves the file was written.
	viper.Reset()

	loaded, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Catalog.Country != "GB" {
		t.Fatalf("country did not round trip: %q", loaded.Catalog.Country)
	}
	if loaded.Storage.CacheDir != "/var/cache/episodic" {
		t.Fatalf("cache dir did not round trip: %q", loaded.Storage.CacheDir)
	}
}

func TestCatalogTimeoutFallsBackWhenUnset(t *testing.T) {
	c := CatalogConfig{TimeoutSeconds: 0}
	if got := c.Timeout(); got != 30*time.Second {
		t.Fatalf("zero timeout should fall back to 30s, got %v", got)
	}
	c.TimeoutSeconds = 5
	if got := c.Timeout(); got != 5*time.Second {
		t.Fatalf("explicit timeout ignored: %v", got)
	}
}

func TestLoggingSlogLevel(t *testing.T) {
	cases := []struct {
		level string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tc := range cases {
		c := LoggingConfig{Level: tc.level}
		if got := c.SlogLevel(); got != tc.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestLoggingPathEmptyMeansDisabled(t *testing.T) {
	c := LoggingConfig{}
	path, err := c.Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if path != "" {
		t.Fatalf("empty file should resolve empty, got %q", path)
	}
}
