package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "episodic"

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds remote catalog configuration
type CatalogConfig struct {
	BaseURL        string `mapstructure:"base_url"`        // Catalog API root
	Country        string `mapstructure:"country"`         // ISO 3166-1 country code for schedule lookups
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // HTTP client timeout
}

// StorageConfig holds local storage locations
type StorageConfig struct {
	DataDir  string `mapstructure:"data_dir"`  // Overrides the platform data directory
	CacheDir string `mapstructure:"cache_dir"` // Overrides the platform cache directory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:        "https://api.tvmaze.com",
			Country:        "US",
			TimeoutSeconds: 30,
		},
		Storage: StorageConfig{
			DataDir:  "",
			CacheDir: "",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// Timeout returns the catalog HTTP timeout as a duration
func (c *CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DataDir resolves the directory holding the series datastore.
// A configured override wins; otherwise the platform data directory is used.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return expandHome(c.Storage.DataDir)
	}
	return defaultDataPath()
}

// CacheDir resolves the root directory of the document cache.
func (c *Config) CacheDir() (string, error) {
	if c.Storage.CacheDir != "" {
		return expandHome(c.Storage.CacheDir)
	}
	return defaultCachePath()
}

// Path resolves the log file location with ~ expanded.
// An empty file means file logging is disabled.
func (c *LoggingConfig) Path() (string, error) {
	if c.File == "" {
		return "", nil
	}
	return expandHome(c.File)
}

// SlogLevel maps the configured level name onto a slog.Level.
// Unrecognized names fall back to Info.
func (c *LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaultDataPath returns the platform data directory for the current OS
func defaultDataPath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir := os.Getenv("APPDATA")
		if dir == "" {
			return "", fmt.Errorf("APPDATA is not set")
		}
		return filepath.Join(dir, appName), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share", appName), nil
	}
}

// defaultCachePath returns the platform cache directory for the current OS
func defaultCachePath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir := os.Getenv("LOCALAPPDATA")
		if dir == "" {
			return "", fmt.Errorf("LOCALAPPDATA is not set")
		}
		return filepath.Join(dir, appName, "cache"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".cache", appName), nil
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// DefaultConfigFile returns the path the config file is written to
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// LoadConfig loads configuration from file and environment.
// An explicit path overrides the default search locations and must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		expanded, err := expandHome(path)
		if err != nil {
			return nil, err
		}
		viper.SetConfigFile(expanded)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(defaultConfigPath())
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	viper.SetEnvPrefix("EPISODIC")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("catalog.base_url", cfg.Catalog.BaseURL)
	viper.Set("catalog.country", cfg.Catalog.Country)
	viper.Set("catalog.timeout_seconds", cfg.Catalog.TimeoutSeconds)

	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("storage.cache_dir", cfg.Storage.CacheDir)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
