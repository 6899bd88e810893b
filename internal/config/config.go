package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/logging"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

// Config represents the complete fruitfilter configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
	// Views are the detail sections shown below the refined results, in
	// display order. Empty means the built-in Descriptions and Logistics.
	Views []view.Spec `mapstructure:"views"`
}

// DataConfig controls where the base table comes from
type DataConfig struct {
	// Source selects the provider: "static", "seeded" or "file" (default: "static")
	Source string `mapstructure:"source"`
	// Seed drives the seeded provider; the same seed yields the same table
	Seed uint64 `mapstructure:"seed"`
	// Rows is the number of rows the seeded provider generates (1-30, default: 30)
	Rows int `mapstructure:"rows"`
	// File is the YAML dataset read by the file provider. Supports ~.
	File string `mapstructure:"file"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	Theme string `mapstructure:"theme"`
	// MaxCellWidth truncates table cells wider than this many columns (default: 40)
	MaxCellWidth int `mapstructure:"max_cell_width"`
	// DateFormat is the Go time layout used by the date pickers (default: "2006-01-02")
	DateFormat string `mapstructure:"date_format"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logs are written to the config directory (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	rotation := logging.DefaultRotationConfig()
	return &Config{
		Data: DataConfig{
			Source: fruit.SourceStatic,
			Seed:   1,
			Rows:   fruit.MaxRows,
			File:   "",
		},
		TUI: TUIConfig{
			Theme:        "default",
			MaxCellWidth: 40,
			DateFormat:   fruit.DateLayout,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
		},
		Views: view.DefaultSpecs(),
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Data defaults
	viper.SetDefault("data.source", defaults.Data.Source)
	viper.SetDefault("data.seed", defaults.Data.Seed)
	viper.SetDefault("data.rows", defaults.Data.Rows)
	viper.SetDefault("data.file", defaults.Data.File)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.max_cell_width", defaults.TUI.MaxCellWidth)
	viper.SetDefault("tui.date_format", defaults.TUI.DateFormat)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	viper.SetDefault("views", defaults.Views)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fruitfilter")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fruitfilter"
	}
	return filepath.Join(home, ".config", "fruitfilter")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ProviderOptions returns the options handed to fruit.NewProvider.
func (d *DataConfig) ProviderOptions() fruit.ProviderOptions {
	return fruit.ProviderOptions{Seed: d.Seed, Rows: d.Rows, Path: expandHome(d.File)}
}

// NewProvider returns the data provider the config selects.
func (c *Config) NewProvider() (fruit.Provider, error) {
	return fruit.NewProvider(c.Data.Source, c.Data.ProviderOptions())
}

// BuildViews returns the configured views, or the defaults when none are set.
func (c *Config) BuildViews() ([]view.View, error) {
	return view.Build(c.Views)
}

// Rotation returns the log rotation settings.
func (l *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{MaxSizeMB: l.MaxSizeMB, MaxBackups: l.MaxBackups}
}

// NewLogger opens the application logger. When logging is disabled it
// returns a logger that discards everything.
func (c *Config) NewLogger() (*logging.Logger, error) {
	if !c.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return logging.NewLogger(dir, c.Logging.Level, c.Logging.Rotation())
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
