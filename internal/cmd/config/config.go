// Package config provides CLI commands for managing fruitfilter configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/fruitfilter/internal/config"
	"github.com/Iron-Ham/fruitfilter/internal/errors"
	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify fruitfilter configuration",
	Long: `View or modify fruitfilter configuration.

Without arguments, shows the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  fruitfilter config set data.source seeded
  fruitfilter config set data.seed 42
  fruitfilter config set tui.theme nord

Valid keys:
  data.source          - Where the fruit table comes from
                         Options: static, seeded, file
  data.seed            - Seed for the seeded source
  data.rows            - Rows generated by the seeded source (1-30)
  data.file            - YAML dataset read by the file source
  tui.theme            - Color theme (see 'config theme list')
  tui.max_cell_width   - Truncate table cells wider than this
  tui.date_format      - Go time layout for the date pickers
  logging.enabled      - Write logs to the config directory (true/false)
  logging.level        - Log level: debug, info, warn, error
  logging.max_size_mb  - Log size in megabytes before rotation
  logging.max_backups  - Rotated log files to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/fruitfilter/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  fruitfilter config reset             # Reset all to defaults
  fruitfilter config reset tui.theme   # Reset only tui.theme to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyType tells runConfigSet how to parse and check a value.
type keyType int

const (
	typeString keyType = iota
	typeSource
	typeTheme
	typeLevel
	typeBool
	typeInt
)

var validKeys = map[string]keyType{
	"data.source":         typeSource,
	"data.seed":           typeInt,
	"data.rows":           typeInt,
	"data.file":           typeString,
	"tui.theme":           typeTheme,
	"tui.max_cell_width":  typeInt,
	"tui.date_format":     typeString,
	"logging.enabled":     typeBool,
	"logging.level":       typeLevel,
	"logging.max_size_mb": typeInt,
	"logging.max_backups": typeInt,
}

func unknownKey(key string) error {
	return errors.NewValidationError("unknown configuration key; run 'fruitfilter config set --help' to see valid keys").
		WithField("key").
		WithValue(key)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appconfig.Get()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "data:")
	fmt.Fprintf(out, "  source: %s\n", cfg.Data.Source)
	fmt.Fprintf(out, "  seed: %d\n", cfg.Data.Seed)
	fmt.Fprintf(out, "  rows: %d\n", cfg.Data.Rows)
	fmt.Fprintf(out, "  file: %s\n", cfg.Data.File)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  max_cell_width: %d\n", cfg.TUI.MaxCellWidth)
	fmt.Fprintf(out, "  date_format: %s\n", cfg.TUI.DateFormat)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)

	views, err := yaml.Marshal(map[string]any{"views": cfg.Views})
	if err != nil {
		return fmt.Errorf("encoding views: %w", err)
	}
	fmt.Fprint(out, string(views))

	return nil
}

// parseValue converts value to the type key stores.
func parseValue(key, value string) (any, error) {
	kt, ok := validKeys[key]
	if !ok {
		return nil, unknownKey(key)
	}

	invalid := func(message string) error {
		return errors.NewValidationError(message).WithField(key).WithValue(value)
	}

	switch kt {
	case typeSource:
		if !slices.Contains(fruit.ValidSources(), value) {
			return nil, invalid("must be one of: " + strings.Join(fruit.ValidSources(), ", "))
		}
	case typeLevel:
		if !slices.Contains(appconfig.ValidLogLevels(), value) {
			return nil, invalid("must be one of: " + strings.Join(appconfig.ValidLogLevels(), ", "))
		}
	case typeTheme:
		// Discover custom themes first
		_, _ = styles.DiscoverCustomThemes()
		if !styles.IsValidTheme(value) {
			return nil, invalid("must be one of: " + strings.Join(styles.ValidThemes(), ", "))
		}
	case typeBool:
		if value != "true" && value != "false" {
			return nil, invalid("expected true or false")
		}
		return value == "true", nil
	case typeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, invalid("expected integer")
		}
		if n < 0 {
			return nil, invalid("must be non-negative")
		}
		return n, nil
	}
	return value, nil
}

// writeConfig saves the current viper settings to the user's config file.
func writeConfig() (string, error) {
	configDir := appconfig.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]

	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	previous := viper.Get(key)
	viper.Set(key, typedValue)

	// Range checks live in the config validator; undo the change if the
	// resulting configuration no longer loads.
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return err
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)

	return nil
}

// defaultConfig is the commented file written by 'config init'.
const defaultConfig = `# fruitfilter configuration

# Where the fruit table comes from
data:
  # Source: static (the built-in demo table), seeded (random rows) or file
  source: static
  # Seed for the seeded source; the same seed always yields the same table
  seed: 1
  # Number of rows the seeded source generates (1-30)
  rows: 30
  # YAML dataset read by the file source (supports ~)
  file: ""

# TUI (terminal user interface) settings
tui:
  # Color theme: default, citrus, berry, dracula, nord, light,
  # or the name of a custom theme in the themes directory
  theme: default
  # Table cells wider than this are truncated with an ellipsis
  max_cell_width: 40
  # Go time layout used by the date pickers
  date_format: "2006-01-02"

# Debug logging, written to the config directory
logging:
  enabled: true
  # Level: debug, info, warn, error
  level: info
  # Rotate the log after this many megabytes
  max_size_mb: 5
  # Rotated log files to keep
  max_backups: 2

# Detail sections shown below the refined results, in order.
# date_column must be a date column; columns may name any column.
views:
  - key: descriptions
    title: Descriptions
    date_column: expiry
    columns: [fruit, expiry, description]
  - key: logistics
    title: Logistics
    date_column: shipped
    columns: [fruit, shipped, origin, shipper, weight]
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'fruitfilter config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize fruitfilter.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := appconfig.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/fruitfilter/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: FRUITFILTER_* (e.g., FRUITFILTER_DATA_SOURCE)")

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file exists, if not create it
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

// defaultValues maps every settable key to its default.
func defaultValues() map[string]any {
	defaults := appconfig.Default()
	return map[string]any{
		"data.source":         defaults.Data.Source,
		"data.seed":           defaults.Data.Seed,
		"data.rows":           defaults.Data.Rows,
		"data.file":           defaults.Data.File,
		"tui.theme":           defaults.TUI.Theme,
		"tui.max_cell_width":  defaults.TUI.MaxCellWidth,
		"tui.date_format":     defaults.TUI.DateFormat,
		"logging.enabled":     defaults.Logging.Enabled,
		"logging.level":       defaults.Logging.Level,
		"logging.max_size_mb": defaults.Logging.MaxSizeMB,
		"logging.max_backups": defaults.Logging.MaxBackups,
	}
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	values := defaultValues()

	if len(args) == 0 {
		for key, value := range values {
			viper.Set(key, value)
		}
		viper.Set("views", appconfig.Default().Views)
		fmt.Fprintln(cmd.OutOrStdout(), "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := values[key]
		if !ok {
			return unknownKey(key)
		}
		viper.Set(key, value)
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}
