package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "List, inspect and create color themes",
	Long: `Work with the color themes used by the fruitfilter TUI.

Besides the built-in themes, any YAML file in the themes directory
(~/.config/fruitfilter/themes/ by default) is offered as a custom theme
named after the file.

Start from 'theme export' or 'theme create' to get a complete template.`,
}

func init() {
	themeCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List built-in and custom themes",
			Args:  cobra.NoArgs,
			RunE:  runThemeList,
		},
		&cobra.Command{
			Use:   "export <theme> [file]",
			Short: "Write a theme as YAML",
			Long: `Write a theme in the custom theme file format, to file when given and
to stdout otherwise.

Examples:
  fruitfilter config theme export citrus
  fruitfilter config theme export nord orchard.yaml`,
			Args: cobra.RangeArgs(1, 2),
			RunE: runThemeExport,
		},
		&cobra.Command{
			Use:   "info <theme>",
			Short: "Show a theme's colors",
			Args:  cobra.ExactArgs(1),
			RunE:  runThemeInfo,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the custom themes directory",
			Args:  cobra.NoArgs,
			RunE:  runThemePath,
		},
		&cobra.Command{
			Use:   "create <name> [base-theme]",
			Short: "Start a custom theme from an existing one",
			Long: `Write <themes dir>/<name>.yaml holding the colors of base-theme
(default: default). Select it with 'fruitfilter config set tui.theme <name>'.

Example:
  fruitfilter config theme create orchard nord`,
			Args: cobra.RangeArgs(1, 2),
			RunE: runThemeCreate,
		},
	)
	configCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, loadErrs := styles.DiscoverCustomThemes()
	reportLoadErrors(cmd.ErrOrStderr(), loadErrs)

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	if custom := styles.CustomThemeNames(); len(custom) > 0 {
		fmt.Fprintln(out, "\nCustom themes:")
		for _, name := range custom {
			line := "  - " + name
			if theme := styles.GetCustomTheme(styles.ThemeName(name)); theme != nil && theme.Author != "" {
				line += " (by " + theme.Author + ")"
			}
			fmt.Fprintln(out, line)
		}
	}

	fmt.Fprintf(out, "\nCustom themes directory: %s\n", styles.ThemesDir())
	return nil
}

// reportLoadErrors warns about theme files that could not be used.
func reportLoadErrors(w io.Writer, errs []error) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(w, "Warning: Some themes failed to load:")
	for _, err := range errs {
		fmt.Fprintf(w, "  - %v\n", err)
	}
	fmt.Fprintln(w)
}

// lookupTheme discovers custom themes and checks that name is usable,
// pointing at the theme file's own error when it failed to load.
func lookupTheme(name string) error {
	_, loadErrs := styles.DiscoverCustomThemes()
	if styles.IsValidTheme(name) {
		return nil
	}

	for _, loadErr := range loadErrs {
		file, _, _ := strings.Cut(loadErr.Error(), ":")
		if file == name+".yaml" || file == name+".yml" {
			return fmt.Errorf("theme '%s' exists but failed to load: %v\n\nFix %s and try again", name, loadErr, filepath.Join(styles.ThemesDir(), file))
		}
	}
	return fmt.Errorf("unknown theme: %s (see 'fruitfilter config theme list'; custom themes live in %s)", name, styles.ThemesDir())
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := lookupTheme(name); err != nil {
		return err
	}

	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("exporting theme %s: %w", name, err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		_, err = out.Write(data)
		return err
	}

	dest := args[1]
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("writing theme to %s: %w", dest, err)
	}
	fmt.Fprintf(out, "Theme exported to: %s\n", dest)
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := lookupTheme(name); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n\n", name)

	custom := styles.GetCustomTheme(styles.ThemeName(name))
	switch {
	case styles.IsBuiltinTheme(name):
		fmt.Fprintln(out, "Type: Built-in")
	case custom != nil:
		fmt.Fprintln(out, "Type: Custom")
		for _, field := range [][2]string{{"Author", custom.Author}, {"Description", custom.Description}} {
			if field[1] != "" {
				fmt.Fprintf(out, "%s: %s\n", field[0], field[1])
			}
		}
	}

	printPalette(out, styles.GetPalette(styles.ThemeName(name)))
	return nil
}

func printPalette(out io.Writer, p *styles.ColorPalette) {
	colors := []struct {
		name  string
		color lipgloss.Color
	}{
		{"Primary", p.Primary},
		{"Secondary", p.Secondary},
		{"Warning", p.Warning},
		{"Error", p.Error},
		{"Muted", p.Muted},
		{"Surface", p.Surface},
		{"Text", p.Text},
		{"Border", p.Border},
		{"Highlight", p.Highlight},
	}

	fmt.Fprintln(out, "\nColors:")
	for _, c := range colors {
		fmt.Fprintf(out, "  %-10s %s\n", c.name+":", c.color)
	}
}

func runThemePath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dir := styles.ThemesDir()
	fmt.Fprintln(out, dir)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintln(out, "\n(not created yet; 'fruitfilter config theme create' will create it)")
	}
	return nil
}

// checkThemeName rejects names that cannot become a custom theme file.
func checkThemeName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("theme name cannot be empty")
	case strings.ContainsAny(name, `/\:*?"<>|`):
		return fmt.Errorf("theme name %q contains invalid characters", name)
	case styles.IsBuiltinTheme(name):
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}
	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := checkThemeName(name); err != nil {
		return err
	}

	base := string(styles.ThemeDefault)
	if len(args) == 2 {
		base = args[1]
		if err := lookupTheme(base); err != nil {
			return err
		}
	}

	path := filepath.Join(styles.ThemesDir(), name+".yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("theme '%s' already exists at %s", name, path)
	}

	theme := styles.FromPalette(
		capitalizeFirst(name),
		fmt.Sprintf("A custom fruitfilter theme based on %s", base),
		styles.GetPalette(styles.ThemeName(base)),
	)
	if err := styles.SaveTheme(name, theme); err != nil {
		return fmt.Errorf("creating theme %s: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n\nEdit its colors, then select it with:\n  fruitfilter config set tui.theme %s\n", path, name)
	return nil
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
