package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/fruitfilter/internal/tui"
	"github.com/Iron-Ham/fruitfilter/internal/tui/styles"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the interactive filter page",
	Long: `Open the interactive filter page: a search box with colour and hardness
filters, a Refine Results section and one expandable section per view.

This is also what running fruitfilter without a subcommand does.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment("start")
	if err != nil {
		return err
	}
	defer env.Close()

	app := tui.New(tui.Options{
		Base:         env.base,
		Views:        env.views,
		Logger:       env.logger,
		MaxCellWidth: env.cfg.TUI.MaxCellWidth,
		DateFormat:   env.cfg.TUI.DateFormat,
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// applyTheme loads custom themes and activates the configured one, falling
// back to the default theme when it is unknown.
func applyTheme(env *environment) {
	_, loadErrs := styles.DiscoverCustomThemes()
	for _, err := range loadErrs {
		env.logger.Warn("custom theme failed to load", "error", err)
	}

	theme := env.cfg.TUI.Theme
	if !styles.IsValidTheme(theme) {
		env.logger.Warn("unknown theme, using default", "theme", theme)
		theme = string(styles.ThemeDefault)
	}
	styles.SetActiveTheme(styles.ThemeName(theme))
}
