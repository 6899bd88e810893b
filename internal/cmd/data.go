package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Print the base table",
	Long: `Print the table every search starts from, as selected by data.source.

The yaml format can be saved and loaded back with data.source=file:
  fruitfilter data --format yaml > fruit.yaml
  fruitfilter config set data.file fruit.yaml
  fruitfilter config set data.source file`,
	Args: cobra.NoArgs,
	RunE: runData,
}

func init() {
	dataCmd.Flags().StringP("format", "f", formatTable, "output format: table or yaml")
	rootCmd.AddCommand(dataCmd)
}

func runData(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	env, err := loadEnvironment("data")
	if err != nil {
		return err
	}
	defer env.Close()

	if format == formatYAML {
		data, err := fruit.EncodeYAML(env.base.Records())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	return writeTable(cmd.OutOrStdout(), view.Project(env.base, nil), env.cfg.TUI.MaxCellWidth)
}
