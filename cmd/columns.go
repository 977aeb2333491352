package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Clean the raw column export",
	Long: `Read Revit_Data/column_data.csv, drop malformed rows, round
coordinates to millimeter precision, and write columns_cleaned.json.

Examples:
  goltd columns --dir path/to/project`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.CleanColumns() })
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
