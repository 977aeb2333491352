package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var wallsCmd = &cobra.Command{
	Use:   "walls",
	Short: "Clean the raw wall export",
	Long: `Read Revit_Data/wall_data.csv, drop walls below the minimum
unconnected height (parapets, upstands) and malformed rows, and write
wall_cleaned.json.

Examples:
  goltd walls --dir path/to/project`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.CleanWalls() })
	},
}

func init() {
	rootCmd.AddCommand(wallsCmd)
}
