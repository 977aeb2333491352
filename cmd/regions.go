package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Clean the filled-region load export",
	Long: `Read Revit_Data/filled_region_boundaries_filtered.csv, group the
load-zone polygons by level and load category (Permanent / Imposed),
and write area_loads_cleaned.json.

Examples:
  goltd regions --dir path/to/project`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.CleanRegions() })
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
