package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var floorsCmd = &cobra.Command{
	Use:   "floors",
	Short: "Reconstruct merged floor boundaries",
	Long: `Read Revit_Data/floor_data.csv, rebuild one closed outline per
level group from the exported segment soup, and write the merged
boundaries plus a check plot per level.

Levels whose segments form no closed loop fall back to the convex hull
of the endpoints; the fallback is logged.

Examples:
  goltd floors --dir path/to/project
  goltd floors --dir path/to/project --no-plots`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.Floors() })
	},
}

func init() {
	rootCmd.AddCommand(floorsCmd)
}
