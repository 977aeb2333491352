package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var foundationsCmd = &cobra.Command{
	Use:   "foundations",
	Short: "Reconstruct foundation pads and footing points",
	Long: `Read Revit_Data/foundation_data.csv, rebuild the individual pad
outlines per level group, filter out oversized polygons, and record a
support point at the centroid of every pad inside the footing size
band.

Examples:
  goltd foundations --dir path/to/project`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.Foundations() })
	},
}

func init() {
	rootCmd.AddCommand(foundationsCmd)
}
