package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Assemble per-storey structural plans",
	Long: `Merge the cleaned floor boundaries, columns, walls, and footing
points into one structural plan per storey. Columns and walls are
attached to every storey they span; wall centerlines become evenly
spaced sample points.

Requires the columns, walls, floors, and foundations steps to have run.

Examples:
  goltd combine --dir path/to/project`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.Combine() })
	},
}

func init() {
	rootCmd.AddCommand(combineCmd)
}
