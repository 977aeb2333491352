package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var tributaryCmd = &cobra.Command{
	Use:   "tributary",
	Short: "Compute weighted tributary areas per floor",
	Long: `Tessellate every assembled floor plan around its support points,
clip the cells to the floor boundary, and weight each cell's area by
the unit loads of the load zones it overlaps. Each floor is processed
twice, once per load category, over the same site set.

Requires the combine and regions steps to have run.

Examples:
  goltd tributary --dir path/to/project
  goltd tributary --dir path/to/project --config loads.toml`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.Tributary() })
	},
}

func init() {
	rootCmd.AddCommand(tributaryCmd)
}
