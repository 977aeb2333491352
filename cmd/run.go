package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full take-down pipeline",
	Long: `Execute every pipeline step in dependency order: columns, walls,
regions, floors, foundations, combine, tributary, summary.

Examples:
  goltd run --dir path/to/project
  goltd run --dir path/to/project --config loads.toml --no-plots -v`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.Run(os.Stdout) })
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
