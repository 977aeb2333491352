package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Accumulate loads into the take-down table",
	Long: `Chain the tributary results across floors into vertical column
groups, accumulate permanent and imposed loads top-down, print the
take-down table, and write column_load_summary.xlsx.

Requires the tributary step to have run.

Examples:
  goltd summary --dir path/to/project`,
	Run: func(cmd *cobra.Command, args []string) {
		runStep(func(p *pipeline.Pipeline) error { return p.Summary(os.Stdout) })
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
