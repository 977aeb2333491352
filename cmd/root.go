package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/config"
	"github.com/stralab/goltd/internal/pipeline"
	"github.com/stralab/goltd/internal/version"
)

var (
	// Global flags
	workDir    string
	configPath string
	verbose    bool
	noPlots    bool
)

var rootCmd = &cobra.Command{
	Use:   "goltd",
	Short: "Automated Load Take-Down Tool",
	Long: `goltd - Automated Load Take-Down

A CLI tool that turns raw structural exports from a BIM model into a
vertical load take-down: cleaned geometry, reconstructed floor
boundaries, weighted tributary areas per support point, and a column
load summary accumulated down the building.

The pipeline steps:
  - columns / walls / regions: clean the raw CSV exports
  - floors / foundations:      reconstruct boundaries and footings
  - combine:                   assemble per-storey structural plans
  - tributary:                 weighted Voronoi tessellation per floor
  - summary:                   vertical grouping and the load table

Run 'goltd run --dir DIR' to execute the whole chain.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Printf("  goltd v%s - Automated Load Take-Down\n", version.Version)
		fmt.Println()
		fmt.Println("  Point it at a working folder holding a Revit_Data/ export:")
		fmt.Println()
		fmt.Println("    goltd run --dir path/to/project")
		fmt.Println()
		fmt.Println("  Use 'goltd --help' to see the individual pipeline steps.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "d", ".", "Working folder holding the Revit_Data exports")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML run configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noPlots, "no-plots", false, "Skip check-plot rendering")
}

// newLogger creates the run logger with timestamp formatting. --verbose
// lowers the filter to debug.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// newPipeline builds the pipeline from the global flags.
func newPipeline() (*pipeline.Pipeline, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return pipeline.New(workDir, cfg, !noPlots, newLogger()), nil
}

// runStep executes one pipeline step and exits non-zero on failure.
func runStep(fn func(p *pipeline.Pipeline) error) {
	p, err := newPipeline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := fn(p); err != nil {
		p.Logger.Error("step failed", "err", err)
		os.Exit(1)
	}
}
