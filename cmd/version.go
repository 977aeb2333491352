package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stralab/goltd/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goltd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("goltd v%s\n", version.Version)
		fmt.Println("Automated Load Take-Down Tool")
		if version.GitCommit != "unknown" {
			fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
