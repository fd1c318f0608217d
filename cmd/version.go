package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aip-heidelberg/codeeval/internal/application"
)

// set via -ldflags at release time
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("%s version %s (%s)\n", application.AppName, version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
