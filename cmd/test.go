package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aip-heidelberg/codeeval/internal/testrun"
)

var testCmd = &cobra.Command{
	Use:   "test [pytest args...]",
	Short: "Run the project test suite inside the managed environment",
	Long: `Test runs pytest inside the configured Conda environment with
PYTHONPATH pointing at the source root, so tests import the package from
source. Extra arguments are passed to pytest verbatim.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		layout, err := discoverLayout(cfg)
		if err != nil {
			return err
		}

		return testrun.Run(cmd.Context(), newCondaClient(cfg), testrun.Options{
			EnvName:    cfg.EnvName,
			SourceRoot: cfg.SourceRoot,
			TestPaths:  layout.TestPaths,
			Extra:      args,
		})
	},
}

func init() {
	// pytest owns everything after the command name
	testCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(testCmd)
}
