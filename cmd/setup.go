package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aip-heidelberg/codeeval/internal/model"
	"github.com/aip-heidelberg/codeeval/internal/setup"
	"github.com/aip-heidelberg/codeeval/internal/store"
)

var (
	setupUpdateOnly bool
	setupSkipHooks  bool
	historyLimit    int
)

var setupCmd = &cobra.Command{
	Use:   "setup [ENV_NAME]",
	Short: "Bootstrap the Conda environment and commit hooks",
	Long: `Setup prepares a contributor checkout in four steps: create the Conda
environment from environment.yml (skipped when it already exists), run the
project build/test script inside it, update the environment from all
manifests with --prune, and install the pre-commit hooks.

The environment name defaults to the configured one and can be overridden
with a positional argument. Steps run in order and the first failure aborts
the run; every step is recorded in the local run history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		envName := cfg.EnvName
		if len(args) > 0 {
			envName = args[0]
		}

		layout, err := discoverLayout(cfg)
		if err != nil {
			return err
		}

		orch := setup.New(newCondaClient(cfg), store.GetDB(), logger)
		orch.Out = cmd.OutOrStdout()

		return orch.Run(cmd.Context(), setup.Options{
			EnvName:     envName,
			Layout:      layout,
			BuildScript: cfg.BuildScript,
			UpdateOnly:  setupUpdateOnly,
			SkipHooks:   setupSkipHooks,
		})
	},
}

var setupHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded setup runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := store.GetDB().ListRuns(historyLimit)
		if err != nil {
			return fmt.Errorf("loading run history: %w", err)
		}

		if len(runs) == 0 {
			cmd.Println("No setup runs recorded yet.")
			return nil
		}

		for _, r := range runs {
			marker := statusMarker(r.Status)
			cmd.Printf("%s  %-6s  %-16s  %s  %s\n",
				r.StartedAt.Local().Format(time.DateTime),
				r.Step,
				r.EnvName,
				marker,
				r.Duration.Round(time.Millisecond))
		}

		return nil
	},
}

func statusMarker(status string) string {
	switch status {
	case model.StatusOK:
		return "ok     "
	case model.StatusFailed:
		return "failed "
	case model.StatusSkipped:
		return "skipped"
	default:
		return status
	}
}

func init() {
	setupCmd.Flags().BoolVar(&setupUpdateOnly, "update-only", false, "Skip creation and build; only update the environment and hooks")
	setupCmd.Flags().BoolVar(&setupSkipHooks, "skip-hooks", false, "Do not install pre-commit hooks")

	setupHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of records to show")

	setupCmd.AddCommand(setupHistoryCmd)
	rootCmd.AddCommand(setupCmd)
}
