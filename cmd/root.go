package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aip-heidelberg/codeeval/internal/application"
	"github.com/aip-heidelberg/codeeval/internal/cli"
	"github.com/aip-heidelberg/codeeval/internal/conda"
	"github.com/aip-heidelberg/codeeval/internal/logging"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A toolkit for code-translation evaluation projects",
	Long: `Codeeval manages the day-to-day workflow of a code evaluation project:
it bootstraps and updates the Conda environment, installs commit hooks,
builds and fetches evaluation datasets, inspects result files and runs the
test suite inside the managed environment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}

		logger = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a failed external tool invocation to the child's own exit
// code, so pytest statuses (2 interrupted, 5 no tests collected, ...)
// survive. Everything else exits 1.
func exitCode(err error) int {
	var toolErr *conda.ToolError
	if errors.As(err, &toolErr) {
		if code := toolErr.ExitCode(); code > 0 {
			return code
		}
	}

	return 1
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// resetFlags restores a command's previously-set flags to their defaults.
// Flag values bind package-level vars, so without this a menu selection
// would inherit flags from an earlier selection of the same command.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func runInteractiveMenu(cmd *cobra.Command) error {
	for {
		m := cli.NewMainMenu()
		p := tea.NewProgram(m)

		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		menuModel, ok := finalModel.(cli.MainMenuModel)
		if !ok {
			return nil
		}

		choice := menuModel.GetChoice()
		if choice == "" || choice == "exit" {
			fmt.Println("Goodbye!")
			return nil
		}

		target, targetArgs, err := rootCmd.Find(strings.Fields(choice))
		if err != nil {
			return err
		}

		resetFlags(target)

		if err := target.ParseFlags(targetArgs); err != nil {
			return err
		}

		target.SetContext(cmd.Context())

		runArgs := target.Flags().Args()
		if err := target.ValidateArgs(runArgs); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else if err := target.RunE(target, runArgs); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		fmt.Println("\nPress Enter to continue...")
		_, _ = fmt.Scanln()
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Assigned here rather than in the literal: the closure refers to
	// rootCmd through runInteractiveMenu.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runInteractiveMenu(cmd)
	}
}
