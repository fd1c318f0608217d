package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aip-heidelberg/codeeval/internal/bop"
	"github.com/aip-heidelberg/codeeval/internal/cli"
	"github.com/aip-heidelberg/codeeval/internal/dataset"
)

var resultsLimit int

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect evaluation result files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Render a results.json file as a table with a pass summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bag, err := bop.FromJSON(dataset.ResultsSchema, args[0])
		if err != nil {
			return err
		}

		cmd.Print(cli.RenderBag(bag, resultsLimit))

		successes, err := bag.Bools("success")
		if err != nil {
			return err
		}

		passed := 0
		for _, ok := range successes {
			if ok {
				passed++
			}
		}

		cmd.Printf("\n%d/%d evaluations succeeded\n", passed, bag.Len())

		return nil
	},
}

func init() {
	resultsShowCmd.Flags().IntVarP(&resultsLimit, "limit", "n", 0, "Maximum number of rows to show (0 for all)")

	resultsCmd.AddCommand(resultsShowCmd)
	rootCmd.AddCommand(resultsCmd)
}
