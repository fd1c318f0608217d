package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aip-heidelberg/codeeval/internal/dataset"
)

var dataOut string

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Build evaluation datasets from local sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var dataBuildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Build a CSV corpus from a directory of .d files",
	Long: `Build reads every .d file in the given directory (default "data"),
producing one record per file with the filename (without extension) as id
and the file contents as the program source, and writes the corpus as CSV.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "data"
		if len(args) > 0 {
			dir = args[0]
		}

		n, err := dataset.Build(cmd.Context(), dir, dataOut)
		if err != nil {
			return err
		}

		cmd.Printf("Wrote %d records to %s\n", n, dataOut)

		return nil
	},
}

func init() {
	dataBuildCmd.Flags().StringVarP(&dataOut, "out", "o", "dataset.csv", "Output CSV path")

	dataCmd.AddCommand(dataBuildCmd)
	rootCmd.AddCommand(dataCmd)
}
