package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aip-heidelberg/codeeval/internal/cli"
	"github.com/aip-heidelberg/codeeval/internal/dataset"
)

const defaultDataset = "geeks4geeks"

var (
	fetchForce bool
	showLimit  int
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Fetch, list and inspect hub datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var datasetFetchCmd = &cobra.Command{
	Use:   "fetch [name]",
	Short: "Download a hub dataset into the local cache",
	Long: fmt.Sprintf(`Fetch downloads a named dataset from the Hugging Face hub and caches it
locally. A fresh cached copy is reused unless --force is given.

Known datasets: %s. The name defaults to %q.`,
		strings.Join(dataset.Names(), ", "), defaultDataset),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		name := defaultDataset
		if len(args) > 0 {
			name = args[0]
		}

		bag, cached, err := newDatasetService(cfg).Fetch(cmd.Context(), name, fetchForce)
		if err != nil {
			return err
		}

		source := "hub"
		if cached {
			source = "cache"
		}

		cmd.Printf("%s: %d rows (%s)\n", name, bag.Len(), source)

		return nil
	},
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cached, err := newDatasetService(cfg).List()
		if err != nil {
			return err
		}

		if len(cached) == 0 {
			cmd.Println("No cached datasets. Run 'codeeval dataset fetch' first.")
			return nil
		}

		for _, ds := range cached {
			cmd.Printf("%-16s  %-40s  %6d rows  fetched %s\n",
				ds.Name, ds.HubID, ds.NumRows, ds.FetchedAt.Local().Format(time.DateTime))
		}

		return nil
	},
}

var datasetShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Preview a cached dataset as a table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		name := defaultDataset
		if len(args) > 0 {
			name = args[0]
		}

		bag, err := newDatasetService(cfg).FromCache(name)
		if err != nil {
			return err
		}

		cmd.Print(cli.RenderBag(bag, showLimit))

		return nil
	},
}

func init() {
	datasetFetchCmd.Flags().BoolVarP(&fetchForce, "force", "f", false, "Re-download even when a fresh cached copy exists")
	datasetShowCmd.Flags().IntVarP(&showLimit, "limit", "n", 10, "Maximum number of rows to show (0 for all)")

	datasetCmd.AddCommand(datasetFetchCmd)
	datasetCmd.AddCommand(datasetListCmd)
	datasetCmd.AddCommand(datasetShowCmd)
	rootCmd.AddCommand(datasetCmd)
}
