package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aip-heidelberg/codeeval/internal/config"
	"github.com/aip-heidelberg/codeeval/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit codeeval settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}

		cmd.Println(string(data))

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a single setting",
	Long: `Set updates one configuration value and persists it. Keys match the
fields shown by 'codeeval config': env_name, conda_path, env_file,
dev_env_file, build_script, source_root, tests_dir, hub_base_url,
cache_ttl_hours.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := applySetting(&cfg, args[0], args[1]); err != nil {
			return err
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		cmd.Printf("Set %s = %s\n", args[0], args[1])

		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(model.DefaultConfig()); err != nil {
			return err
		}

		cmd.Println("Configuration reset to defaults.")

		return nil
	},
}

func applySetting(cfg *model.Config, key, value string) error {
	switch key {
	case "env_name":
		cfg.EnvName = value
	case "conda_path":
		cfg.CondaPath = value
	case "env_file":
		cfg.EnvFile = value
	case "dev_env_file":
		cfg.DevEnvFile = value
	case "build_script":
		cfg.BuildScript = value
	case "source_root":
		cfg.SourceRoot = value
	case "tests_dir":
		cfg.TestsDir = value
	case "hub_base_url":
		cfg.HubBaseURL = value
	case "cache_ttl_hours":
		hours, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache_ttl_hours must be an integer: %w", err)
		}

		cfg.CacheTTLHours = hours
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	return nil
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(configCmd)
}
