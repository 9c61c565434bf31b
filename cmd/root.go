package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eorzea-tools/aetheryte-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "aetheryte-cli",
	Short: "Aetheryte coordinate enrichment tool",
	Long:  "Scrapes the FFXIV Console Games Wiki for teleport point coordinates and merges them into the aetheryte dataset by name matching.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if v, _ := cmd.Flags().GetString("dataset"); v != "" {
			cfg.Dataset.Path = v
		}
		if v, _ := cmd.Flags().GetString("log-level"); v != "" {
			cfg.Log.Level = v
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("dataset", "j", "", "path to the aetheryte dataset JSON (default aetheryte.json)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level: silent, error, warn, info, debug (default silent)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
