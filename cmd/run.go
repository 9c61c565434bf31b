package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "List map areas, then run the update pass",
	Long:  "Single-shot mode: print the area listing followed by the full coordinate update, like running areas and update back to back.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := listAreas(); err != nil {
			return err
		}
		fmt.Println()
		return runUpdate(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
