package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/eorzea-tools/aetheryte-cli/internal/dataset"
)

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "List all map areas in the dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listAreas()
	},
}

func init() {
	rootCmd.AddCommand(areasCmd)
}

// listAreas prints the distinct MapArea values, sorted, with a count.
func listAreas() error {
	if _, err := os.Stat(cfg.Dataset.Path); err != nil {
		return eris.Wrapf(err, "dataset not found: %s", cfg.Dataset.Path)
	}

	ds, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return err
	}

	names := ds.AreaNames()
	fmt.Println("Map areas:")
	for i, name := range names {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
	fmt.Printf("Found %d unique map areas\n", len(names))
	return nil
}
