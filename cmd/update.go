package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eorzea-tools/aetheryte-cli/internal/dataset"
	"github.com/eorzea-tools/aetheryte-cli/internal/extract"
	"github.com/eorzea-tools/aetheryte-cli/internal/runner"
	"github.com/eorzea-tools/aetheryte-cli/internal/store"
	"github.com/eorzea-tools/aetheryte-cli/internal/wiki"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch wiki coordinates and update the dataset",
	Long: `Run the full enrichment pass: for each map area with records still
missing coordinates, fetch the area's wiki page (cached for 24 hours),
extract teleport point candidates, and merge coordinates into matching
records. The dataset is saved after each area that received an update.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runUpdate(ctx)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

// runUpdate wires the cache, wiki client, and runner, then reports the
// per-area results and final totals.
func runUpdate(ctx context.Context) error {
	if _, err := os.Stat(cfg.Dataset.Path); err != nil {
		return eris.Wrapf(err, "dataset not found: %s", cfg.Dataset.Path)
	}

	ds, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return err
	}

	cache, err := store.NewSQLite(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	if err := cache.Migrate(ctx); err != nil {
		return err
	}
	if n, err := cache.PurgeExpired(ctx); err != nil {
		zap.L().Warn("cache purge failed", zap.Error(err))
	} else if n > 0 {
		zap.L().Debug("purged expired cache pages", zap.Int("count", n))
	}

	client := wiki.NewClient(cache, wiki.Options{
		BaseURL:    cfg.Wiki.BaseURL,
		Timeout:    time.Duration(cfg.Wiki.TimeoutSecs) * time.Second,
		CacheTTL:   time.Duration(cfg.Cache.TTLHours) * time.Hour,
		FetchDelay: time.Duration(cfg.Wiki.FetchDelayMS) * time.Millisecond,
	})

	fmt.Println("Starting coordinate data update")

	summary, err := runner.New(ds, client, extract.Extract).Run(ctx)
	if err != nil {
		return err
	}

	for _, area := range summary.Areas {
		if len(area.Messages) == 0 {
			continue
		}
		fmt.Printf("%s:\n", area.Area)
		for _, msg := range area.Messages {
			fmt.Printf("  %s\n", msg)
		}
	}

	fmt.Println()
	fmt.Printf("Complete! Updated %d teleport point coordinates\n", summary.Updated)
	fmt.Printf("Skipped %d records with existing coordinates\n", summary.SkippedRecords)
	fmt.Printf("Skipped %d areas with complete coordinates\n", summary.SkippedAreas)
	return nil
}
