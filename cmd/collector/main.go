// Command collector runs one match-data collection pass against the Riot
// API: ladder roster, match ids, match detail and timeline reconstruction,
// persisted to a local SQLite database.
//
// Usage:
//
//	collector --db riot_data.db --platform euw1
//	collector --stages 1100 --tiers GOLD,SILVER --page-limit 5
//	collector --stages 0001 --rate-calls 100 --rate-window 120s
package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"rift-collector/internal/collector"
	"rift-collector/internal/config"
	fxmodules "rift-collector/internal/fx"
)

func main() {
	var opts config.Options

	root := &cobra.Command{
		Use:   "collector",
		Short: "Collect ranked match data into a local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollector(opts)
		},
	}

	root.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database path (default $DB_PATH or riot_data.db)")
	root.Flags().StringVar(&opts.Platform, "platform", "", "platform routing value, e.g. euw1 (default $RIOT_PLATFORM)")
	root.Flags().StringVar(&opts.StageMask, "stages", "1111", "four-character stage mask: roster, match ids, match detail, timeline")
	root.Flags().StringSliceVar(&opts.Tiers, "tiers", nil, "tiers to collect (default all)")
	root.Flags().StringSliceVar(&opts.Divisions, "divisions", nil, "divisions to collect (default all)")
	root.Flags().IntVar(&opts.PageLimit, "page-limit", -1, "ladder pages per tier and division, -1 for unlimited")
	root.Flags().IntVar(&opts.BatchLimit, "batch-limit", 0, "buffered rows per batch flush")
	root.Flags().IntVar(&opts.RateCalls, "rate-calls", 0, "API calls allowed per rate window")
	root.Flags().DurationVar(&opts.RateWindow, "rate-window", 0, "rate window duration, e.g. 120s")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCollector(opts config.Options) error {
	app := fx.New(
		fx.Supply(opts),
		fxmodules.Module,
		fx.Invoke(runPipeline),
	)
	app.Run()
	return nil
}

// runPipeline runs the collection pass once and shuts the app down when it
// completes. Interrupting the process cancels the run between units of
// work; already-flushed batches stay committed.
func runPipeline(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	pipeline *collector.Pipeline,
	db *sql.DB,
	logger zerolog.Logger,
) {
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				start := time.Now()
				if err := pipeline.Run(runCtx); err != nil {
					logger.Error().Err(err).Msg("collection run aborted")
				} else {
					logger.Info().Dur("duration", time.Since(start)).Msg("collection run complete")
				}
				if err := shutdowner.Shutdown(); err != nil {
					logger.Error().Err(err).Msg("shutdown failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
}
