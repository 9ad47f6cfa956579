// Command backfill re-runs enrichment over existing catalog items.
//
// Full mode regenerates titles, descriptions, slugs, tags, categories and
// descriptors; tags-only mode touches nothing but the tag set. Per-item
// failures are logged and counted, the run itself keeps going.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptfinder/core/internal/config"
	"github.com/promptfinder/core/internal/database"
	"github.com/promptfinder/core/internal/modules/content/taxonomy"
	"github.com/promptfinder/core/internal/modules/processing/enrichment"
	"github.com/promptfinder/core/internal/modules/processing/vision"
	"github.com/promptfinder/core/internal/modules/storage/media"
	"github.com/promptfinder/core/internal/modules/tasks/backfill"
	"github.com/promptfinder/core/internal/pkg/imagefetch"
	"github.com/promptfinder/core/internal/pkg/nativelog"
	pkgredis "github.com/promptfinder/core/internal/pkg/redis"
	"github.com/promptfinder/core/internal/pkg/taskqueue"
)

type flags struct {
	configPath    string
	dryRun        bool
	tagsOnly      bool
	itemID        string
	limit         int
	batchSize     int
	delaySeconds  float64
	skipRecent    int
	underTagLimit bool
	publishedOnly bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "backfill",
		Short:         "Re-run AI enrichment over existing items",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultConfigPath, "path to YAML config file")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "list target items without vision calls or writes")
	cmd.Flags().BoolVar(&f.tagsOnly, "tags-only", false, "regenerate tags only, leave other content alone")
	cmd.Flags().StringVar(&f.itemID, "prompt-id", "", "process a single prompt item by id")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "cap the number of items processed (0 = no cap)")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 10, "items per batch between pauses")
	cmd.Flags().Float64Var(&f.delaySeconds, "delay", 2.0, "pause between batches in seconds")
	cmd.Flags().IntVar(&f.skipRecent, "skip-recent", 0, "skip items created within the last N days")
	cmd.Flags().BoolVar(&f.underTagLimit, "under-tag-limit", false, "only items with free tag slots")
	cmd.Flags().BoolVar(&f.publishedOnly, "published-only", false, "only published items (implied by full mode)")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "backfill:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	logger, err := nativelog.NewZapLogger()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := database.Connect(cfg, false)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	taxonomySvc := taxonomy.NewService(db, logger)
	if err := taxonomySvc.Seed(ctx); err != nil {
		return fmt.Errorf("taxonomy seed: %w", err)
	}

	visionClient, err := vision.NewClient(cfg.Vision)
	if err != nil {
		return fmt.Errorf("vision: %w", err)
	}

	mediaSvc := media.NewService(db, logger, cfg.Media)
	var renamer enrichment.MediaRenamer
	if mediaSvc.Enabled() {
		renamer = mediaSvc
	}

	enrichSvc := enrichment.NewService(
		db, rc, logger, cfg,
		taxonomySvc, visionClient,
		imagefetch.New(cfg.Fetcher),
		taskqueue.NewService(rc),
		renamer,
	)

	if !f.dryRun {
		if err := enrichSvc.TestConnection(ctx); err != nil {
			return fmt.Errorf("vision connection check: %w", err)
		}
	}

	runner := backfill.NewRunner(db, logger, enrichSvc)
	summary, err := runner.Run(ctx, backfill.Options{
		TagsOnly:       f.tagsOnly,
		DryRun:         f.dryRun,
		ItemID:         f.itemID,
		Limit:          f.limit,
		BatchSize:      f.batchSize,
		Delay:          time.Duration(f.delaySeconds * float64(time.Second)),
		SkipRecentDays: f.skipRecent,
		PublishedOnly:  f.publishedOnly,
		UnderTagLimit:  f.underTagLimit,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("run ended early", zap.Error(err))
	}

	fmt.Println(summary.String())
	return nil
}
