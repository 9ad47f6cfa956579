package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/config"
	"github.com/promptfinder/core/internal/models"
	"github.com/promptfinder/core/internal/modules/processing/enrichment"
	pkgcron "github.com/promptfinder/core/internal/pkg/cron"
)

// sweepBatchSize caps how many flagged items one sweep picks up. Anything
// left over is caught by the next interval.
const sweepBatchSize = 50

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, enrichSvc *enrichment.Service, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("cron")

	interval := time.Duration(cfg.Pipeline.SweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	sched.Register(pkgcron.Job{
		Name:        "needs_review_sweep",
		Description: "queue review passes for items flagged by enrichment",
		Interval:    interval,
		Fn: func(ctx context.Context) error {
			var ids []string
			err := db.WithContext(ctx).
				Model(&models.ItemModel{}).
				Where("needs_seo_review = ? AND status = ?", true, models.StatusPublished).
				Order("updated_at ASC").
				Limit(sweepBatchSize).
				Pluck("id", &ids).Error
			if err != nil {
				cronLogger.Warn("needs-review sweep query failed", zap.Error(err))
				return err
			}

			queued := 0
			for _, id := range ids {
				if enrichSvc.QueuePass2(ctx, id) {
					queued++
				}
			}
			if len(ids) > 0 {
				cronLogger.Info("needs-review sweep finished",
					zap.Int("flagged", len(ids)),
					zap.Int("queued", queued),
				)
			}
			return nil
		},
	})
}
