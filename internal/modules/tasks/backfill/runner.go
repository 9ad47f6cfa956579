// Package backfill drives operator-initiated re-enrichment over the
// catalog. It is a batch harness around the enrichment passes: item
// selection, pacing, and accounting live here, content decisions do not.
package backfill

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/models"
	"github.com/promptfinder/core/internal/modules/processing/enrichment"
	"github.com/promptfinder/core/internal/modules/processing/tags"
	"github.com/promptfinder/core/internal/pkg/prettylog"
)

// Options selects which items to process and how fast.
type Options struct {
	// TagsOnly regenerates tags and leaves all other content alone.
	TagsOnly bool
	// DryRun lists what would be processed without vision calls or writes.
	DryRun bool
	// ItemID restricts the run to a single item.
	ItemID string
	// Limit caps the number of items processed; 0 means no cap.
	Limit int
	// BatchSize is the number of items between pacing pauses.
	BatchSize int
	// Delay is the pause between batches.
	Delay time.Duration
	// SkipRecentDays skips items created within the window; 0 disables.
	SkipRecentDays int
	// PublishedOnly filters drafts out. Full mode always implies it.
	PublishedOnly bool
	// UnderTagLimit restricts to items with free tag slots.
	UnderTagLimit bool
}

func (o Options) normalized() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = 10
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	if !o.TagsOnly {
		// Full mode rewrites slugs and descriptions; drafts are excluded
		// so half-uploaded items are never touched.
		o.PublishedOnly = true
	}
	return o
}

// Summary is the final accounting of one run.
type Summary struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

func (s Summary) String() string {
	return fmt.Sprintf("processed=%d updated=%d skipped=%d errors=%d",
		s.Processed, s.Updated, s.Skipped, s.Errors)
}

type Runner struct {
	db     *gorm.DB
	log    *zap.Logger
	enrich *enrichment.Service
}

func NewRunner(db *gorm.DB, log *zap.Logger, enrich *enrichment.Service) *Runner {
	return &Runner{db: db, log: log.Named("backfill"), enrich: enrich}
}

// Run processes the selected items in deterministic created-at order.
// Per-item failures are counted, never fatal; only selection errors and
// context cancellation abort the run, and cancellation waits for the
// in-flight batch to finish.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	opts = opts.normalized()

	ids, err := r.selectItemIDs(ctx, opts)
	if err != nil {
		return Summary{}, err
	}
	r.log.Info("backfill starting",
		zap.Int("items", len(ids)),
		zap.Bool("tags_only", opts.TagsOnly),
		zap.Bool("dry_run", opts.DryRun),
		prettylog.StartField(),
	)

	var summary Summary
	for i, id := range ids {
		if i > 0 && i%opts.BatchSize == 0 {
			if err := ctx.Err(); err != nil {
				r.log.Warn("backfill cancelled between batches", zap.Int("processed", summary.Processed))
				return summary, err
			}
			time.Sleep(opts.Delay)
		}

		summary.Processed++
		if opts.DryRun {
			r.log.Info("dry run, would process", zap.String("item_id", id))
			summary.Skipped++
			continue
		}

		var res enrichment.Result
		if opts.TagsOnly {
			res = r.enrich.RunTagsOnly(ctx, id)
		} else {
			res = r.enrich.RunPass1(ctx, id)
		}
		switch res.Status {
		case enrichment.StatusSuccess:
			summary.Updated++
		case enrichment.StatusSkipped:
			summary.Skipped++
			r.log.Info("item skipped", zap.String("item_id", id), zap.String("reason", res.Reason))
		default:
			summary.Errors++
			r.log.Warn("item failed", zap.String("item_id", id), zap.String("reason", res.Reason))
		}
	}

	r.log.Info("backfill finished", zap.String("summary", summary.String()), prettylog.SuccessField())
	return summary, nil
}

// selectItemIDs resolves the target set up front so iteration stays
// deterministic even while the run rewrites rows.
func (r *Runner) selectItemIDs(ctx context.Context, opts Options) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&models.ItemModel{})

	if opts.ItemID != "" {
		q = q.Where("id = ?", opts.ItemID)
	}
	if opts.PublishedOnly {
		q = q.Where("status = ?", models.StatusPublished)
	}
	if opts.SkipRecentDays > 0 {
		q = q.Where("created_at < ?", recentCutoff(opts.SkipRecentDays, time.Now()))
	}
	if opts.UnderTagLimit {
		q = q.Where(
			"(SELECT COUNT(*) FROM item_tags WHERE item_tags.item_id = items.id) < ?",
			tags.MaxTags,
		)
	}

	q = q.Order("created_at ASC, id ASC")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var ids []string
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	return ids, nil
}

// recentCutoff is the creation time before which items are old enough to
// process when SkipRecentDays is set.
func recentCutoff(days int, now time.Time) time.Time {
	return now.AddDate(0, 0, -days)
}
