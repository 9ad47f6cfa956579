package enrichment

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/models"
	"github.com/promptfinder/core/internal/modules/content/taxonomy"
	"github.com/promptfinder/core/internal/modules/processing/tags"
	"github.com/promptfinder/core/internal/modules/processing/vision"
	"github.com/promptfinder/core/internal/pkg/seo"
)

// fallbackTags replaces model output when the vision call cannot run.
// Deliberately free of ai-* tags.
var fallbackTags = []string{"digital-art", "artwork", "creative"}

// RunPass1 analyzes the item's image and writes the initial content set:
// title, description, slug, tags, categories and descriptors. When the
// image or the model is unavailable it falls back to generic platform
// content and flags the item for review. One shot per upload; retries go
// through the backfill command.
func (s *Service) RunPass1(ctx context.Context, itemID string) Result {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		s.log.Error("pass1 load failed", zap.String("item_id", itemID), zap.Error(err))
		return failed(itemID, ReasonNotFound)
	}
	if item == nil {
		return failed(itemID, ReasonNotFound)
	}

	mediaURL := item.MediaURL()
	if mediaURL == "" {
		s.log.Warn("pass1 item has no media", zap.String("item_id", itemID))
		return s.applyFallback(ctx, item, ReasonNoImage)
	}

	result, cached := s.analysisFromCache(ctx, item.ID)
	if !cached {
		img, err := s.fetcher.Fetch(ctx, mediaURL)
		if err != nil {
			s.log.Warn("pass1 image fetch failed",
				zap.String("item_id", itemID),
				zap.String("url", mediaURL),
				zap.Error(err),
			)
			return s.applyFallback(ctx, item, ReasonDownloadFailed)
		}

		prompt := vision.BuildPass1Prompt(
			s.tax.CategoryNames(),
			s.tax.DescriptorNamesByType(),
			taxonomy.PlatformDisplayName(item.Platform),
			item.Content,
		)
		text, err := s.vision.AnalyzeImage(ctx, img, prompt, s.cfg.Vision.Model)
		if err != nil {
			s.log.Warn("pass1 vision call failed", zap.String("item_id", itemID), zap.Error(err))
			return s.applyFallback(ctx, item, ReasonAPIError)
		}
		result, err = vision.ParsePass1(text)
		if err != nil {
			s.log.Warn("pass1 response unparseable", zap.String("item_id", itemID), zap.Error(err))
			return s.applyFallback(ctx, item, ReasonBadResponse)
		}
		s.cacheAnalysis(ctx, item.ID, result)
	}

	if result.NSFW {
		s.log.Warn("pass1 flagged item as nsfw", zap.String("item_id", itemID))
	}

	return s.applyPass1(ctx, item, result)
}

// applyPass1 persists a parsed analysis in one transaction. Categories and
// descriptors pass through the taxonomy intersection; anything the model
// invented is dropped and logged, never stored.
func (s *Service) applyPass1(ctx context.Context, item *models.ItemModel, result vision.Pass1Result) Result {
	title := seo.SanitizeText(result.Title, seo.MaxTitleLength)
	if title == "" {
		title = fallbackTitle(item.Platform)
	}
	description := seo.SanitizeText(result.Description, seo.MaxDescriptionLength)

	finalTags := tags.ValidateAndFix(result.Tags, item.ID, s.log)

	matchedCats, unknownCats := s.tax.MatchCategories(result.Categories)
	if len(matchedCats) > 5 {
		matchedCats = matchedCats[:5]
	}
	for _, name := range unknownCats {
		s.log.Warn("dropped hallucinated category",
			zap.String("item_id", item.ID),
			zap.String("name", name),
		)
	}
	matchedDescs, unknownDescs := s.tax.MatchDescriptors(result.AllDescriptorNames())
	for _, name := range unknownDescs {
		s.log.Warn("dropped hallucinated descriptor",
			zap.String("item_id", item.ID),
			zap.String("name", name),
		)
	}

	needsReview := result.NSFW
	if taxonomy.HasDescriptorType(matchedDescs, models.DescriptorGender) &&
		!taxonomy.HasDescriptorType(matchedDescs, models.DescriptorEthnicity) {
		needsReview = true
	}

	oldSlug := item.Slug
	err := s.runSlugTransaction(ctx, func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, item.ID, seo.Slugify(title))
		if err != nil {
			return err
		}

		updates := map[string]any{
			"title":               title,
			"description":         description,
			"slug":                slug,
			"processing_complete": true,
			"needs_seo_review":    needsReview,
		}
		if err := tx.Model(item).Updates(updates).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		item.Slug = slug

		if oldSlug != "" && oldSlug != slug {
			redirect := models.SlugRedirectModel{Slug: oldSlug, ItemID: item.ID}
			if err := tx.Create(&redirect).Error; err != nil {
				return fmt.Errorf("record slug redirect: %w", err)
			}
		}

		if err := replaceTags(tx, item.ID, finalTags); err != nil {
			return err
		}
		if err := replaceCategories(tx, item.ID, matchedCats); err != nil {
			return err
		}
		return replaceDescriptors(tx, item.ID, matchedDescs)
	})
	if err != nil {
		s.log.Error("pass1 transaction failed", zap.String("item_id", item.ID), zap.Error(err))
		return failed(item.ID, "persist_failed")
	}

	s.log.Info("pass1 complete",
		zap.String("item_id", item.ID),
		zap.String("slug", item.Slug),
		zap.Int("tags", len(finalTags)),
		zap.Int("categories", len(matchedCats)),
		zap.Int("descriptors", len(matchedDescs)),
		zap.Bool("needs_review", needsReview),
	)
	s.dropAnalysisCache(ctx, item.ID)

	s.QueuePass2(ctx, item.ID)
	s.enqueueRename(ctx, item.ID)

	return succeeded(item.ID, "title", "description", "slug", "tags", "categories", "descriptors")
}

// applyFallback writes generic platform content so the item is publishable
// even though analysis failed. The review flag routes it to Pass 2 later.
func (s *Service) applyFallback(ctx context.Context, item *models.ItemModel, reason string) Result {
	title := fallbackTitle(item.Platform)
	description := fmt.Sprintf(
		"An AI-generated artwork created with %s. Explore the full prompt and settings used to create this piece.",
		taxonomy.PlatformDisplayName(item.Platform),
	)

	oldSlug := item.Slug
	err := s.runSlugTransaction(ctx, func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, item.ID, seo.Slugify(title))
		if err != nil {
			return err
		}
		updates := map[string]any{
			"title":               title,
			"description":         description,
			"slug":                slug,
			"processing_complete": true,
			"needs_seo_review":    true,
		}
		if err := tx.Model(item).Updates(updates).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		item.Slug = slug

		if oldSlug != "" && oldSlug != slug {
			redirect := models.SlugRedirectModel{Slug: oldSlug, ItemID: item.ID}
			if err := tx.Create(&redirect).Error; err != nil {
				return fmt.Errorf("record slug redirect: %w", err)
			}
		}
		return replaceTags(tx, item.ID, fallbackTags)
	})
	if err != nil {
		s.log.Error("pass1 fallback transaction failed", zap.String("item_id", item.ID), zap.Error(err))
		return failed(item.ID, "persist_failed")
	}

	s.log.Info("pass1 fallback applied",
		zap.String("item_id", item.ID),
		zap.String("reason", reason),
	)
	return Result{
		ItemID:        item.ID,
		Status:        StatusSuccess,
		Reason:        reason,
		UpdatedFields: []string{"title", "description", "slug", "tags"},
		Fallback:      true,
	}
}

func fallbackTitle(platform string) string {
	return taxonomy.PlatformDisplayName(platform) + " Generated Artwork"
}
