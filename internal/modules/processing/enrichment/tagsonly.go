package enrichment

import (
	"context"
	"slices"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/modules/content/taxonomy"
	"github.com/promptfinder/core/internal/modules/processing/tags"
	"github.com/promptfinder/core/internal/modules/processing/vision"
)

// RunTagsOnly regenerates an item's tag set from its image and nothing
// else. Title, description, slug, categories and descriptors are
// untouched, which makes it safe to run over the whole catalog to fill
// free tag slots.
func (s *Service) RunTagsOnly(ctx context.Context, itemID string) Result {
	item, err := s.loadItem(ctx, itemID)
	if err != nil || item == nil {
		return failed(itemID, ReasonNotFound)
	}
	mediaURL := item.MediaURL()
	if mediaURL == "" {
		return skipped(itemID, ReasonNoImage)
	}

	result, cached := s.analysisFromCache(ctx, item.ID)
	if !cached {
		img, err := s.fetcher.Fetch(ctx, mediaURL)
		if err != nil {
			s.log.Warn("tags-only image fetch failed",
				zap.String("item_id", itemID),
				zap.Error(err),
			)
			return failed(itemID, ReasonDownloadFailed)
		}
		prompt := vision.BuildPass1Prompt(
			s.tax.CategoryNames(),
			s.tax.DescriptorNamesByType(),
			taxonomy.PlatformDisplayName(item.Platform),
			item.Content,
		)
		text, err := s.vision.AnalyzeImage(ctx, img, prompt, s.cfg.Vision.Model)
		if err != nil {
			s.log.Warn("tags-only vision call failed", zap.String("item_id", itemID), zap.Error(err))
			return failed(itemID, ReasonAPIError)
		}
		result, err = vision.ParsePass1(text)
		if err != nil {
			return failed(itemID, ReasonBadResponse)
		}
		s.cacheAnalysis(ctx, item.ID, result)
	}

	finalTags := tags.ValidateAndFix(result.Tags, item.ID, s.log)
	if len(finalTags) == 0 {
		return skipped(itemID, ReasonQuality)
	}

	current, err := s.currentTags(ctx, item.ID)
	if err != nil {
		return failed(itemID, ReasonNotFound)
	}
	if slices.Equal(finalTags, current) {
		return skipped(itemID, "unchanged")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceTags(tx, item.ID, finalTags)
	})
	if err != nil {
		s.log.Error("tags-only transaction failed", zap.String("item_id", itemID), zap.Error(err))
		return failed(itemID, "persist_failed")
	}
	s.dropAnalysisCache(ctx, item.ID)
	return succeeded(itemID, "tags")
}
