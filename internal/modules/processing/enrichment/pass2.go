package enrichment

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/models"
	"github.com/promptfinder/core/internal/modules/processing/tags"
	"github.com/promptfinder/core/internal/modules/processing/vision"
	"github.com/promptfinder/core/internal/pkg/seo"
	"github.com/promptfinder/core/internal/pkg/taskqueue"
)

// minImprovedDescriptionLen guards against the model "improving" a
// description down to a fragment.
const minImprovedDescriptionLen = 50

func (s *Service) pass2Cooldown() time.Duration {
	if s.cfg.Pipeline.Pass2CooldownSeconds > 0 {
		return time.Duration(s.cfg.Pipeline.Pass2CooldownSeconds) * time.Second
	}
	return 5 * time.Minute
}

func (s *Service) underCooldown(item *models.ItemModel) bool {
	return item.SeoPass2At != nil && time.Since(*item.SeoPass2At) < s.pass2Cooldown()
}

// RunPass2 reviews a published item's tags and description against its
// image. It refines, never reclassifies: categories, descriptors, slug and
// title are untouched.
func (s *Service) RunPass2(ctx context.Context, itemID string) Result {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		s.log.Error("pass2 load failed", zap.String("item_id", itemID), zap.Error(err))
		return failed(itemID, ReasonNotFound)
	}
	if item == nil {
		return failed(itemID, ReasonNotFound)
	}
	if !item.IsPublished() {
		return skipped(itemID, ReasonNotPublished)
	}
	if s.underCooldown(item) {
		return skipped(itemID, ReasonRecentlyReviewed)
	}
	mediaURL := item.MediaURL()
	if mediaURL == "" {
		return skipped(itemID, ReasonNoImage)
	}

	currentTags, err := s.currentTags(ctx, item.ID)
	if err != nil {
		s.log.Error("pass2 tag load failed", zap.String("item_id", itemID), zap.Error(err))
		return failed(itemID, ReasonNotFound)
	}
	categoryNames, err := s.currentCategoryNames(ctx, item.ID)
	if err != nil {
		return failed(itemID, ReasonNotFound)
	}
	descriptors, err := s.currentDescriptors(ctx, item.ID)
	if err != nil {
		return failed(itemID, ReasonNotFound)
	}
	descriptorNames := make([]string, len(descriptors))
	for i, d := range descriptors {
		descriptorNames[i] = d.Name
	}

	img, err := s.fetcher.Fetch(ctx, mediaURL)
	if err != nil {
		s.log.Warn("pass2 image fetch failed",
			zap.String("item_id", itemID),
			zap.String("url", mediaURL),
			zap.Error(err),
		)
		return failed(itemID, ReasonDownloadFailed)
	}

	prompt := vision.BuildPass2Prompt(vision.Pass2Context{
		Title:       item.Title,
		Description: item.Description,
		Tags:        currentTags,
		Categories:  categoryNames,
		Descriptors: descriptorNames,
	})
	model := s.cfg.Vision.Pass2Model
	if model == "" {
		model = s.cfg.Vision.Model
	}
	text, err := s.vision.AnalyzeImage(ctx, img, prompt, model)
	if err != nil {
		s.log.Warn("pass2 vision call failed", zap.String("item_id", itemID), zap.Error(err))
		return failed(itemID, ReasonAPIError)
	}
	review, err := vision.ParsePass2(text)
	if err != nil {
		s.log.Warn("pass2 response unparseable", zap.String("item_id", itemID), zap.Error(err))
		return failed(itemID, ReasonBadResponse)
	}

	finalTags := s.reviewedTags(item.ID, currentTags, review)
	if ok, reason := IsQualityTagResponse(finalTags, descriptorNames); !ok {
		s.log.Warn("pass2 review rejected by quality gate",
			zap.String("item_id", itemID),
			zap.String("reason", reason),
			zap.Strings("tags", finalTags),
		)
		return failed(itemID, ReasonQuality)
	}

	var updated []string
	tagsChanged := !slices.Equal(finalTags, currentTags)

	newDescription := ""
	if review.NeedsImprovement() {
		improved := seo.SanitizeText(review.ImprovedDescription, seo.MaxDescriptionLength)
		if len(improved) >= minImprovedDescriptionLen {
			newDescription = improved
		}
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tagsChanged {
			if err := replaceTags(tx, item.ID, finalTags); err != nil {
				return err
			}
		}
		updates := map[string]any{"seo_pass2_at": now, "needs_seo_review": false}
		if newDescription != "" {
			updates["description"] = newDescription
		}
		return tx.Model(item).Updates(updates).Error
	})
	if err != nil {
		s.log.Error("pass2 transaction failed", zap.String("item_id", itemID), zap.Error(err))
		return failed(itemID, "persist_failed")
	}

	if tagsChanged {
		updated = append(updated, "tags")
	}
	if newDescription != "" {
		updated = append(updated, "description")
	}
	s.log.Info("pass2 complete",
		zap.String("item_id", itemID),
		zap.Strings("updated", updated),
		zap.String("reasoning", review.Reasoning),
	)
	return succeeded(itemID, updated...)
}

// reviewedTags merges the model's keep+add lists through the validator and
// restores any protected tag the review tried to drop. Protected tags go
// first so the cap cannot push them out.
func (s *Service) reviewedTags(itemID string, currentTags []string, review vision.Pass2Result) []string {
	proposed := review.FinalTags()

	var restored []string
	for _, t := range currentTags {
		if tags.IsProtected(t) && !slices.Contains(proposed, t) {
			restored = append(restored, t)
		}
	}
	if len(restored) > 0 {
		s.log.Info("protected tags kept despite removal",
			zap.String("item_id", itemID),
			zap.Strings("tags", restored),
		)
	}
	return tags.ValidateAndFix(append(restored, proposed...), itemID, s.log)
}

// QueuePass2 enqueues a delayed review for the item. Returns false when
// the item is not eligible (unpublished, missing, or inside the cooldown);
// queueing failures are logged and swallowed because Pass 2 is advisory.
func (s *Service) QueuePass2(ctx context.Context, itemID string) bool {
	item, err := s.loadItem(ctx, itemID)
	if err != nil || item == nil {
		return false
	}
	if !item.IsPublished() || s.underCooldown(item) {
		return false
	}

	task, err := s.tasks.Enqueue(ctx, TaskTypePass2, taskPayload{ItemID: itemID}, itemID, itemID)
	if err != nil {
		s.log.Warn("pass2 enqueue failed", zap.String("item_id", itemID), zap.Error(err))
		return false
	}
	if task.Status == taskqueue.TaskPending {
		go s.executePass2(context.Background(), task.ID, itemID)
	}
	return true
}
