// Package related ranks published items by taxonomy similarity to a
// source item. Weights are IDF-derived per call; the whole computation
// runs on a bounded number of queries regardless of pool size.
package related

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/config"
	"github.com/promptfinder/core/internal/models"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
	cfg *config.AppConfig
}

func NewService(db *gorm.DB, log *zap.Logger, cfg *config.AppConfig) *Service {
	return &Service{db: db, log: log.Named("related"), cfg: cfg}
}

func (s *Service) limit() int {
	if s.cfg.Pipeline.RelatedLimit > 0 {
		return s.cfg.Pipeline.RelatedLimit
	}
	return 60
}

func (s *Service) candidateCap() int {
	if s.cfg.Pipeline.RelatedCandidateCap > 0 {
		return s.cfg.Pipeline.RelatedCandidateCap
	}
	return 500
}

func (s *Service) threshold() float64 {
	if s.cfg.Pipeline.StopWordThreshold > 0 {
		return s.cfg.Pipeline.StopWordThreshold
	}
	return 0.25
}

var ErrItemNotFound = errors.New("item not found")

// Related returns up to limit published items ranked by similarity to the
// source. Weights are recomputed per call; caching them across calls would
// go stale as backfill rewrites tag sets.
func (s *Service) Related(ctx context.Context, itemID string, limit int) ([]models.ItemModel, error) {
	if limit <= 0 || limit > s.limit() {
		limit = s.limit()
	}
	db := s.db.WithContext(ctx)

	var source models.ItemModel
	if err := db.First(&source, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	src := sourceProfile{
		ID:       source.ID,
		Platform: source.Platform,
		Likes:    source.LikeCount,
	}
	if err := db.Model(&models.ItemTagModel{}).
		Where("item_id = ?", source.ID).Pluck("tag_id", &src.Tags).Error; err != nil {
		return nil, fmt.Errorf("load source tags: %w", err)
	}
	if err := db.Model(&models.ItemCategoryModel{}).
		Where("item_id = ?", source.ID).Pluck("category_id", &src.Categories).Error; err != nil {
		return nil, fmt.Errorf("load source categories: %w", err)
	}
	if err := db.Model(&models.ItemDescriptorModel{}).
		Where("item_id = ?", source.ID).Pluck("descriptor_id", &src.Descriptors).Error; err != nil {
		return nil, fmt.Errorf("load source descriptors: %w", err)
	}

	items, err := s.candidatePool(ctx, src)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.ItemModel{}, nil
	}

	candidates, err := s.resolveMemberships(ctx, items)
	if err != nil {
		return nil, err
	}

	var totalPublished int64
	if err := db.Model(&models.ItemModel{}).
		Where("status = ?", models.StatusPublished).
		Count(&totalPublished).Error; err != nil {
		return nil, fmt.Errorf("count published items: %w", err)
	}

	tagWeights, err := s.weightsFor(ctx, &models.ItemTagModel{}, "tag_id", src.Tags, totalPublished)
	if err != nil {
		return nil, err
	}
	categoryWeights, err := s.weightsFor(ctx, &models.ItemCategoryModel{}, "category_id", src.Categories, totalPublished)
	if err != nil {
		return nil, err
	}
	descriptorWeights, err := s.weightsFor(ctx, &models.ItemDescriptorModel{}, "descriptor_id", src.Descriptors, totalPublished)
	if err != nil {
		return nil, err
	}

	ranked := rank(src, candidates, tagWeights, categoryWeights, descriptorWeights, time.Now())
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	byID := make(map[string]models.ItemModel, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]models.ItemModel, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, byID[r.ID])
	}
	return out, nil
}

// candidatePool loads published items sharing at least one tag, category
// or descriptor with the source, falling back to same-platform items when
// the source has no taxonomy at all. Capped at the most recent N.
func (s *Service) candidatePool(ctx context.Context, src sourceProfile) ([]models.ItemModel, error) {
	db := s.db.WithContext(ctx)

	idSet := make(map[string]bool)
	collect := func(model any, column string, values []string) error {
		if len(values) == 0 {
			return nil
		}
		var ids []string
		if err := db.Model(model).
			Where(column+" IN ?", values).
			Distinct().
			Pluck("item_id", &ids).Error; err != nil {
			return fmt.Errorf("candidate lookup on %s: %w", column, err)
		}
		for _, id := range ids {
			idSet[id] = true
		}
		return nil
	}
	if err := collect(&models.ItemTagModel{}, "tag_id", src.Tags); err != nil {
		return nil, err
	}
	if err := collect(&models.ItemCategoryModel{}, "category_id", src.Categories); err != nil {
		return nil, err
	}
	if err := collect(&models.ItemDescriptorModel{}, "descriptor_id", src.Descriptors); err != nil {
		return nil, err
	}
	delete(idSet, src.ID)

	query := db.Where("status = ?", models.StatusPublished).Where("id <> ?", src.ID)
	if len(idSet) > 0 {
		ids := make([]string, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		query = query.Where("id IN ?", ids)
	} else if src.Platform != "" {
		query = query.Where("platform = ?", src.Platform)
	} else {
		return nil, nil
	}

	var items []models.ItemModel
	if err := query.Order("created_at DESC").Limit(s.candidateCap()).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	return items, nil
}

// resolveMemberships loads all taxonomy joins for the pool in three
// queries and builds the in-memory sets scoring works on.
func (s *Service) resolveMemberships(ctx context.Context, items []models.ItemModel) ([]candidate, error) {
	db := s.db.WithContext(ctx)
	ids := make([]string, len(items))
	index := make(map[string]int, len(items))
	candidates := make([]candidate, len(items))
	for i, it := range items {
		ids[i] = it.ID
		index[it.ID] = i
		candidates[i] = candidate{
			ID:          it.ID,
			Platform:    it.Platform,
			Likes:       it.LikeCount,
			CreatedAt:   it.CreatedAt,
			Tags:        make(map[string]bool),
			Categories:  make(map[string]bool),
			Descriptors: make(map[string]bool),
		}
	}

	var tagRows []models.ItemTagModel
	if err := db.Where("item_id IN ?", ids).Find(&tagRows).Error; err != nil {
		return nil, fmt.Errorf("load candidate tags: %w", err)
	}
	for _, r := range tagRows {
		if i, ok := index[r.ItemID]; ok {
			candidates[i].Tags[r.TagID] = true
		}
	}

	var catRows []models.ItemCategoryModel
	if err := db.Where("item_id IN ?", ids).Find(&catRows).Error; err != nil {
		return nil, fmt.Errorf("load candidate categories: %w", err)
	}
	for _, r := range catRows {
		if i, ok := index[r.ItemID]; ok {
			candidates[i].Categories[r.CategoryID] = true
		}
	}

	var descRows []models.ItemDescriptorModel
	if err := db.Where("item_id IN ?", ids).Find(&descRows).Error; err != nil {
		return nil, fmt.Errorf("load candidate descriptors: %w", err)
	}
	for _, r := range descRows {
		if i, ok := index[r.ItemID]; ok {
			candidates[i].Descriptors[r.DescriptorID] = true
		}
	}
	return candidates, nil
}

// weightsFor counts how many published items reference each source
// taxonomy entry, then converts counts to IDF weights.
func (s *Service) weightsFor(ctx context.Context, model any, column string, ids []string, totalPublished int64) (map[string]float64, error) {
	usage := make(map[string]int, len(ids))
	for _, id := range ids {
		usage[id] = 0
	}
	if len(ids) > 0 {
		type usageRow struct {
			ID string
			N  int
		}
		var rows []usageRow
		err := s.db.WithContext(ctx).Model(model).
			Select(column+" AS id, COUNT(DISTINCT item_id) AS n").
			Where(column+" IN ?", ids).
			Group(column).
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("usage counts for %s: %w", column, err)
		}
		for _, r := range rows {
			usage[r.ID] = r.N
		}
	}
	return idfWeights(usage, totalPublished, s.threshold()), nil
}
