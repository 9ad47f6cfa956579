// Package enrichment runs the two vision passes over gallery items:
// Pass 1 writes initial title, description, slug, tags, categories and
// descriptors from the image; Pass 2 reviews tags and description quality
// on published items. All item mutations happen in single transactions.
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptfinder/core/internal/config"
	"github.com/promptfinder/core/internal/models"
	"github.com/promptfinder/core/internal/modules/content/taxonomy"
	"github.com/promptfinder/core/internal/modules/processing/vision"
	"github.com/promptfinder/core/internal/pkg/imagefetch"
	redisc "github.com/promptfinder/core/internal/pkg/redis"
	"github.com/promptfinder/core/internal/pkg/taskqueue"
)

type Service struct {
	db      *gorm.DB
	rc      *redisc.Client
	log     *zap.Logger
	cfg     *config.AppConfig
	tax     *taxonomy.Service
	vision  vision.Client
	fetcher *imagefetch.Fetcher
	tasks   *taskqueue.Service
	renamer MediaRenamer
}

func NewService(
	db *gorm.DB,
	rc *redisc.Client,
	log *zap.Logger,
	cfg *config.AppConfig,
	tax *taxonomy.Service,
	visionClient vision.Client,
	fetcher *imagefetch.Fetcher,
	tasks *taskqueue.Service,
	renamer MediaRenamer,
) *Service {
	return &Service{
		db:      db,
		rc:      rc,
		log:     log.Named("enrichment"),
		cfg:     cfg,
		tax:     tax,
		vision:  visionClient,
		fetcher: fetcher,
		tasks:   tasks,
		renamer: renamer,
	}
}

// TestConnection proxies the vision client's credential check.
func (s *Service) TestConnection(ctx context.Context) error {
	return s.vision.TestConnection(ctx)
}

func (s *Service) loadItem(ctx context.Context, itemID string) (*models.ItemModel, error) {
	var item models.ItemModel
	err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// currentTags returns the item's tag names in stored position order.
func (s *Service) currentTags(ctx context.Context, itemID string) ([]string, error) {
	var rows []models.ItemTagModel
	err := s.db.WithContext(ctx).
		Preload("Tag").
		Where("item_id = ?", itemID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Tag != nil {
			names = append(names, r.Tag.Name)
		}
	}
	return names, nil
}

func (s *Service) currentCategoryNames(ctx context.Context, itemID string) ([]string, error) {
	var rows []models.ItemCategoryModel
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("item_id = ?", itemID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Category != nil {
			names = append(names, r.Category.Name)
		}
	}
	return names, nil
}

func (s *Service) currentDescriptors(ctx context.Context, itemID string) ([]models.DescriptorModel, error) {
	var rows []models.ItemDescriptorModel
	err := s.db.WithContext(ctx).
		Preload("Descriptor").
		Where("item_id = ?", itemID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.DescriptorModel, 0, len(rows))
	for _, r := range rows {
		if r.Descriptor != nil {
			out = append(out, *r.Descriptor)
		}
	}
	return out, nil
}

// replaceTags swaps the item's tag set inside tx, creating missing tag
// rows. Position records validator output order, which downstream readers
// rely on.
func replaceTags(tx *gorm.DB, itemID string, names []string) error {
	if err := tx.Where("item_id = ?", itemID).Delete(&models.ItemTagModel{}).Error; err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	for i, name := range names {
		tag := models.TagModel{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return fmt.Errorf("get or create tag %q: %w", name, err)
		}
		row := models.ItemTagModel{ItemID: itemID, TagID: tag.ID, Position: i}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("attach tag %q: %w", name, err)
		}
	}
	return nil
}

func replaceCategories(tx *gorm.DB, itemID string, categories []models.CategoryModel) error {
	if err := tx.Where("item_id = ?", itemID).Delete(&models.ItemCategoryModel{}).Error; err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for _, c := range categories {
		row := models.ItemCategoryModel{ItemID: itemID, CategoryID: c.ID}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("attach category %q: %w", c.Name, err)
		}
	}
	return nil
}

func replaceDescriptors(tx *gorm.DB, itemID string, descriptors []models.DescriptorModel) error {
	if err := tx.Where("item_id = ?", itemID).Delete(&models.ItemDescriptorModel{}).Error; err != nil {
		return fmt.Errorf("clear descriptors: %w", err)
	}
	for _, d := range descriptors {
		row := models.ItemDescriptorModel{ItemID: itemID, DescriptorID: d.ID}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("attach descriptor %q: %w", d.Name, err)
		}
	}
	return nil
}

// uniqueSlug finds a free slug starting from base, trying numeric suffixes
// -1..-100 before falling back to a Unix timestamp. The lookup is unscoped:
// soft-deleted rows still hold their slug in the unique index, so they
// count as taken.
func uniqueSlug(tx *gorm.DB, itemID, base string) (string, error) {
	if base == "" {
		base = "untitled"
	}
	candidate := base
	for i := 1; i <= 100; i++ {
		var n int64
		err := tx.Unscoped().Model(&models.ItemModel{}).
			Where("slug = ? AND id <> ?", candidate, itemID).
			Count(&n).Error
		if err != nil {
			return "", fmt.Errorf("slug lookup: %w", err)
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%d", base, time.Now().Unix()), nil
}

// slugTxAttempts bounds retries when a concurrent writer claims a slug
// between the uniqueness lookup and the item update.
const slugTxAttempts = 3

// runSlugTransaction runs fn in a transaction and reruns it on a unique-key
// violation, so a slug lost to a racing writer advances to the next suffix
// instead of failing the pass.
func (s *Service) runSlugTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= slugTxAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(fn)
		if err == nil || !isDuplicateKey(err) {
			return err
		}
		s.log.Warn("slug taken by concurrent writer, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// Analysis cache (spec: moderation short-TTL store). Pass 1 output is
// cached per item so the moderation-time vision call is not repeated when
// the enrichment job runs shortly after.
const analysisCachePrefix = "pf:enrich:audit:"

type cachedAnalysis struct {
	Result vision.Pass1Result `json:"result"`
}

func (s *Service) analysisFromCache(ctx context.Context, itemID string) (vision.Pass1Result, bool) {
	raw, err := s.rc.Get(ctx, analysisCachePrefix+itemID)
	if err != nil || raw == "" {
		return vision.Pass1Result{}, false
	}
	var c cachedAnalysis
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return vision.Pass1Result{}, false
	}
	return c.Result, true
}

func (s *Service) cacheAnalysis(ctx context.Context, itemID string, result vision.Pass1Result) {
	ttl := time.Duration(s.cfg.Pipeline.NSFWCacheTTLSeconds) * time.Second
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(cachedAnalysis{Result: result})
	if err != nil {
		return
	}
	if err := s.rc.Set(ctx, analysisCachePrefix+itemID, data, ttl); err != nil {
		s.log.Warn("analysis cache write failed", zap.String("item_id", itemID), zap.Error(err))
	}
}

func (s *Service) dropAnalysisCache(ctx context.Context, itemID string) {
	_ = s.rc.Del(ctx, analysisCachePrefix+itemID)
}
