// Package taxonomy owns the closed category and descriptor vocabularies.
// The full vocabulary is small and read-heavy, so the service keeps an
// in-memory snapshot and refreshes it after seeding.
package taxonomy

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/promptfinder/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	mu       sync.RWMutex
	snapshot snapshot
}

type snapshot struct {
	categories  []models.CategoryModel
	descriptors []models.DescriptorModel

	categoryByKey   map[string]*models.CategoryModel
	descriptorByKey map[string]*models.DescriptorModel
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("taxonomy")}
}

// Seed inserts any missing categories and descriptors, then loads the
// snapshot. Existing rows are left untouched, so reseeding is idempotent.
func (s *Service) Seed(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	for _, c := range categorySeeds {
		row := models.CategoryModel{
			Name:         c.Name,
			Slug:         c.Slug,
			Description:  c.Description,
			DisplayOrder: c.DisplayOrder,
		}
		if err := db.Where("slug = ?", c.Slug).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", c.Slug, err)
		}
	}

	for _, d := range descriptorSeeds {
		row := models.DescriptorModel{Name: d.Name, Slug: d.Slug, Type: d.Type}
		if err := db.Where("name = ?", d.Name).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed descriptor %q: %w", d.Name, err)
		}
	}

	return s.Refresh(ctx)
}

// Refresh reloads the in-memory snapshot from the database.
func (s *Service) Refresh(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	var categories []models.CategoryModel
	if err := db.Order("display_order ASC").Find(&categories).Error; err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	var descriptors []models.DescriptorModel
	if err := db.Order("type ASC, name ASC").Find(&descriptors).Error; err != nil {
		return fmt.Errorf("load descriptors: %w", err)
	}

	snap := snapshot{
		categories:      categories,
		descriptors:     descriptors,
		categoryByKey:   make(map[string]*models.CategoryModel, len(categories)*2),
		descriptorByKey: make(map[string]*models.DescriptorModel, len(descriptors)*2),
	}
	for i := range categories {
		c := &categories[i]
		snap.categoryByKey[matchKey(c.Name)] = c
		snap.categoryByKey[matchKey(c.Slug)] = c
	}
	for i := range descriptors {
		d := &descriptors[i]
		snap.descriptorByKey[matchKey(d.Name)] = d
		snap.descriptorByKey[matchKey(d.Slug)] = d
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.log.Info("taxonomy snapshot loaded",
		zap.Int("categories", len(categories)),
		zap.Int("descriptors", len(descriptors)),
	)
	return nil
}

// matchKey folds a name or slug into a comparable key so model output like
// "sci-fi & futuristic" still matches "Sci-Fi & Futuristic".
func matchKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("'", "", ".", "").Replace(s)
	var b strings.Builder
	b.Grow(len(s))
	lastSep := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSep = false
		default:
			if !lastSep {
				b.WriteByte('-')
				lastSep = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Categories returns the snapshot category list in display order.
func (s *Service) Categories() []models.CategoryModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.categories
}

// Descriptors returns the snapshot descriptor list.
func (s *Service) Descriptors() []models.DescriptorModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.descriptors
}

// CategoryNames returns all canonical category names, for prompt building.
func (s *Service) CategoryNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.snapshot.categories))
	for i, c := range s.snapshot.categories {
		names[i] = c.Name
	}
	return names
}

// DescriptorNamesByType groups canonical descriptor names by type, for
// prompt building.
func (s *Service) DescriptorNamesByType() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string)
	for _, d := range s.snapshot.descriptors {
		out[d.Type] = append(out[d.Type], d.Name)
	}
	return out
}

// MatchCategories resolves model-produced category names against the closed
// vocabulary. Unknown names are returned separately so callers can log the
// hallucinations; they never reach the database.
func (s *Service) MatchCategories(names []string) (matched []models.CategoryModel, unknown []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := matchKey(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if c, ok := s.snapshot.categoryByKey[key]; ok {
			matched = append(matched, *c)
		} else {
			unknown = append(unknown, n)
		}
	}
	return matched, unknown
}

// MatchDescriptors resolves model-produced descriptor names against the
// closed vocabulary.
func (s *Service) MatchDescriptors(names []string) (matched []models.DescriptorModel, unknown []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := matchKey(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if d, ok := s.snapshot.descriptorByKey[key]; ok {
			matched = append(matched, *d)
		} else {
			unknown = append(unknown, n)
		}
	}
	return matched, unknown
}

// HasDescriptorType reports whether any matched descriptor carries the
// given type. Used to detect gender descriptors without ethnicity.
func HasDescriptorType(descriptors []models.DescriptorModel, descriptorType string) bool {
	for _, d := range descriptors {
		if d.Type == descriptorType {
			return true
		}
	}
	return false
}
