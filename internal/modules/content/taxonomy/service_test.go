package taxonomy

import (
	"testing"

	"github.com/promptfinder/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSeedVocabularySizes(t *testing.T) {
	assert.Len(t, categorySeeds, 46)
	assert.Len(t, descriptorSeeds, 109)

	counts := map[string]int{}
	for _, d := range descriptorSeeds {
		counts[d.Type]++
	}
	assert.Equal(t, map[string]int{
		models.DescriptorGender:     3,
		models.DescriptorEthnicity:  11,
		models.DescriptorAge:        6,
		models.DescriptorFeatures:   17,
		models.DescriptorProfession: 17,
		models.DescriptorMood:       15,
		models.DescriptorColor:      10,
		models.DescriptorHoliday:    17,
		models.DescriptorSeason:     4,
		models.DescriptorSetting:    9,
	}, counts)
}

func TestSeedSlugsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range categorySeeds {
		assert.False(t, seen[c.Slug], "duplicate category slug %q", c.Slug)
		seen[c.Slug] = true
	}
}

func TestMatchKey(t *testing.T) {
	assert.Equal(t, "sci-fi-futuristic", matchKey("Sci-Fi & Futuristic"))
	assert.Equal(t, "sci-fi-futuristic", matchKey("sci-fi-futuristic"))
	assert.Equal(t, "valentines-day", matchKey("Valentine's Day"))
	assert.Equal(t, "dark-moody", matchKey("  Dark & Moody  "))
	assert.Equal(t, "", matchKey("&&"))
}

func TestHasDescriptorType(t *testing.T) {
	ds := []models.DescriptorModel{
		{Name: "Female", Type: models.DescriptorGender},
		{Name: "Cinematic", Type: models.DescriptorMood},
	}
	assert.True(t, HasDescriptorType(ds, models.DescriptorGender))
	assert.False(t, HasDescriptorType(ds, models.DescriptorEthnicity))
}
