package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityGateTooFewTags(t *testing.T) {
	ok, reason := IsQualityTagResponse([]string{"cyberpunk", "neon"}, nil)
	assert.False(t, ok)
	assert.Equal(t, "too_few_tags", reason)

	ok, reason = IsQualityTagResponse(nil, nil)
	assert.False(t, ok)
	assert.Equal(t, "too_few_tags", reason)
}

func TestQualityGateAllGeneric(t *testing.T) {
	ok, reason := IsQualityTagResponse([]string{"art", "design", "photo"}, nil)
	assert.False(t, ok)
	assert.Equal(t, "all_generic", reason)

	// Plural forms count as generic too.
	ok, reason = IsQualityTagResponse([]string{"portraits", "landscapes", "image"}, nil)
	assert.False(t, ok)
	assert.Equal(t, "all_generic", reason)
}

func TestQualityGateOneSpecificTagPasses(t *testing.T) {
	ok, reason := IsQualityTagResponse([]string{"art", "design", "cyberpunk"}, nil)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestQualityGateDescriptorOverlap(t *testing.T) {
	// "photograph" shares a prefix with descriptor token "photography".
	ok, _ := IsQualityTagResponse(
		[]string{"photograph", "golden-hour", "woman"},
		[]string{"Photography Style", "Female"},
	)
	assert.True(t, ok)

	// Compound tag tokens participate individually.
	ok, _ = IsQualityTagResponse(
		[]string{"dramatic-lighting", "cyberpunk", "neon"},
		[]string{"Dramatic"},
	)
	assert.True(t, ok)

	ok, reason := IsQualityTagResponse(
		[]string{"cyberpunk", "spaceship", "nebula"},
		[]string{"Female", "Cozy"},
	)
	assert.False(t, ok)
	assert.Equal(t, "no_descriptor_overlap", reason)
}

func TestQualityGateSkipsOverlapWithoutDescriptors(t *testing.T) {
	ok, reason := IsQualityTagResponse([]string{"cyberpunk", "spaceship", "nebula"}, nil)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestQualityGateShortTokensIgnored(t *testing.T) {
	// Two-character tokens never count as overlap evidence.
	ok, reason := IsQualityTagResponse(
		[]string{"op-art", "minimalism", "geometry"},
		[]string{"Op"},
	)
	assert.False(t, ok)
	assert.Equal(t, "no_descriptor_overlap", reason)
}
