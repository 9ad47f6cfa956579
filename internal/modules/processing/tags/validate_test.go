package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fix(in ...string) []string {
	return ValidateAndFix(in, "item-1", nil)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "golden-hour", Normalize("  Golden Hour "))
	assert.Equal(t, "neo-noir", Normalize("Neo_Noir"))
	assert.Equal(t, "caf", Normalize("café"))
	assert.Equal(t, "a-b", Normalize("--a---b--"))
	assert.Equal(t, "", Normalize("!!!"))
}

func TestKeepsSingleCharTagsDropsEmpty(t *testing.T) {
	assert.Equal(t, []string{"z", "thing"}, fix("z", "", "  ", "thing"))
}

func TestSingleCharStopWordsStillDrop(t *testing.T) {
	// "a" and "i" are stop words; the rest of the alphabet run survives.
	got := fix("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l")
	assert.Equal(t, []string{"b", "c", "d", "e", "f", "g", "h", "j", "k", "l"}, got)
}

func TestAIPrefixBan(t *testing.T) {
	assert.Empty(t, fix("ai-art", "ai-generated", "ai-portrait-style"))
	assert.Equal(t,
		[]string{"ai-influencer", "ai-avatar", "ai-headshot", "ai-girlfriend", "ai-boyfriend"},
		fix("ai-influencer", "ai-avatar", "ai-headshot", "ai-girlfriend", "ai-boyfriend"))
}

func TestBannedEthnicityWholeTags(t *testing.T) {
	assert.Empty(t, fix("asian", "black", "white", "caucasian", "middle-eastern",
		"african-american", "pacific-islander", "latina", "indigenous"))
}

func TestEthnicityRemovedFromCompounds(t *testing.T) {
	assert.Equal(t, []string{"woman"}, fix("black-woman"))
	assert.Equal(t, []string{"man", "male"}, fix("middle-eastern-man", "male"))
	assert.Equal(t, []string{"sunset", "woman"}, fix("sunset", "asian-woman"))
}

func TestCompoundAllowlistStaysWhole(t *testing.T) {
	in := []string{"x-ray", "3d-render", "k-pop", "t-shirt", "3d-photo", "depth-of-field"}
	assert.Equal(t, in, fix(in...))
}

func TestCompoundsWithoutStopWordsStayWhole(t *testing.T) {
	in := []string{"close-up", "pin-up", "pop-out-effect", "restore-old-photo", "high-fashion", "golden-hour", "warm-tones"}
	assert.Equal(t, in, fix(in...))
}

func TestCompoundsWithStopWordsSplit(t *testing.T) {
	assert.Equal(t, []string{"garden", "woman"}, fix("woman-in-the-garden"))
	assert.Equal(t, []string{"dress"}, fix("very-pretty-dress"))
}

func TestSingleCharPartsSurviveSplit(t *testing.T) {
	assert.Equal(t, []string{"z", "thing"}, fix("z-thing"))
	assert.Equal(t, []string{"z", "test"}, fix("z-test"))
}

func TestDedupFirstOccurrence(t *testing.T) {
	assert.Equal(t, []string{"sunset", "beach"}, fix("sunset", "beach", "Sunset", "beach"))
	// A split part deduplicates against an existing whole tag.
	assert.Equal(t, []string{"garden", "woman"}, fix("garden", "woman-in-the-garden"))
}

func TestCapAtTen(t *testing.T) {
	in := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10", "t11", "t12"}
	got := fix(in...)
	assert.Len(t, got, MaxTags)
	assert.Equal(t, in[:10], got)
}

func TestCapCutsReorderedTail(t *testing.T) {
	// Demographics listed first still lose to content tags when the list
	// overflows: the cap applies after reordering.
	got := fix("woman", "female", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9")
	assert.Equal(t, []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "woman"}, got)
}

func TestDemographicsMoveToTail(t *testing.T) {
	got := fix("portrait", "woman", "female", "cinematic", "warm-tones", "golden-hour", "ai-art", "asian")
	assert.Equal(t, []string{"cinematic", "warm-tones", "golden-hour", "portrait", "woman", "female"}, got)
}

func TestGenderTagsAbsoluteLast(t *testing.T) {
	got := fix("female", "male", "man", "forest")
	assert.Equal(t, []string{"forest", "man", "male", "female"}, got)

	got = fix("couple", "male", "beach", "female", "woman", "man")
	assert.Equal(t, []string{"beach", "couple", "woman", "man", "male", "female"}, got)
}

func TestSubjectFormatBeforeDemographics(t *testing.T) {
	got := fix("selfie", "woman", "neon", "headshot")
	assert.Equal(t, []string{"neon", "selfie", "headshot", "woman"}, got)
}

func TestIdempotent(t *testing.T) {
	in := []string{"portrait", "woman", "female", "cinematic", "warm-tones", "golden-hour"}
	once := fix(in...)
	twice := fix(once...)
	assert.Equal(t, once, twice)
}

func TestWarnsOnMissingGenderPair(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	ValidateAndFix([]string{"man", "forest"}, "item-42", log)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "item-42", entries[0].ContextMap()["item_id"])
	assert.Equal(t, "man", entries[0].ContextMap()["tag"])
	assert.Equal(t, "male", entries[0].ContextMap()["expected"])
}

func TestNoWarnWhenPairPresent(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ValidateAndFix([]string{"woman", "female"}, "item-1", zap.New(core))
	assert.Empty(t, logs.All())
}

func TestHasGenderTag(t *testing.T) {
	assert.True(t, HasGenderTag([]string{"sunset", "woman"}))
	assert.True(t, HasGenderTag([]string{"male"}))
	assert.False(t, HasGenderTag([]string{"sunset", "person"}))
}
