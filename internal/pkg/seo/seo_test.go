package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"basic", "Cyberpunk City at Night", "cyberpunk-city-night"},
		{"accents", "Café Noir Étude", "cafe-noir-etude"},
		{"punctuation", "Hello, World! (v2)", "hello-world-v2"},
		{"keeps short titles whole", "The Garden", "the-garden"},
		{"collapses separators", "a  --  b  --  c", "a-b-c"},
		{"empty", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyLength(t *testing.T) {
	long := strings.Repeat("wonderful ", 20)
	slug := Slugify(long)
	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
	assert.NotContains(t, slug, "--")
}

func TestSlugifyStopWordsNeedThreeRemaining(t *testing.T) {
	// Dropping stop words would leave only two words, so all are kept.
	assert.Equal(t, "of-the-sea", Slugify("Of the Sea"))
	// Enough real words remain, fillers go.
	assert.Equal(t, "portrait-woman-garden", Slugify("Portrait of a Woman in the Garden"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "whimsical-clay-style-yellow-bus-ai-prompt.jpg",
		Filename("Whimsical Clay-Style Yellow Bus", "jpg"))
	assert.Equal(t, "cinematic-digital-art-ai-prompt.webp",
		Filename("Cinematic Digital Art", ".webp"))
	assert.Equal(t, "", Filename("???", "jpg"))
	assert.Equal(t, "cinematic-digital-art-ai-prompt-thumb.jpg",
		ThumbFilename("Cinematic Digital Art"))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeText("  hello\x00 world\x1b  ", 100))
	assert.Equal(t, "line1\nline2\ttab", SanitizeText("line1\nline2\ttab", 100))
	assert.Equal(t, "abc", SanitizeText("abcdef", 3))
}

func TestTruncateTextRuneSafe(t *testing.T) {
	assert.Equal(t, "日本", TruncateText("日本語テキスト", 2))
	assert.Equal(t, "short", TruncateText("short", 100))
	assert.Equal(t, "unbounded", TruncateText("unbounded", 0))
}
