// Package seo holds text normalization helpers shared by the enrichment
// pipeline: URL slug generation and model-output sanitization.
package seo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxSlugLength bounds generated slugs, cut at a hyphen boundary.
	MaxSlugLength = 60

	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// slugStopWords are filler words dropped from slugs, unless dropping them
// would leave fewer than three words.
var slugStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true,
	"this": true, "that": true, "are": true, "was": true, "be": true,
	"has": true, "had": true, "have": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "shall": true, "can": true, "not": true,
	"no": true, "so": true, "if": true, "as": true, "its": true,
	"into": true, "about": true, "up": true, "out": true, "than": true,
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a title into a lowercase hyphenated URL slug.
// Accented characters are transliterated to their base form; anything that
// is not ASCII alphanumeric becomes a hyphen separator.
func Slugify(title string) string {
	flat, _, err := transform.String(deaccent, title)
	if err != nil {
		flat = title
	}
	flat = strings.ToLower(flat)

	var b strings.Builder
	lastHyphen := true
	for _, r := range flat {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return ""
	}

	words := strings.Split(slug, "-")
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !slugStopWords[w] {
			kept = append(kept, w)
		}
	}
	if len(kept) >= 3 {
		words = kept
	}
	slug = strings.Join(words, "-")

	if len(slug) > MaxSlugLength {
		truncated := slug[:MaxSlugLength]
		// Break at a word boundary, but keep at least 10 characters.
		if cut := strings.LastIndex(truncated, "-"); cut > 10 {
			truncated = truncated[:cut]
		}
		slug = strings.Trim(truncated, "-")
	}
	return slug
}

// Filename builds an SEO-friendly media filename from a title, e.g.
// "Whimsical Clay-Style Yellow Bus" + "jpg" gives
// "whimsical-clay-style-yellow-bus-ai-prompt.jpg".
func Filename(title, extension string) string {
	slug := Slugify(title)
	if slug == "" {
		return ""
	}
	return slug + "-ai-prompt." + strings.TrimPrefix(extension, ".")
}

// ThumbFilename builds the matching thumbnail filename, always JPEG.
func ThumbFilename(title string) string {
	slug := Slugify(title)
	if slug == "" {
		return ""
	}
	return slug + "-ai-prompt-thumb.jpg"
}

// SanitizeText normalizes model-produced text for storage: NFKC
// normalization, control characters stripped (newlines and tabs kept),
// whitespace trimmed, and the result truncated to maxLen runes.
func SanitizeText(s string, maxLen int) string {
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			continue
		}
		b.WriteRune(r)
	}
	s = strings.TrimSpace(b.String())
	return TruncateText(s, maxLen)
}

// TruncateText caps a string at maxLen runes without splitting a rune.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
