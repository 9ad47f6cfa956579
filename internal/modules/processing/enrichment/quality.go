package enrichment

import "strings"

// genericTags carry no search value on their own. A review that returns
// nothing but these is treated as garbage.
var genericTags = map[string]bool{
	"portrait": true, "portraits": true,
	"close-up": true, "close-ups": true,
	"landscape": true, "landscapes": true,
	"photography": true, "art": true, "design": true,
	"photo": true, "image": true, "creative": true,
	"beautiful": true, "professional": true,
	"illustration": true, "digital": true, "style": true,
}

// minOverlapTokenLen keeps trivial prefixes like "re"/"un" from counting
// as descriptor overlap.
const minOverlapTokenLen = 3

// IsQualityTagResponse decides whether a reviewed tag list is trustworthy
// enough to persist. It rejects lists that are too short, entirely
// generic, or unrelated to the item's descriptors. The descriptor check is
// skipped when the item has no descriptors to compare against.
func IsQualityTagResponse(tagList []string, descriptorNames []string) (bool, string) {
	if len(tagList) < 3 {
		return false, "too_few_tags"
	}

	allGeneric := true
	for _, t := range tagList {
		if !genericTags[t] {
			allGeneric = false
			break
		}
	}
	if allGeneric {
		return false, "all_generic"
	}

	if len(descriptorNames) > 0 && !hasDescriptorOverlap(tagList, descriptorNames) {
		return false, "no_descriptor_overlap"
	}
	return true, ""
}

// hasDescriptorOverlap reports whether any tag token and any descriptor
// token share a prefix relationship ("photograph" matches "photography").
func hasDescriptorOverlap(tagList []string, descriptorNames []string) bool {
	tagTokens := tokenize(tagList)
	descTokens := tokenize(descriptorNames)
	for _, t := range tagTokens {
		for _, d := range descTokens {
			if tokensOverlap(t, d) {
				return true
			}
		}
	}
	return false
}

func tokenize(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.ToLower(v)
		for _, tok := range strings.FieldsFunc(v, func(r rune) bool {
			return r == '-' || r == ' ' || r == '/'
		}) {
			if len(tok) >= minOverlapTokenLen {
				out = append(out, tok)
			}
		}
	}
	return out
}

func tokensOverlap(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
