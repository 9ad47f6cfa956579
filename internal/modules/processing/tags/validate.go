// Package tags validates and repairs model-produced tag lists before they
// reach the database. The entry point is ValidateAndFix; it is pure apart
// from logging and safe to call concurrently.
package tags

import (
	"strings"

	"go.uber.org/zap"
)

// MaxTags caps the number of tags kept per item.
const MaxTags = 10

// ValidateAndFix normalizes, filters, splits, reorders, dedupes, and caps a
// raw tag list. The cap runs last so truncation always cuts the reordered
// tail, keeping content tags over demographics. Identical input always
// yields identical output; itemID is only used to attribute log warnings.
func ValidateAndFix(raw []string, itemID string, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}

	var cleaned []string
	for _, t := range raw {
		cleaned = append(cleaned, processTag(t)...)
	}

	deduped := dedupe(reorder(cleaned))
	if len(deduped) > MaxTags {
		deduped = deduped[:MaxTags]
	}

	warnMissingGenderPairs(deduped, itemID, log)
	return deduped
}

// Normalize lowercases a tag and reduces it to [a-z0-9-] with single
// hyphen separators. Returns "" when nothing usable remains.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	tag = strings.ReplaceAll(tag, " ", "-")
	tag = strings.ReplaceAll(tag, "_", "-")

	var b strings.Builder
	b.Grow(len(tag))
	lastHyphen := true
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// processTag runs one raw tag through normalization, the ai-prefix ban,
// ethnicity removal, and compound handling. One input tag can yield zero,
// one, or several output tags.
func processTag(raw string) []string {
	tag := Normalize(raw)
	if tag == "" {
		return nil
	}

	if strings.HasPrefix(tag, "ai-") && !allowedAITags[tag] {
		return nil
	}
	if bannedEthnicitySet[tag] {
		return nil
	}

	parts, changed := stripBannedParts(strings.Split(tag, "-"))
	if len(parts) == 0 {
		return nil
	}
	if changed {
		// Ethnicity removal breaks the compound apart. Survivors become
		// standalone tags ("black-woman" yields "woman").
		var out []string
		for _, p := range parts {
			out = append(out, splitOrKeep(p)...)
		}
		return out
	}

	return splitOrKeep(strings.Join(parts, "-"))
}

// stripBannedParts removes runs of hyphen parts that form a banned
// ethnicity term. The terms themselves can span parts ("middle-eastern").
func stripBannedParts(parts []string) (out []string, changed bool) {
	for i := 0; i < len(parts); {
		matched := 0
		for _, term := range bannedEthnicityTerms {
			termParts := strings.Split(term, "-")
			if matchesAt(parts, i, termParts) {
				matched = len(termParts)
				break
			}
		}
		if matched > 0 {
			i += matched
			changed = true
			continue
		}
		out = append(out, parts[i])
		i++
	}
	return out, changed
}

func matchesAt(parts []string, i int, term []string) bool {
	if i+len(term) > len(parts) {
		return false
	}
	for j, t := range term {
		if parts[i+j] != t {
			return false
		}
	}
	return true
}

// splitOrKeep applies the compound rule: a hyphenated tag survives whole
// when allowlisted, or when none of its parts is a stop word or a single
// character. Otherwise it splits; stop-word parts are dropped and every
// other part becomes an independent tag, single characters included.
func splitOrKeep(tag string) []string {
	if tag == "" {
		return nil
	}
	if !strings.Contains(tag, "-") {
		if stopWords[tag] {
			return nil
		}
		return []string{tag}
	}
	if compoundAllowlist[tag] {
		return []string{tag}
	}

	parts := strings.Split(tag, "-")
	keepWhole := true
	for _, p := range parts {
		if stopWords[p] || len(p) < 2 {
			keepWhole = false
			break
		}
	}
	if keepWhole {
		return []string{tag}
	}

	var out []string
	for _, p := range parts {
		if p != "" && !stopWords[p] {
			out = append(out, p)
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// reorder arranges tags as content, then subject-format tags (portrait and
// friends), then demographics, with the generic gender tags male/female
// always absolute last. Relative order within each group is preserved.
func reorder(in []string) []string {
	var content, format, demo, gender []string
	for _, t := range in {
		switch {
		case t == "male" || t == "female":
			gender = append(gender, t)
		case demographicTags[t]:
			demo = append(demo, t)
		case subjectFormatTags[t]:
			format = append(format, t)
		default:
			content = append(content, t)
		}
	}

	// male sorts before female when both are present.
	if len(gender) == 2 && gender[0] == "female" {
		gender[0], gender[1] = gender[1], gender[0]
	}

	out := make([]string, 0, len(in))
	out = append(out, content...)
	out = append(out, format...)
	out = append(out, demo...)
	out = append(out, gender...)
	return out
}

func warnMissingGenderPairs(tags []string, itemID string, log *zap.Logger) {
	present := make(map[string]bool, len(tags))
	for _, t := range tags {
		present[t] = true
	}
	for specific, generic := range genderPairs {
		if present[specific] && !present[generic] {
			log.Warn("tag list has specific demographic without generic gender tag",
				zap.String("item_id", itemID),
				zap.String("tag", specific),
				zap.String("expected", generic),
			)
		}
	}
}

// HasGenderTag reports whether any demographic gender tag is present.
// Used to flag items that mention people without ethnicity descriptors.
func HasGenderTag(in []string) bool {
	for _, t := range in {
		if t == "male" || t == "female" || genderPairs[t] != "" {
			return true
		}
	}
	return false
}
