package tags

import "sort"

// Word lists used by tag validation. These are product policy, not
// linguistics: they encode what the gallery will and will not publish.

// stopWords are filler words. A compound containing one is split apart and
// the filler parts are discarded.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"and": true, "or": true, "with": true, "for": true, "from": true, "by": true,
	"very": true, "big": true, "good": true, "nice": true,
	"beautiful": true, "pretty": true,
}

// compoundAllowlist holds compounds that stay whole even though the general
// rule would split them.
var compoundAllowlist = map[string]bool{
	"x-ray":          true,
	"3d-render":      true,
	"k-pop":          true,
	"t-shirt":        true,
	"3d-photo":       true,
	"depth-of-field": true,
}

// allowedAITags are the only tags permitted to carry the "ai-" prefix.
// Everything else starting with "ai-" is redundant on an AI-art gallery.
var allowedAITags = map[string]bool{
	"ai-influencer": true,
	"ai-avatar":     true,
	"ai-headshot":   true,
	"ai-girlfriend": true,
	"ai-boyfriend":  true,
}

// bannedEthnicityTerms are never published, neither as whole tags nor as
// parts of compounds.
var bannedEthnicityTerms = []string{
	"african-american",
	"middle-eastern",
	"pacific-islander",
	"african",
	"black",
	"caucasian",
	"white",
	"asian",
	"hispanic",
	"latino",
	"latina",
	"arab",
	"indian",
	"desi",
	"european",
	"indigenous",
	"native",
}

var bannedEthnicitySet = func() map[string]bool {
	m := make(map[string]bool, len(bannedEthnicityTerms))
	for _, t := range bannedEthnicityTerms {
		m[t] = true
	}
	return m
}()

// demographicTags are moved to the end of the tag list so content tags lead.
// Order here is the relative order they keep at the tail.
var demographicTags = map[string]bool{
	"man": true, "male": true, "woman": true, "female": true,
	"boy": true, "girl": true,
	"teen-boy": true, "teen-girl": true, "teenager": true, "teen": true,
	"child": true, "kid": true, "baby": true, "infant": true,
	"person": true, "couple": true,
}

// subjectFormatTags describe the shot rather than the subject. They sort
// after content tags but before demographics.
var subjectFormatTags = map[string]bool{
	"portrait": true,
	"headshot": true,
	"selfie":   true,
}

// protectedTags are high-traffic tags that must never be dropped by the
// automated SEO review once an item carries them.
var protectedTags = map[string]bool{
	"portrait":  true,
	"anime":     true,
	"wallpaper": true,
}

// genderPairs maps specific demographic tags to the generic gender tag that
// should accompany them. Missing pairs are logged, never auto-added.
var genderPairs = map[string]string{
	"man":       "male",
	"woman":     "female",
	"boy":       "male",
	"girl":      "female",
	"teen-boy":  "male",
	"teen-girl": "female",
}

// BannedEthnicityTerms returns the ethnicity ban list for interpolation
// into model prompts. Callers must not mutate the slice.
func BannedEthnicityTerms() []string {
	return bannedEthnicityTerms
}

// AllowedAITags returns the tags exempt from the "ai-" prefix ban.
func AllowedAITags() []string {
	out := make([]string, 0, len(allowedAITags))
	for t := range allowedAITags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ProtectedTags returns the tags the SEO review may never remove.
func ProtectedTags() []string {
	out := make([]string, 0, len(protectedTags))
	for t := range protectedTags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// IsProtected reports whether a tag is shielded from removal by review.
func IsProtected(tag string) bool {
	return protectedTags[tag]
}
