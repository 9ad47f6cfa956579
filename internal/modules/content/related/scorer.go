package related

import (
	"math"
	"sort"
	"time"
)

// Scoring weights. Descriptors dominate because they encode what the image
// actually shows; the last three are tiebreakers.
const (
	weightTags        = 0.30
	weightCategories  = 0.25
	weightDescriptors = 0.35
	weightPlatform    = 0.05
	weightEngagement  = 0.03
	weightRecency     = 0.02

	recencyHorizonDays = 90.0
)

// sourceProfile is the reference item reduced to what scoring needs.
type sourceProfile struct {
	ID          string
	Platform    string
	Likes       int
	Tags        []string
	Categories  []string
	Descriptors []string
}

// candidate is one pool member with its taxonomy memberships resolved.
type candidate struct {
	ID          string
	Platform    string
	Likes       int
	CreatedAt   time.Time
	Tags        map[string]bool
	Categories  map[string]bool
	Descriptors map[string]bool
}

type scored struct {
	candidate
	Total float64
}

// idfWeights computes inverse-document-frequency weights for one taxonomy.
// Entries on more than threshold of all published items act as stop words
// and get zero weight, as do entries with no usage at all.
func idfWeights(usage map[string]int, totalItems int64, threshold float64) map[string]float64 {
	cutoff := float64(totalItems) * threshold
	out := make(map[string]float64, len(usage))
	for id, n := range usage {
		switch {
		case n == 0:
			out[id] = 0
		case float64(n) > cutoff:
			out[id] = 0
		default:
			out[id] = 1 / math.Log(float64(n)+1)
		}
	}
	return out
}

// overlapScore is a source-normalized weighted Jaccard numerator: the
// weight mass of the shared entries over the weight mass of the source
// set. When every source entry is a stop word the weighted denominator is
// zero and the plain overlap ratio takes over.
func overlapScore(source []string, member map[string]bool, weights map[string]float64) float64 {
	if len(source) == 0 {
		return 0
	}
	var num, den float64
	shared := 0
	for _, id := range source {
		w := weights[id]
		den += w
		if member[id] {
			num += w
			shared++
		}
	}
	if den == 0 {
		return float64(shared) / float64(len(source))
	}
	return num / den
}

func engagementScore(sourceLikes, candidateLikes int) float64 {
	maxLikes := sourceLikes
	if candidateLikes > maxLikes {
		maxLikes = candidateLikes
	}
	if maxLikes < 1 {
		maxLikes = 1
	}
	diff := float64(sourceLikes - candidateLikes)
	if diff < 0 {
		diff = -diff
	}
	return 1 - diff/float64(maxLikes)
}

func recencyScore(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	score := 1 - days/recencyHorizonDays
	if score < 0 {
		return 0
	}
	return score
}

// rank scores every candidate and sorts by total descending, newest first
// on ties. The sort is deterministic for equal inputs.
func rank(
	src sourceProfile,
	candidates []candidate,
	tagWeights, categoryWeights, descriptorWeights map[string]float64,
	now time.Time,
) []scored {
	out := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		platformScore := 0.0
		if c.Platform != "" && c.Platform == src.Platform {
			platformScore = 1
		}
		total := weightTags*overlapScore(src.Tags, c.Tags, tagWeights) +
			weightCategories*overlapScore(src.Categories, c.Categories, categoryWeights) +
			weightDescriptors*overlapScore(src.Descriptors, c.Descriptors, descriptorWeights) +
			weightPlatform*platformScore +
			weightEngagement*engagementScore(src.Likes, c.Likes) +
			weightRecency*recencyScore(c.CreatedAt, now)
		out = append(out, scored{candidate: c, Total: total})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
