package related

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFWeights(t *testing.T) {
	usage := map[string]int{
		"unused":     0,
		"rare":       3,
		"common":     40,
		"ubiquitous": 300,
	}
	w := idfWeights(usage, 1000, 0.25)

	assert.Zero(t, w["unused"])
	// Above 25% of 1000 items, treated as a stop word.
	assert.Zero(t, w["ubiquitous"])
	assert.InDelta(t, 1/math.Log(4), w["rare"], 1e-9)
	assert.InDelta(t, 1/math.Log(41), w["common"], 1e-9)
	assert.Greater(t, w["rare"], w["common"])
}

func TestOverlapScoreWeighted(t *testing.T) {
	weights := map[string]float64{"a": 1.0, "b": 0.5, "c": 0.5}
	member := map[string]bool{"a": true, "c": true}

	score := overlapScore([]string{"a", "b", "c"}, member, weights)
	assert.InDelta(t, 1.5/2.0, score, 1e-9)
}

func TestOverlapScoreUnweightedFallback(t *testing.T) {
	// All source entries are stop words: plain ratio takes over.
	weights := map[string]float64{"a": 0, "b": 0}
	member := map[string]bool{"a": true}

	score := overlapScore([]string{"a", "b"}, member, weights)
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestOverlapScoreEmptySource(t *testing.T) {
	assert.Zero(t, overlapScore(nil, map[string]bool{"a": true}, nil))
}

func TestEngagementScore(t *testing.T) {
	assert.InDelta(t, 1.0, engagementScore(10, 10), 1e-9)
	assert.InDelta(t, 0.5, engagementScore(10, 5), 1e-9)
	// Both at zero likes: no difference, full score.
	assert.InDelta(t, 1.0, engagementScore(0, 0), 1e-9)
}

func TestRecencyScore(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 1.0, recencyScore(now, now), 1e-6)
	assert.InDelta(t, 0.5, recencyScore(now.AddDate(0, 0, -45), now), 1e-6)
	assert.Zero(t, recencyScore(now.AddDate(0, 0, -120), now))
}

func TestRankOrdersByOverlapThenRecency(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	src := sourceProfile{
		ID:       "src",
		Platform: "midjourney",
		Likes:    10,
		Tags:     []string{"t1", "t2"},
	}
	weights := map[string]float64{"t1": 1.0, "t2": 1.0}

	strong := candidate{
		ID: "strong", Platform: "midjourney", Likes: 10,
		CreatedAt: now.AddDate(0, 0, -10),
		Tags:      map[string]bool{"t1": true, "t2": true},
	}
	weak := candidate{
		ID: "weak", Platform: "midjourney", Likes: 10,
		CreatedAt: now.AddDate(0, 0, -10),
		Tags:      map[string]bool{"t1": true},
	}

	ranked := rank(src, []candidate{weak, strong}, weights, nil, nil, now)
	assert.Equal(t, "strong", ranked[0].ID)
	assert.Equal(t, "weak", ranked[1].ID)
	assert.Greater(t, ranked[0].Total, ranked[1].Total)
}

func TestRankTiebreaksOnCreatedAt(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	src := sourceProfile{ID: "src", Tags: []string{"t1"}}
	weights := map[string]float64{"t1": 1.0}

	older := candidate{ID: "older", CreatedAt: now, Tags: map[string]bool{"t1": true}}
	newer := candidate{ID: "newer", CreatedAt: now, Tags: map[string]bool{"t1": true}}
	newer.CreatedAt = now.Add(time.Hour)
	older.CreatedAt = now.Add(-time.Hour)

	ranked := rank(src, []candidate{older, newer}, weights, nil, nil, now)
	assert.Equal(t, "newer", ranked[0].ID)
}

func TestRankDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	src := sourceProfile{ID: "src", Platform: "flux", Likes: 3, Tags: []string{"t1", "t2"}}
	weights := map[string]float64{"t1": 0.8, "t2": 0.4}
	cands := []candidate{
		{ID: "a", Platform: "flux", Likes: 1, CreatedAt: now.AddDate(0, 0, -5), Tags: map[string]bool{"t1": true}},
		{ID: "b", Platform: "dalle3", Likes: 3, CreatedAt: now.AddDate(0, 0, -1), Tags: map[string]bool{"t2": true}},
		{ID: "c", Platform: "flux", Likes: 9, CreatedAt: now.AddDate(0, 0, -60), Tags: map[string]bool{"t1": true, "t2": true}},
	}

	first := rank(src, cands, weights, nil, nil, now)
	second := rank(src, cands, weights, nil, nil, now)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Total, second[i].Total)
	}
}
