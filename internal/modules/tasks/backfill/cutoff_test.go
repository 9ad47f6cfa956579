package backfill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecentCutoff(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	cutoff := recentCutoff(7, now)
	assert.Equal(t, time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC), cutoff)

	// An item created the day before the run is inside a 2-day window.
	created := now.AddDate(0, 0, -1)
	assert.False(t, created.Before(recentCutoff(2, now)))
}
