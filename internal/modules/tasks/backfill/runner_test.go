package backfill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptionsNormalizedDefaults(t *testing.T) {
	opts := Options{TagsOnly: true, Delay: -time.Second}.normalized()

	assert.Equal(t, 10, opts.BatchSize)
	assert.Equal(t, time.Duration(0), opts.Delay)
	assert.False(t, opts.PublishedOnly)
}

func TestOptionsNormalizedFullModeImpliesPublishedOnly(t *testing.T) {
	opts := Options{}.normalized()
	assert.True(t, opts.PublishedOnly)

	opts = Options{PublishedOnly: false, TagsOnly: true}.normalized()
	assert.False(t, opts.PublishedOnly)
}

func TestSummaryString(t *testing.T) {
	s := Summary{Processed: 12, Updated: 7, Skipped: 4, Errors: 1}
	assert.Equal(t, "processed=12 updated=7 skipped=4 errors=1", s.String())
}
