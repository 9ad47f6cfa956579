package prettylog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func encode(t *testing.T, entry zapcore.Entry, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := NewEncoder(false).EncodeEntry(entry, fields)
	require.NoError(t, err)
	defer buf.Free()
	return buf.String()
}

func TestEncodeEntryPlain(t *testing.T) {
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC),
		LoggerName: "enrichment",
		Message:    "pass1 complete",
	}
	out := encode(t, entry, zap.String("item_id", "i1"), zap.Int("tags", 7))

	assert.True(t, strings.HasPrefix(out, "2026-08-28 12:30:00"))
	assert.Contains(t, out, "[enrichment] pass1 complete")
	assert.Contains(t, out, "item_id=i1")
	assert.Contains(t, out, "tags=7")
	assert.NotContains(t, out, "\033[")
}

func TestEncodeEntryQuotesFieldValuesWithSpaces(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.WarnLevel, Time: time.Now(), Message: "skip"}
	out := encode(t, entry, zap.String("reason", "no media url"))
	assert.Contains(t, out, `reason="no media url"`)
}

func TestHintSwitchesIconAndStaysOutOfFields(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "backfill finished"}

	out := encode(t, entry, SuccessField())
	assert.Contains(t, out, iconOK)
	assert.NotContains(t, out, HintKey)

	out = encode(t, entry, StartField())
	assert.Contains(t, out, iconStart)
}

func TestErrorLevelRendersBadge(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.ErrorLevel, Time: time.Now(), Message: "boom"}
	out := encode(t, entry)
	assert.Contains(t, out, " ERROR ")
	assert.True(t, strings.HasPrefix(out, "\n"))
}
