package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDayUTCUsesBusinessTimezone(t *testing.T) {
	require.NoError(t, Init("Africa/Nairobi"))

	// 22:30 UTC on Jan 1 is already Jan 2 in Nairobi (UTC+3)
	ts := time.Date(2025, 1, 1, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 1, 1, 21, 0, 0, 0, time.UTC), StartOfDayUTC(ts))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2025-03-10", "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC), got.UTC())

	_, err = ParseDateTime("2025-03-10", "9am")
	assert.Error(t, err)
}

func TestClockMinutes(t *testing.T) {
	m, err := ClockMinutes("17:45")
	require.NoError(t, err)
	assert.Equal(t, 17*60+45, m)
	assert.Equal(t, "08:05", FormatClock(8*60+5))
}
