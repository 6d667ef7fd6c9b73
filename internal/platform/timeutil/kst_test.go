package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKSTDayRangeFromDateOnly(t *testing.T) {
	start, end, err := KSTDayRange("2025-01-01")
	require.NoError(t, err)

	// KST midnight is 15:00 UTC of the previous day.
	assert.Equal(t, time.Date(2024, 12, 31, 15, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC), end)
}

func TestKSTDayRangeFromInstant(t *testing.T) {
	// 2025-01-01T23:30 UTC is already 2025-01-02 08:30 in KST.
	start, end, err := KSTDayRange("2025-01-01T23:30:00Z")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC), end)
}

func TestKSTDayRangeRejectsGarbage(t *testing.T) {
	_, _, err := KSTDayRange("not-a-date")
	assert.Error(t, err)
}

func TestParseDateRangePrefersCivilDay(t *testing.T) {
	out, err := ParseDateRange("2025-03-01T00:00:00Z", "2025-03-02T00:00:00Z", "2025-01-01")
	require.NoError(t, err)

	require.NotNil(t, out.Start)
	require.NotNil(t, out.End)
	assert.Equal(t, time.Date(2024, 12, 31, 15, 0, 0, 0, time.UTC), *out.Start)
	assert.Equal(t, 24*time.Hour, out.End.Sub(*out.Start))
}

func TestParseDateRangeOpenEnded(t *testing.T) {
	out, err := ParseDateRange("2025-03-01T00:00:00Z", "", "")
	require.NoError(t, err)
	require.NotNil(t, out.Start)
	assert.Nil(t, out.End)

	out, err = ParseDateRange("", "", "")
	require.NoError(t, err)
	assert.Nil(t, out.Start)
	assert.Nil(t, out.End)
}

func TestParseDateRangeInvalidBound(t *testing.T) {
	_, err := ParseDateRange("yesterday", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dateFrom")
}
