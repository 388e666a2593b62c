package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripRange_DaysInclusive(t *testing.T) {
	r := testTrip(t)
	days := r.Days()
	require.Len(t, days, 16)
	assert.Equal(t, 16, r.Len())
	assert.Equal(t, "2025-12-17", days[0].Format(DateLayout))
	assert.Equal(t, "2026-01-01", days[15].Format(DateLayout))
}

func TestTripRange_SingleDay(t *testing.T) {
	r, err := ParseTripRange("2025-12-24", "2025-12-24")
	require.NoError(t, err)
	assert.Len(t, r.Days(), 1)
}

func TestTripRange_EndBeforeStart(t *testing.T) {
	_, err := ParseTripRange("2026-01-01", "2025-12-17")
	assert.Error(t, err)
}

func TestTripRange_ContainsIgnoresClock(t *testing.T) {
	r := testTrip(t)
	late := time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC)
	assert.True(t, r.Contains(late))
	assert.False(t, r.Contains(time.Date(2025, 12, 16, 23, 59, 0, 0, time.UTC)))
}

func TestTripRange_DayNumber(t *testing.T) {
	r := testTrip(t)
	assert.Equal(t, 1, r.DayNumber(date(t, "2025-12-17")))
	assert.Equal(t, 16, r.DayNumber(date(t, "2026-01-01")))
}
