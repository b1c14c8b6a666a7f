package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthNextRollsOver(t *testing.T) {
	m := Month{Year: 2024, Month: time.December}
	assert.Equal(t, Month{Year: 2025, Month: time.January}, m.Next())
}

func TestMonthPrevRollsOver(t *testing.T) {
	m := Month{Year: 2025, Month: time.January}
	assert.Equal(t, Month{Year: 2024, Month: time.December}, m.Prev())
}

func TestMonthNavigationRoundTrip(t *testing.T) {
	// forward 12 months then backward 12 months is the identity,
	// from any starting month
	for month := time.January; month <= time.December; month++ {
		start := Month{Year: 2025, Month: month}

		m := start
		for i := 0; i < 12; i++ {
			m = m.Next()
		}
		assert.Equal(t, Month{Year: 2026, Month: month}, m)

		for i := 0; i < 12; i++ {
			m = m.Prev()
		}
		assert.Equal(t, start, m)
	}
}

func TestMonthContains(t *testing.T) {
	m := Month{Year: 2025, Month: time.January}

	assert.True(t, m.Contains("2025-01-01"))
	assert.True(t, m.Contains("2025-01-31"))
	assert.False(t, m.Contains("2025-02-01"))
	assert.False(t, m.Contains("2024-01-15"))
	assert.False(t, m.Contains("not-a-date"))
}

func TestOfDate(t *testing.T) {
	m, err := OfDate("2025-01-20")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2025, Month: time.January}, m)

	_, err = OfDate("20/01/2025")
	assert.Error(t, err)
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, Month{Year: 2025, Month: time.July}, CurrentMonth(now))
}
