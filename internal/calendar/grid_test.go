package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjesus1982/condo-reservas/internal/availability"
	"github.com/jjesus1982/condo-reservas/internal/domain"
	"github.com/jjesus1982/condo-reservas/pkg/types"
)

func activeReservation(id int64, date string, start, end types.TimeString) domain.Reservation {
	return domain.Reservation{
		ID:        id,
		SpaceID:   1,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusActive,
	}
}

func TestBuildMonthGridCompleteness(t *testing.T) {
	// leadingBlanks + daysInMonth cells, leadingBlanks equals the weekday
	// index of day 1, for every month of several years
	today := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			grid := BuildMonthGrid(year, month, availability.Index{}, today)

			firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			wantLeading := int(firstDay.Weekday())
			wantDays := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

			require.Len(t, grid, wantLeading+wantDays, "%d-%02d", year, month)
			for i := 0; i < wantLeading; i++ {
				assert.True(t, grid[i].Empty, "%d-%02d cell %d should be padding", year, month, i)
			}
			assert.False(t, grid[wantLeading].Empty)
			assert.Equal(t, 1, grid[wantLeading].DayNumber)
			assert.Equal(t, wantDays, grid[len(grid)-1].DayNumber)
		}
	}
}

func TestBuildMonthGridDayCount(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29}, // leap year
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%02d", tt.year, tt.month), func(t *testing.T) {
			grid := BuildMonthGrid(tt.year, tt.month, availability.Index{}, today)
			days := 0
			for _, cell := range grid {
				if !cell.Empty {
					days++
				}
			}
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestBuildMonthGridISODates(t *testing.T) {
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	grid := BuildMonthGrid(2025, time.January, availability.Index{}, today)

	// January 1st 2025 is a Wednesday: 3 leading blanks
	require.Equal(t, 3+31, len(grid))
	assert.Equal(t, "2025-01-01", grid[3].ISODate)
	assert.Equal(t, "2025-01-31", grid[len(grid)-1].ISODate)
}

func TestBuildMonthGridPastAndToday(t *testing.T) {
	// time-of-day must not affect the date-only comparison
	today := time.Date(2025, 1, 15, 23, 59, 0, 0, time.UTC)
	grid := BuildMonthGrid(2025, time.January, availability.Index{}, today)

	for _, cell := range grid {
		if cell.Empty {
			continue
		}
		switch {
		case cell.DayNumber < 15:
			assert.True(t, cell.IsPast, "day %d", cell.DayNumber)
			assert.False(t, cell.IsToday, "day %d", cell.DayNumber)
		case cell.DayNumber == 15:
			assert.False(t, cell.IsPast)
			assert.True(t, cell.IsToday)
		default:
			assert.False(t, cell.IsPast, "day %d", cell.DayNumber)
			assert.False(t, cell.IsToday, "day %d", cell.DayNumber)
		}
	}
}

func TestBuildMonthGridAnnotatesReservations(t *testing.T) {
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	idx := availability.Build(map[string][]domain.Reservation{
		"2025-01-15": {activeReservation(7, "2025-01-15", "18:00", "23:00")},
	})

	grid := BuildMonthGrid(2025, time.January, idx, today)

	for _, cell := range grid {
		if cell.Empty {
			continue
		}
		if cell.DayNumber == 15 {
			require.Len(t, cell.Reservations, 1)
			assert.Equal(t, int64(7), cell.Reservations[0].ID)
		} else {
			assert.Empty(t, cell.Reservations, "day %d", cell.DayNumber)
		}
	}
}

func TestBuildMonthGridDeterministic(t *testing.T) {
	today := time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC)
	idx := availability.Build(map[string][]domain.Reservation{
		"2025-03-08": {activeReservation(1, "2025-03-08", "09:00", "12:00")},
	})

	a := BuildMonthGrid(2025, time.March, idx, today)
	b := BuildMonthGrid(2025, time.March, idx, today)
	assert.Equal(t, a, b)
}
