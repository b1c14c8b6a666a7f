package calendar

import (
	"time"

	"github.com/jjesus1982/condo-reservas/internal/availability"
	"github.com/jjesus1982/condo-reservas/internal/domain"
)

// DayCell is one cell of the month grid. A padding cell before day 1 has
// Empty set and carries no other data.
type DayCell struct {
	Empty        bool
	DayNumber    int
	ISODate      string
	Reservations []domain.Reservation
	IsPast       bool
	IsToday      bool
}

// BuildMonthGrid builds the calendar grid for (year, month): one empty
// padding cell per weekday before day 1 (0=Sunday), then one cell per day
// annotated with the active reservations from the availability index.
// Deterministic given the same inputs; today is passed explicitly and only
// its calendar date is used.
func BuildMonthGrid(year int, month time.Month, idx availability.Index, today time.Time) []DayCell {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := int(firstDay.Weekday())
	days := daysInMonth(year, month)

	todayISO := today.Format(domain.DateFormat)

	grid := make([]DayCell, 0, leading+days)
	for i := 0; i < leading; i++ {
		grid = append(grid, DayCell{Empty: true})
	}

	for day := 1; day <= days; day++ {
		iso := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(domain.DateFormat)
		grid = append(grid, DayCell{
			DayNumber:    day,
			ISODate:      iso,
			Reservations: idx.ActiveOn(iso),
			IsPast:       iso < todayISO,
			IsToday:      iso == todayISO,
		})
	}

	return grid
}

// daysInMonth returns the number of days in (year, month).
// Day 0 of the following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
