package calendar

import "time"

// Month is a (year, month) cursor for navigating the calendar view
type Month struct {
	Year  int
	Month time.Month
}

// CurrentMonth returns the cursor for now's calendar month
func CurrentMonth(now time.Time) Month {
	return Month{Year: now.Year(), Month: now.Month()}
}

// Next returns the following month, rolling December into January
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Prev returns the preceding month, rolling January into December
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Contains reports whether the ISO date falls inside this month
func (m Month) Contains(isoDate string) bool {
	d, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return false
	}
	return d.Year() == m.Year && d.Month() == m.Month
}

// OfDate returns the cursor for the month an ISO date belongs to
func OfDate(isoDate string) (Month, error) {
	d, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return Month{}, err
	}
	return Month{Year: d.Year(), Month: d.Month()}, nil
}
