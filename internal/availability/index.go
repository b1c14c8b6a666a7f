package availability

import (
	"sort"
	"time"

	"github.com/jjesus1982/condo-reservas/internal/domain"
)

// Index maps an ISO date ("YYYY-MM-DD") to the active reservations booked
// for that day, ordered by start time. It is a derived, read-only view of
// the backend state for one (space, month) pair; it lives only as long as
// the current month view and is rebuilt on every authoritative fetch.
type Index map[string][]domain.Reservation

// Build creates an index from the backend's per-day reservation map,
// keeping only active reservations. Cancelled reservations never block a
// date.
func Build(occupied map[string][]domain.Reservation) Index {
	idx := make(Index, len(occupied))

	for date, reservations := range occupied {
		active := make([]domain.Reservation, 0, len(reservations))
		for _, r := range reservations {
			if r.IsActive() {
				active = append(active, r)
			}
		}
		if len(active) == 0 {
			continue
		}
		sort.Slice(active, func(i, j int) bool {
			return active[i].StartTime.IsBefore(active[j].StartTime)
		})
		idx[date] = active
	}

	return idx
}

// ActiveOn returns the active reservations for the given date, ordered by
// start time. The returned slice is shared; callers must not mutate it.
func (idx Index) ActiveOn(isoDate string) []domain.Reservation {
	return idx[isoDate]
}

// IsDateBookable reports whether a new reservation may be started for the
// given date: false for dates strictly before today (date-only comparison)
// and for dates that already carry any active reservation. A single active
// reservation occupies the whole day.
func (idx Index) IsDateBookable(isoDate string, today time.Time) bool {
	if isoDate < today.Format(domain.DateFormat) {
		return false
	}
	return len(idx[isoDate]) == 0
}

// Add inserts a reservation into the index, keeping the per-day ordering.
// Used for optimistic updates between authoritative fetches.
func (idx Index) Add(r domain.Reservation) {
	if !r.IsActive() {
		return
	}
	day := append([]domain.Reservation{}, idx[r.Date]...)
	day = append(day, r)
	sort.Slice(day, func(i, j int) bool {
		return day[i].StartTime.IsBefore(day[j].StartTime)
	})
	idx[r.Date] = day
}

// RemoveByID removes a reservation from the index and returns the removed
// value so a failed cancel can restore the prior view.
func (idx Index) RemoveByID(id int64) (domain.Reservation, bool) {
	for date, day := range idx {
		for i, r := range day {
			if r.ID != id {
				continue
			}
			remaining := append([]domain.Reservation{}, day[:i]...)
			remaining = append(remaining, day[i+1:]...)
			if len(remaining) == 0 {
				delete(idx, date)
			} else {
				idx[date] = remaining
			}
			return r, true
		}
	}
	return domain.Reservation{}, false
}

// Clone returns a deep enough copy for snapshotting: the per-day slices
// are copied, the reservations themselves are values.
func (idx Index) Clone() Index {
	out := make(Index, len(idx))
	for date, day := range idx {
		out[date] = append([]domain.Reservation{}, day...)
	}
	return out
}
