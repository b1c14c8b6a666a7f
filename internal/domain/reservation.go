package domain

import (
	"time"

	"github.com/jjesus1982/condo-reservas/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a booked interval for a Space. The backend owns
// these records; the client only sends create/cancel intents and re-reads
// the authoritative state.
type Reservation struct {
	ID             int64
	SpaceID        int64
	Date           string // "YYYY-MM-DD"
	StartTime      types.TimeString
	EndTime        types.TimeString
	RequesterName  string
	UnitID         int64
	EventName      string
	ExpectedGuests int
	Status         ReservationStatus
	CreatedAt      time.Time
}

// IsActive returns true if the reservation still blocks its slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// ValidStatus reports whether s is a known wire status value
func ValidStatus(s ReservationStatus) bool {
	return s == StatusActive || s == StatusCancelled
}
