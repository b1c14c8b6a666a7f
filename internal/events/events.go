package events

import (
	"time"

	"github.com/jjesus1982/condo-reservas/internal/domain"
)

// EventType of a reservation lifecycle event
type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
)

// ReservationEvent is the envelope published to the integrations queue
// whenever a reservation is created or cancelled through this client.
type ReservationEvent struct {
	Type           EventType `json:"type"`
	TenantID       int64     `json:"tenant_id"`
	ReservationID  int64     `json:"reservation_id"`
	SpaceID        int64     `json:"area_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	EventName      string    `json:"event_name"`
	ExpectedGuests int       `json:"expected_guests"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewReservationEvent builds the envelope for a reservation
func NewReservationEvent(t EventType, tenantID int64, r *domain.Reservation, now time.Time) ReservationEvent {
	return ReservationEvent{
		Type:           t,
		TenantID:       tenantID,
		ReservationID:  r.ID,
		SpaceID:        r.SpaceID,
		Date:           r.Date,
		StartTime:      r.StartTime.String(),
		EndTime:        r.EndTime.String(),
		EventName:      r.EventName,
		ExpectedGuests: r.ExpectedGuests,
		OccurredAt:     now,
	}
}
