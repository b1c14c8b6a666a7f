package condoapi

import (
	"time"

	"github.com/jjesus1982/condo-reservas/internal/domain"
	"github.com/jjesus1982/condo-reservas/pkg/types"
)

// Wire models for the reservation backend. Dates are ISO "YYYY-MM-DD",
// times are zero-padded 24-hour "HH:MM".

// Space wire model
type Space struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Capacity    int     `json:"capacity"`
	Description *string `json:"description,omitempty"`
}

// Reservation wire model
type Reservation struct {
	ID             int64  `json:"id"`
	AreaID         int64  `json:"area_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	RequesterName  string `json:"requester_name"`
	UnitID         int64  `json:"unit_id"`
	EventName      string `json:"event_name"`
	ExpectedGuests int    `json:"expected_guests"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// CreateReservationRequest body for POST /reservas/
type CreateReservationRequest struct {
	AreaID         int64  `json:"area_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	EventName      string `json:"event_name"`
	ExpectedGuests int    `json:"expected_guests"`
}

// errorResponse error body from the backend
type errorResponse struct {
	Detail string `json:"detail"`
}

type spacesResponse struct {
	Items []Space `json:"items"`
}

type calendarResponse struct {
	DiasOcupados map[string][]Reservation `json:"dias_ocupados"`
}

type myReservationsResponse struct {
	Items []Reservation `json:"items"`
}

// ToDomain converts a wire space into the domain model
func (s Space) ToDomain() domain.Space {
	return domain.Space{
		ID:          s.ID,
		Name:        s.Name,
		Capacity:    s.Capacity,
		Description: s.Description,
	}
}

// ToDomain converts a wire reservation into the domain model. Unknown
// status values are kept as-is so the caller can decide how to render them.
func (r Reservation) ToDomain() domain.Reservation {
	createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return domain.Reservation{
		ID:             r.ID,
		SpaceID:        r.AreaID,
		Date:           r.Date,
		StartTime:      types.TimeString(r.StartTime),
		EndTime:        types.TimeString(r.EndTime),
		RequesterName:  r.RequesterName,
		UnitID:         r.UnitID,
		EventName:      r.EventName,
		ExpectedGuests: r.ExpectedGuests,
		Status:         domain.ReservationStatus(r.Status),
		CreatedAt:      createdAt,
	}
}

func toDomainReservations(items []Reservation) []domain.Reservation {
	out := make([]domain.Reservation, len(items))
	for i, r := range items {
		out[i] = r.ToDomain()
	}
	return out
}
