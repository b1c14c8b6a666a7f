package reservations

import (
	"context"
	"time"

	"github.com/jjesus1982/condo-reservas/internal/domain"
	"github.com/jjesus1982/condo-reservas/internal/integrations/condoapi"
)

// BackendClient is the authoritative reservation backend
type BackendClient interface {
	ListSpaces(ctx context.Context, rc domain.RequestContext) ([]domain.Space, error)
	MonthAvailability(ctx context.Context, rc domain.RequestContext, spaceID int64, year int, month time.Month) (map[string][]domain.Reservation, error)
	MyReservations(ctx context.Context, rc domain.RequestContext) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, rc domain.RequestContext, req condoapi.CreateReservationRequest) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, rc domain.RequestContext, reservationID int64) error
}

// TimeProvider provides the current time (injectable for tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
