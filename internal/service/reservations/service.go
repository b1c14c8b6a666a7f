package reservations

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jjesus1982/condo-reservas/internal/availability"
	"github.com/jjesus1982/condo-reservas/internal/calendar"
	"github.com/jjesus1982/condo-reservas/internal/domain"
	"github.com/jjesus1982/condo-reservas/internal/draft"
	"github.com/jjesus1982/condo-reservas/internal/events"
	"github.com/jjesus1982/condo-reservas/internal/integrations/condoapi"
)

const reconcileTimeout = 10 * time.Second

// View is the availability snapshot for the currently displayed
// (space, month) pair.
type View struct {
	SpaceID  int64
	Month    calendar.Month
	Index    availability.Index
	LoadedAt time.Time
}

// Service is the boundary between the booking workflow and the backend:
// it submits drafts, cancels reservations and keeps the month availability
// view in sync afterwards. The view is guarded because the background
// poller and user-initiated actions touch it concurrently.
type Service struct {
	api          BackendClient
	publisher    events.Publisher
	timeProvider TimeProvider
	logger       Logger

	mu   sync.RWMutex
	view *View
}

// NewService creates a reservation service
func NewService(api BackendClient, publisher events.Publisher, logger Logger) *Service {
	return &Service{
		api:          api,
		publisher:    publisher,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// Spaces lists the tenant's bookable amenity spaces
func (s *Service) Spaces(ctx context.Context, rc domain.RequestContext) ([]domain.Space, error) {
	spaces, err := s.api.ListSpaces(ctx, rc)
	if err != nil {
		s.logger.Error("Spaces: failed to list spaces for tenant=%d: %v", rc.TenantID, err)
		return nil, s.mapBackendError(err)
	}
	s.logger.Info("Spaces: fetched %d spaces for tenant=%d", len(spaces), rc.TenantID)
	return spaces, nil
}

// MyReservations lists the requesting user's own reservations
func (s *Service) MyReservations(ctx context.Context, rc domain.RequestContext) ([]domain.Reservation, error) {
	items, err := s.api.MyReservations(ctx, rc)
	if err != nil {
		s.logger.Error("MyReservations: failed for user=%d tenant=%d: %v", rc.UserID, rc.TenantID, err)
		return nil, s.mapBackendError(err)
	}
	s.logger.Info("MyReservations: fetched %d reservations for user=%d", len(items), rc.UserID)
	return items, nil
}

// LoadAvailability fetches the month availability for a space, rebuilds
// the index (active reservations only) and replaces the current view.
func (s *Service) LoadAvailability(ctx context.Context, rc domain.RequestContext, spaceID int64, m calendar.Month) (availability.Index, error) {
	occupied, err := s.api.MonthAvailability(ctx, rc, spaceID, m.Year, m.Month)
	if err != nil {
		s.logger.Error("LoadAvailability: failed for space=%d %04d-%02d: %v", spaceID, m.Year, m.Month, err)
		return nil, s.mapBackendError(err)
	}

	idx := availability.Build(occupied)

	s.mu.Lock()
	s.view = &View{
		SpaceID:  spaceID,
		Month:    m,
		Index:    idx,
		LoadedAt: s.timeProvider.Now(),
	}
	s.mu.Unlock()

	s.logger.Info("LoadAvailability: space=%d %04d-%02d, %d occupied days", spaceID, m.Year, int(m.Month), len(idx))
	return idx.Clone(), nil
}

// Refresh re-fetches the availability for the current view, if any.
// Used by the background poller.
func (s *Service) Refresh(ctx context.Context, rc domain.RequestContext) error {
	s.mu.RLock()
	v := s.view
	s.mu.RUnlock()

	if v == nil {
		return ErrNoView
	}
	_, err := s.LoadAvailability(ctx, rc, v.SpaceID, v.Month)
	return err
}

// Snapshot returns a copy of the current availability view, or false when
// nothing has been loaded yet.
func (s *Service) Snapshot() (View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.view == nil {
		return View{}, false
	}
	return View{
		SpaceID:  s.view.SpaceID,
		Month:    s.view.Month,
		Index:    s.view.Index.Clone(),
		LoadedAt: s.view.LoadedAt,
	}, true
}

// Create submits a confirmed draft to the backend. On success the
// availability for the affected month is re-fetched and a lifecycle event
// is published; on failure the error is surfaced without discarding the
// draft, so the user can correct and resubmit. Implements draft.Submitter.
func (s *Service) Create(ctx context.Context, rc domain.RequestContext, d draft.Draft) (*domain.Reservation, error) {
	if err := validateDraft(d); err != nil {
		s.logger.Warn("Create: draft validation failed: %v", err)
		return nil, err
	}
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.logger.Info("Create: space=%d date=%s %s-%s user=%d tenant=%d",
		d.SpaceID, d.Date, d.StartTime, d.EndTime, rc.UserID, rc.TenantID)

	created, err := s.api.CreateReservation(ctx, rc, condoapi.CreateReservationRequest{
		AreaID:         d.SpaceID,
		Date:           d.Date,
		StartTime:      d.StartTime.String(),
		EndTime:        d.EndTime.String(),
		EventName:      d.EventLabel(),
		ExpectedGuests: d.Guests,
	})
	if err != nil {
		mapped := s.mapBackendError(err)
		s.logger.Warn("Create: backend rejected reservation for space=%d date=%s: %v", d.SpaceID, d.Date, err)
		return nil, mapped
	}

	s.logger.Info("Create: reservation id=%d created for space=%d date=%s", created.ID, created.SpaceID, created.Date)

	s.publish(ctx, events.EventReservationCreated, rc.TenantID, created)

	// Re-read authoritative state for the affected month. A failed refresh
	// leaves the view stale but the create itself already succeeded.
	if m, err := calendar.OfDate(d.Date); err == nil {
		if _, err := s.LoadAvailability(ctx, rc, d.SpaceID, m); err != nil {
			s.logger.Warn("Create: availability refresh failed after create id=%d: %v", created.ID, err)
		}
	}

	return created, nil
}

// Cancel marks a reservation cancelled. The local view is updated
// optimistically before the call: on failure the prior view is restored,
// on success a background refresh reconciles with authoritative state.
func (s *Service) Cancel(ctx context.Context, rc domain.RequestContext, reservationID int64) error {
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.logger.Info("Cancel: reservation id=%d user=%d tenant=%d", reservationID, rc.UserID, rc.TenantID)

	// Optimistic removal from the current view, if it holds the reservation
	s.mu.Lock()
	var removed *domain.Reservation
	if s.view != nil {
		if r, ok := s.view.Index.RemoveByID(reservationID); ok {
			removed = &r
		}
	}
	s.mu.Unlock()

	if err := s.api.CancelReservation(ctx, rc, reservationID); err != nil {
		// Restore the prior local view
		if removed != nil {
			s.mu.Lock()
			if s.view != nil {
				s.view.Index.Add(*removed)
			}
			s.mu.Unlock()
		}
		mapped := s.mapBackendError(err)
		s.logger.Warn("Cancel: backend rejected cancel for id=%d: %v", reservationID, err)
		return mapped
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", reservationID)

	if removed != nil {
		cancelled := *removed
		cancelled.Status = domain.StatusCancelled
		s.publish(ctx, events.EventReservationCancelled, rc.TenantID, &cancelled)
	}

	// Reconcile with authoritative state in the background; a failure here
	// is logged and the next poller tick picks it up.
	go func() {
		rctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		if err := s.Refresh(rctx, rc); err != nil && !errors.Is(err, ErrNoView) {
			s.logger.Warn("Cancel: reconciliation refresh failed after cancel id=%d: %v", reservationID, err)
		}
	}()

	return nil
}

// publish sends a lifecycle event; delivery failures are logged, never fatal
func (s *Service) publish(ctx context.Context, t events.EventType, tenantID int64, r *domain.Reservation) {
	ev := events.NewReservationEvent(t, tenantID, r, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish: failed to publish %s for reservation id=%d: %v", t, r.ID, err)
	}
}

// mapBackendError converts client errors onto the service taxonomy
func (s *Service) mapBackendError(err error) error {
	switch {
	case errors.Is(err, condoapi.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, condoapi.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, condoapi.ErrValidation):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	case errors.Is(err, condoapi.ErrTransport), errors.Is(err, condoapi.ErrInvalidResponse):
		return fmt.Errorf("%w: %v", ErrTransport, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// validateDraft is the last client-side gate before the wire; the draft
// machine enforces the same rules step by step, but Create is also
// reachable directly.
func validateDraft(d draft.Draft) error {
	if d.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrValidation)
	}
	if _, err := time.Parse(domain.DateFormat, d.Date); err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrValidation, d.Date)
	}
	if err := d.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := d.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !d.StartTime.IsBefore(d.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}
	if d.EventLabel() == "" {
		return fmt.Errorf("%w: event label is required", ErrValidation)
	}
	return nil
}
