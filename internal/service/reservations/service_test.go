package reservations

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjesus1982/condo-reservas/internal/calendar"
	"github.com/jjesus1982/condo-reservas/internal/domain"
	"github.com/jjesus1982/condo-reservas/internal/draft"
	"github.com/jjesus1982/condo-reservas/internal/events"
	"github.com/jjesus1982/condo-reservas/internal/integrations/condoapi"
	"github.com/jjesus1982/condo-reservas/pkg/ptr"
	"github.com/jjesus1982/condo-reservas/pkg/types"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

// fakeBackend is an in-memory stand-in for the reservation backend
type fakeBackend struct {
	mu           sync.Mutex
	spaces       []domain.Space
	reservations map[int64]*domain.Reservation
	nextID       int64

	createErr error
	cancelErr error
	availErr  error

	availabilityCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		spaces: []domain.Space{
			{ID: 1, Name: "Salão de Festas", Capacity: 80, Description: ptr.Ptr("Salão principal")},
		},
		reservations: make(map[int64]*domain.Reservation),
		nextID:       1,
	}
}

func (f *fakeBackend) ListSpaces(ctx context.Context, rc domain.RequestContext) ([]domain.Space, error) {
	return f.spaces, nil
}

func (f *fakeBackend) MonthAvailability(ctx context.Context, rc domain.RequestContext, spaceID int64, year int, month time.Month) (map[string][]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.availabilityCalls++
	if f.availErr != nil {
		return nil, f.availErr
	}

	m := calendar.Month{Year: year, Month: month}
	occupied := make(map[string][]domain.Reservation)
	for _, r := range f.reservations {
		if r.SpaceID == spaceID && m.Contains(r.Date) {
			occupied[r.Date] = append(occupied[r.Date], *r)
		}
	}
	return occupied, nil
}

func (f *fakeBackend) MyReservations(ctx context.Context, rc domain.RequestContext) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Reservation
	for _, r := range f.reservations {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeBackend) CreateReservation(ctx context.Context, rc domain.RequestContext, req condoapi.CreateReservationRequest) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	r := &domain.Reservation{
		ID:             f.nextID,
		SpaceID:        req.AreaID,
		Date:           req.Date,
		StartTime:      types.TimeString(req.StartTime),
		EndTime:        types.TimeString(req.EndTime),
		UnitID:         rc.UnitID,
		EventName:      req.EventName,
		ExpectedGuests: req.ExpectedGuests,
		Status:         domain.StatusActive,
	}
	f.nextID++
	f.reservations[r.ID] = r

	out := *r
	return &out, nil
}

func (f *fakeBackend) CancelReservation(ctx context.Context, rc domain.RequestContext, reservationID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancelErr != nil {
		return f.cancelErr
	}
	r, ok := f.reservations[reservationID]
	if !ok {
		return condoapi.ErrNotFound
	}
	r.Status = domain.StatusCancelled
	return nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.availabilityCalls
}

func newTestService(backend *fakeBackend) *Service {
	return NewService(backend, events.NoopPublisher{}, testLogger{})
}

func testRC() domain.RequestContext {
	return domain.RequestContext{TenantID: 1, UserID: 2, UnitID: 3}
}

func validDraft(date string) draft.Draft {
	return draft.Draft{
		SpaceID:   1,
		Date:      date,
		StartTime: "09:00",
		EndTime:   "12:00",
		EventType: "Aniversário",
		Guests:    20,
	}
}

func january() calendar.Month {
	return calendar.Month{Year: 2025, Month: time.January}
}

func TestCreateRefreshesAvailability(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)
	rc := testRC()
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	idx, err := svc.LoadAvailability(context.Background(), rc, 1, january())
	require.NoError(t, err)
	require.True(t, idx.IsDateBookable("2025-01-20", today))

	created, err := svc.Create(context.Background(), rc, validDraft("2025-01-20"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, created.Status)

	// the view was refreshed from authoritative state
	view, ok := svc.Snapshot()
	require.True(t, ok)
	assert.False(t, view.Index.IsDateBookable("2025-01-20", today))
}

func TestCreateValidationNeverReachesBackend(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	tests := []struct {
		name string
		mut  func(*draft.Draft)
	}{
		{"inverted time range", func(d *draft.Draft) { d.StartTime, d.EndTime = "12:00", "09:00" }},
		{"equal times", func(d *draft.Draft) { d.EndTime = d.StartTime }},
		{"bad date", func(d *draft.Draft) { d.Date = "20/01/2025" }},
		{"missing event", func(d *draft.Draft) { d.EventType = "" }},
		{"missing space", func(d *draft.Draft) { d.SpaceID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft("2025-01-20")
			tt.mut(&d)
			_, err := svc.Create(context.Background(), testRC(), d)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, backend.reservations)
}

func TestCreateConflictSurfacedAsRecoverable(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = condoapi.ErrConflict
	svc := newTestService(backend)

	_, err := svc.Create(context.Background(), testRC(), validDraft("2025-01-20"))
	assert.ErrorIs(t, err, ErrConflict)

	// the backend recovers, resubmitting the same draft now succeeds
	backend.createErr = nil
	_, err = svc.Create(context.Background(), testRC(), validDraft("2025-01-20"))
	assert.NoError(t, err)
}

func TestCreateTransportError(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = condoapi.ErrTransport
	svc := newTestService(backend)

	_, err := svc.Create(context.Background(), testRC(), validDraft("2025-01-20"))
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCancelOptimisticallyUpdatesView(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)
	rc := testRC()
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	created, err := svc.Create(context.Background(), rc, validDraft("2025-01-20"))
	require.NoError(t, err)

	view, ok := svc.Snapshot()
	require.True(t, ok)
	require.False(t, view.Index.IsDateBookable("2025-01-20", today))

	require.NoError(t, svc.Cancel(context.Background(), rc, created.ID))

	// removed from the local view immediately, before reconciliation
	view, ok = svc.Snapshot()
	require.True(t, ok)
	assert.True(t, view.Index.IsDateBookable("2025-01-20", today))
}

func TestCancelFailureRestoresView(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)
	rc := testRC()
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	created, err := svc.Create(context.Background(), rc, validDraft("2025-01-20"))
	require.NoError(t, err)

	backend.cancelErr = condoapi.ErrTransport
	err = svc.Cancel(context.Background(), rc, created.ID)
	require.ErrorIs(t, err, ErrTransport)

	// the prior local view is restored
	view, ok := svc.Snapshot()
	require.True(t, ok)
	assert.False(t, view.Index.IsDateBookable("2025-01-20", today))
	require.Len(t, view.Index.ActiveOn("2025-01-20"), 1)
	assert.Equal(t, created.ID, view.Index.ActiveOn("2025-01-20")[0].ID)
}

func TestCancelNotFound(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)

	err := svc.Cancel(context.Background(), testRC(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefreshWithoutView(t *testing.T) {
	svc := newTestService(newFakeBackend())
	assert.ErrorIs(t, svc.Refresh(context.Background(), testRC()), ErrNoView)
}

func TestRefreshReloadsCurrentView(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)
	rc := testRC()

	_, err := svc.LoadAvailability(context.Background(), rc, 1, january())
	require.NoError(t, err)
	before := backend.calls()

	require.NoError(t, svc.Refresh(context.Background(), rc))
	assert.Equal(t, before+1, backend.calls())
}

// The scenario from the reservation workflow: one occupied day blocks,
// booking a free day blocks it, cancelling frees it again.
func TestBookingLifecycleScenario(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestService(backend)
	rc := testRC()
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	// pre-existing reservation on January 15th, 18:00-23:00
	seed, err := svc.Create(context.Background(), rc, draft.Draft{
		SpaceID: 1, Date: "2025-01-15", StartTime: "18:00", EndTime: "23:00",
		EventType: "Confraternização",
	})
	require.NoError(t, err)
	require.NotNil(t, seed)

	idx, err := svc.LoadAvailability(context.Background(), rc, 1, january())
	require.NoError(t, err)
	assert.False(t, idx.IsDateBookable("2025-01-15", today))
	assert.True(t, idx.IsDateBookable("2025-01-20", today))

	created, err := svc.Create(context.Background(), rc, draft.Draft{
		SpaceID: 1, Date: "2025-01-20", StartTime: "09:00", EndTime: "12:00",
		EventType: "Aniversário",
	})
	require.NoError(t, err)

	view, ok := svc.Snapshot()
	require.True(t, ok)
	assert.False(t, view.Index.IsDateBookable("2025-01-20", today))

	require.NoError(t, svc.Cancel(context.Background(), rc, created.ID))

	// authoritative re-read agrees: the day is bookable again
	idx, err = svc.LoadAvailability(context.Background(), rc, 1, january())
	require.NoError(t, err)
	assert.True(t, idx.IsDateBookable("2025-01-20", today))
	assert.False(t, idx.IsDateBookable("2025-01-15", today))
}
