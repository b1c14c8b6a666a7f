package draft

import (
	"context"
	"fmt"
	"strings"

	"github.com/jjesus1982/condo-reservas/internal/domain"
	"github.com/jjesus1982/condo-reservas/pkg/types"
)

// State of the booking form
type State string

const (
	StateSelectingTime   State = "selecting_time"
	StateEnteringDetails State = "entering_details"
	StateConfirming      State = "confirming"
	StateSubmitted       State = "submitted"
	StateCancelled       State = "cancelled"
)

// Draft is the transient, client-only in-progress booking form. It is
// never partially persisted server-side; it exists only between opening
// the form and submission or abort.
type Draft struct {
	SpaceID   int64
	Date      string // "YYYY-MM-DD"
	StartTime types.TimeString
	EndTime   types.TimeString
	EventType string
	EventName string
	Guests    int
}

// EventLabel composes the wire event_name from the selected type and the
// optional free-text name.
func (d Draft) EventLabel() string {
	if d.EventName == "" {
		return d.EventType
	}
	if d.EventType == "" {
		return d.EventName
	}
	return d.EventType + " - " + d.EventName
}

// Submitter performs the create call when the draft is confirmed.
// Implemented by the reservation service.
type Submitter interface {
	Create(ctx context.Context, rc domain.RequestContext, d Draft) (*domain.Reservation, error)
}

// Machine walks the booking form through its steps, validating each gate:
//
//	SelectingTime -> EnteringDetails -> Confirming -> Submitted
//
// Cancelled is reachable from every non-terminal state. Submitted and
// Cancelled are terminal.
type Machine struct {
	state    State
	space    domain.Space
	draft    Draft
	warnings []string
	lastErr  error
}

// NewMachine opens the booking form for a space and date
func NewMachine(space domain.Space, isoDate string) *Machine {
	return &Machine{
		state: StateSelectingTime,
		space: space,
		draft: Draft{SpaceID: space.ID, Date: isoDate},
	}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Draft returns a copy of the form contents collected so far
func (m *Machine) Draft() Draft {
	return m.draft
}

// Warnings returns the soft-validation warnings from the details step
func (m *Machine) Warnings() []string {
	return m.warnings
}

// Err returns the error surfaced by the last failed submission, if any
func (m *Machine) Err() error {
	return m.lastErr
}

// SelectTime records the requested interval and advances to the details
// step. The machine never advances while startTime >= endTime.
func (m *Machine) SelectTime(start, end types.TimeString) error {
	if m.state != StateSelectingTime {
		return ErrInvalidState
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	if !start.IsBefore(end) {
		return ErrInvalidTimeRange
	}

	m.draft.StartTime = start
	m.draft.EndTime = end
	m.state = StateEnteringDetails
	return nil
}

// EnterDetails records the event metadata and advances to confirmation.
// The event type is required; the free-text name and guest count are
// optional. Guest count problems are soft: the step still advances and
// the issues are reported as warnings.
func (m *Machine) EnterDetails(eventType, eventName string, guests int) error {
	if m.state != StateEnteringDetails {
		return ErrInvalidState
	}
	if strings.TrimSpace(eventType) == "" {
		return ErrMissingEventType
	}

	m.warnings = m.warnings[:0]
	if guests != 0 {
		if guests < domain.MinGuests {
			m.warnings = append(m.warnings,
				fmt.Sprintf("número de convidados deve ser positivo, recebido %d", guests))
		} else if m.space.Capacity > 0 && guests > m.space.Capacity {
			m.warnings = append(m.warnings,
				fmt.Sprintf("número de convidados (%d) excede a capacidade do espaço (%d)", guests, m.space.Capacity))
		}
	}
	if len(eventName) > domain.MaxEventNameLength {
		m.warnings = append(m.warnings,
			fmt.Sprintf("nome do evento excede %d caracteres e pode ser truncado", domain.MaxEventNameLength))
	}

	m.draft.EventType = strings.TrimSpace(eventType)
	m.draft.EventName = strings.TrimSpace(eventName)
	m.draft.Guests = guests
	m.state = StateConfirming
	return nil
}

// Confirm fires the create call. On failure the machine stays in
// Confirming with the error surfaced, so the user can correct the form
// and resubmit without losing the draft. On success the machine reaches
// Submitted and the draft is done.
func (m *Machine) Confirm(ctx context.Context, rc domain.RequestContext, submitter Submitter) (*domain.Reservation, error) {
	if m.state == StateSubmitted || m.state == StateCancelled {
		return nil, ErrFinalized
	}
	if m.state != StateConfirming {
		return nil, ErrInvalidState
	}

	created, err := submitter.Create(ctx, rc, m.draft)
	if err != nil {
		m.lastErr = err
		return nil, err
	}

	m.lastErr = nil
	m.state = StateSubmitted
	return created, nil
}

// Abort discards the draft without side effects. Allowed from any
// non-terminal state; aborting an already submitted draft is an error
// because the create request has been sent and cannot be recalled.
func (m *Machine) Abort() error {
	switch m.state {
	case StateSubmitted, StateCancelled:
		return ErrFinalized
	}
	m.state = StateCancelled
	return nil
}
