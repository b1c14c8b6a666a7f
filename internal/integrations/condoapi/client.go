package condoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jjesus1982/condo-reservas/internal/domain"
)

const maxErrorBody = 64 << 10

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder records outbound call metrics. Optional.
type MetricsRecorder interface {
	ObserveAPIRequest(operation, status string, duration time.Duration)
}

// Client talks to the condominium reservation backend over HTTP/JSON.
// Every call carries the tenant/user identity from the RequestContext;
// the client holds no ambient state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    MetricsRecorder
}

// NewClient creates a backend client. metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, log Logger, metrics MetricsRecorder) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

// ListSpaces fetches the bookable amenity spaces of the tenant.
// GET /reservas/areas?tenant_id=<id>
func (c *Client) ListSpaces(ctx context.Context, rc domain.RequestContext) ([]domain.Space, error) {
	q := url.Values{}
	q.Set("tenant_id", strconv.FormatInt(rc.TenantID, 10))

	var resp spacesResponse
	if err := c.do(ctx, "list_spaces", http.MethodGet, "/reservas/areas", q, nil, &resp); err != nil {
		return nil, err
	}

	spaces := make([]domain.Space, len(resp.Items))
	for i, s := range resp.Items {
		spaces[i] = s.ToDomain()
	}
	return spaces, nil
}

// MonthAvailability fetches the occupied days of a space for one month.
// GET /reservas/calendario/<spaceId>?month=<1-12>&year=<yyyy>&tenant_id=<id>
func (c *Client) MonthAvailability(ctx context.Context, rc domain.RequestContext, spaceID int64, year int, month time.Month) (map[string][]domain.Reservation, error) {
	q := url.Values{}
	q.Set("month", strconv.Itoa(int(month)))
	q.Set("year", strconv.Itoa(year))
	q.Set("tenant_id", strconv.FormatInt(rc.TenantID, 10))

	path := fmt.Sprintf("/reservas/calendario/%d", spaceID)

	var resp calendarResponse
	if err := c.do(ctx, "month_availability", http.MethodGet, path, q, nil, &resp); err != nil {
		return nil, err
	}

	occupied := make(map[string][]domain.Reservation, len(resp.DiasOcupados))
	for date, items := range resp.DiasOcupados {
		occupied[date] = toDomainReservations(items)
	}
	return occupied, nil
}

// MyReservations fetches the requesting user's own reservations.
// GET /reservas/minhas?user_id=<id>&tenant_id=<id>
func (c *Client) MyReservations(ctx context.Context, rc domain.RequestContext) ([]domain.Reservation, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(rc.UserID, 10))
	q.Set("tenant_id", strconv.FormatInt(rc.TenantID, 10))

	var resp myReservationsResponse
	if err := c.do(ctx, "my_reservations", http.MethodGet, "/reservas/minhas", q, nil, &resp); err != nil {
		return nil, err
	}
	return toDomainReservations(resp.Items), nil
}

// CreateReservation submits a reservation intent.
// POST /reservas/?user_id=<id>&unit_id=<id>&tenant_id=<id>
func (c *Client) CreateReservation(ctx context.Context, rc domain.RequestContext, req CreateReservationRequest) (*domain.Reservation, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(rc.UserID, 10))
	q.Set("unit_id", strconv.FormatInt(rc.UnitID, 10))
	q.Set("tenant_id", strconv.FormatInt(rc.TenantID, 10))

	var resp Reservation
	if err := c.do(ctx, "create_reservation", http.MethodPost, "/reservas/", q, req, &resp); err != nil {
		return nil, err
	}

	created := resp.ToDomain()
	return &created, nil
}

// CancelReservation marks a reservation cancelled.
// DELETE /reservas/<id>?user_id=<id>&tenant_id=<id>
func (c *Client) CancelReservation(ctx context.Context, rc domain.RequestContext, reservationID int64) error {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(rc.UserID, 10))
	q.Set("tenant_id", strconv.FormatInt(rc.TenantID, 10))

	path := fmt.Sprintf("/reservas/%d", reservationID)
	return c.do(ctx, "cancel_reservation", http.MethodDelete, path, q, nil, nil)
}

// do executes one request against the backend and decodes the response
// into out (skipped when out is nil). Non-2xx responses are mapped onto
// the client's sentinel errors, preferring the structured {detail} body.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: marshal request body: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, "transport_error", start)
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	c.observe(operation, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(method, path, resp)
	}

	if out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// errorFromResponse maps a non-2xx response onto the error taxonomy
func (c *Client) errorFromResponse(method, path string, resp *http.Response) error {
	var detail string
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var errBody errorResponse
	if json.Unmarshal(body, &errBody) == nil && errBody.Detail != "" {
		detail = errBody.Detail
	}

	switch resp.StatusCode {
	case http.StatusConflict:
		if detail == "" {
			detail = "slot indisponível"
		}
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	case http.StatusNotFound:
		if detail == "" {
			detail = "recurso não encontrado"
		}
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "requisição inválida"
		}
		return fmt.Errorf("%w: %s", ErrValidation, detail)
	default:
		if detail != "" {
			return fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, detail)
		}
		return fmt.Errorf("%w: %s %s: unexpected status %d: %s",
			ErrTransport, method, path, resp.StatusCode, string(body))
	}
}

func (c *Client) observe(operation, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveAPIRequest(operation, status, time.Since(start))
}
