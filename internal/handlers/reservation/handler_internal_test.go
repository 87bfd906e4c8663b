package reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"lodging/infras/otel/mocks"
	"lodging/internal/domains/reservation/model/dto"
	"lodging/internal/domains/reservation/service"
	"lodging/shared/constant"
	"lodging/shared/failure"
)

func TestMonthBounds(t *testing.T) {
	start, end := monthBounds(2, 2024)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)

	start, end = monthBounds(12, 2023)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond), end)
}

func TestStartsBeforeToday(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{name: "yesterday", start: time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC), want: true},
		{name: "earlier today", start: time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC), want: false},
		{name: "tomorrow", start: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), want: false},
		{name: "offset zone on the same utc day", start: time.Date(2024, 3, 10, 20, 0, 0, 0, time.FixedZone("BRT", -3*60*60)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startsBeforeToday(tt.start, now))
		})
	}
}

func newTestHandler() Handler {
	handler := New(nil, mocks.NewOtel())
	handler.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }

	return handler
}

func TestCreateReservation_StartInPast(t *testing.T) {
	handler := newTestHandler()

	body := `{"room_id":"room-1","start_at":"2024-03-01T00:00:00Z","end_at":"2024-03-03T00:00:00Z"}`
	rec := httptest.NewRecorder()
	handler.CreateReservation(rec, httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start date cannot be before today")
}

func TestGetMonthlyReservations_InvalidPeriod(t *testing.T) {
	handler := newTestHandler()

	for _, query := range []string{"month=13&year=2024", "month=0&year=2024", "month=3&year=0", "month=x&year=2024", ""} {
		rec := httptest.NewRecorder()
		handler.GetMonthlyReservations(rec, httptest.NewRequest(http.MethodGet, "/v1/reservations/monthly?"+query, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestCheckAvailability_MissingRoom(t *testing.T) {
	handler := newTestHandler()

	rec := httptest.NewRecorder()
	handler.CheckAvailability(rec, httptest.NewRequest(http.MethodGet, "/v1/reservations/availability?start_at=2024-03-10&end_at=2024-03-12", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ownedService serves one reservation owned by user-1 and records mutations.
type ownedService struct {
	service.Reservation

	updated, deleted []string
}

func (s *ownedService) Get(_ context.Context, id string) (dto.ReservationResponse, error) {
	if id != "res-1" {
		return dto.ReservationResponse{}, failure.ReservationNotFound
	}

	return dto.ReservationResponse{ID: id, Status: "Pendente", User: dto.UserSummary{ID: "user-1"}}, nil
}

func (s *ownedService) Update(_ context.Context, _ dto.UpdateReservationRequest, id string) error {
	s.updated = append(s.updated, id)

	return nil
}

func (s *ownedService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)

	return nil
}

func withCaller(r *http.Request, id, role, user string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(constant.RequestParamID, id)

	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, user)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return r.WithContext(ctx)
}

func TestReservationByID_Ownership(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		role     string
		user     string
		wantCode int
	}{
		{name: "owner", id: "res-1", role: constant.RoleUser, user: "user-1", wantCode: http.StatusOK},
		{name: "admin", id: "res-1", role: constant.RoleAdmin, user: "admin-1", wantCode: http.StatusOK},
		{name: "other user", id: "res-1", role: constant.RoleUser, user: "user-2", wantCode: http.StatusForbidden},
		{name: "missing", id: "res-9", role: constant.RoleUser, user: "user-1", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &ownedService{}
			handler := New(svc, mocks.NewOtel())

			rec := httptest.NewRecorder()
			handler.GetReservationByID(rec, withCaller(httptest.NewRequest(http.MethodGet, "/v1/reservations/"+tt.id, nil), tt.id, tt.role, tt.user))
			assert.Equal(t, tt.wantCode, rec.Code)

			rec = httptest.NewRecorder()
			handler.DeleteReservation(rec, withCaller(httptest.NewRequest(http.MethodDelete, "/v1/reservations/"+tt.id, nil), tt.id, tt.role, tt.user))
			assert.Equal(t, tt.wantCode, rec.Code)

			body := `{"start_at":"2024-03-20T00:00:00Z","end_at":"2024-03-22T00:00:00Z","status":"Confirmada"}`
			rec = httptest.NewRecorder()
			handler.UpdateReservation(rec, withCaller(httptest.NewRequest(http.MethodPut, "/v1/reservations/"+tt.id, strings.NewReader(body)), tt.id, tt.role, tt.user))
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, []string{tt.id}, svc.deleted)
				assert.Equal(t, []string{tt.id}, svc.updated)
			} else {
				assert.Empty(t, svc.deleted)
				assert.Empty(t, svc.updated)
			}
		})
	}
}
