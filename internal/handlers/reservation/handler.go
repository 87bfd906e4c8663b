package reservation

import (
	"context"
	"net/http"
	"time"

	"lodging/infras/otel"
	"lodging/internal/domains/reservation/model"
	"lodging/internal/domains/reservation/model/dto"
	"lodging/internal/domains/reservation/service"
	"lodging/shared"
	"lodging/shared/constant"
	gDto "lodging/shared/dto"
	"lodging/shared/failure"
	"lodging/shared/timezone"
	"lodging/shared/validator"
	"lodging/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errStartInPast = failure.BadRequestFromString("start date cannot be before today")

type Handler struct {
	service service.Reservation
	otel    otel.Otel
	now     func() time.Time
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
		now:     timezone.Now,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/mine", handler.GetMyReservations)
		routerGroup.Get("/monthly", handler.GetMonthlyReservations)
		routerGroup.Get("/range", handler.GetReservationsByRange)
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Put("/{id}", handler.UpdateReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
	})
}

// CheckAvailability reports whether a room is free for [start_at, end_at).
// @Summary Check room availability
// @Tags Reservation
// @Produce json
// @Param room_id query string true "Room ID"
// @Param start_at query string true "Start (RFC 3339 or YYYY-MM-DD)"
// @Param end_at query string true "End (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.AvailabilityResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/reservations/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	roomID := r.URL.Query().Get(constant.RequestParamRoomID)
	if roomID == constant.Empty {
		response.WithError(w, failure.BadRequestFromString("room_id is required"))

		return
	}

	start, end, err := parseRange(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, roomID, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateReservation books a room for the current user.
// @Summary Create a reservation
// @Description Books [start_at, end_at) if no reservation of the room collides. Start cannot be before today.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation details"
// @Success 201 {object} response.Envelope{data=dto.ReservationResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reservations [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	var req dto.CreateReservationRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if startsBeforeToday(req.StartAt, handler.now()) {
		scope.TraceError(errStartInPast)
		response.WithError(w, errStartInPast)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservations lists every reservation for admins and the caller's own otherwise.
// @Summary Get reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room"
// @Success 200 {object} response.Envelope{data=dto.GetReservationsResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/reservations [get]
// @Security ApiKeyAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := listParams(r)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role != constant.RoleAdmin {
		user, _ := ctx.Value(constant.ContextKeyUserID).(string)
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName,
		})
	}

	if roomID := r.URL.Query().Get(constant.RequestParamRoomID); roomID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID, Table: model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetMyReservations lists the caller's reservations.
// @Summary Get my reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope{data=dto.GetReservationsResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/reservations/mine [get]
// @Security ApiKeyAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservations, err := handler.service.GetAllByUser(ctx, user, listParams(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetMonthlyReservations lists reservations touching a calendar month.
// @Summary Get reservations of a month
// @Tags Reservation
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reservations/monthly [get]
// @Security ApiKeyAuth
func (handler *Handler) GetMonthlyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyReservations")
	defer scope.End()

	month, year, err := shared.ParseMonthYear(r.URL.Query().Get(constant.RequestParamMonth), r.URL.Query().Get(constant.RequestParamYear))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	start, end := monthBounds(month, year)

	reservations, err := handler.service.GetByDateRange(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationsByRange lists reservations touching the closed window [start_at, end_at].
// @Summary Get reservations by date range
// @Tags Reservation
// @Produce json
// @Param start_at query string true "Start (RFC 3339 or YYYY-MM-DD)"
// @Param end_at query string true "End (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reservations/range [get]
// @Security ApiKeyAuth
func (handler *Handler) GetReservationsByRange(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationsByRange")
	defer scope.End()

	start, end, err := parseRange(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	reservations, err := handler.service.GetByDateRange(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations by range")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation with its room and user.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Envelope{data=dto.ReservationResponse}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reservations/{id} [get]
// @Security ApiKeyAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	reservation, err := handler.authorizeOwner(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation replaces the schedule and status of a reservation.
// @Summary Update a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "New schedule and status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reservations/{id} [put]
// @Security ApiKeyAuth
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	var req dto.UpdateReservationRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if _, err := handler.authorizeOwner(ctx, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Reservation updated successfully")
}

// DeleteReservation removes a reservation.
// @Summary Delete a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/reservations/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if _, err := handler.authorizeOwner(ctx, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Reservation deleted successfully")
}

// authorizeOwner loads the reservation and lets only admins and its owner through.
func (handler *Handler) authorizeOwner(ctx context.Context, id string) (dto.ReservationResponse, error) {
	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		return reservation, err //nolint:wrapcheck
	}

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role == constant.RoleAdmin {
		return reservation, nil
	}

	if user, _ := ctx.Value(constant.ContextKeyUserID).(string); user == constant.Empty || reservation.User.ID != user {
		return dto.ReservationResponse{}, failure.ForbiddenError
	}

	return reservation, nil
}

// monthBounds returns the closed listing window [month start, next month start - 1ms] in UTC.
func monthBounds(month, year int) (time.Time, time.Time) {
	start := timezone.MonthStart(month, year)

	return start, start.AddDate(0, 1, 0).Add(-time.Millisecond)
}

func startsBeforeToday(start, now time.Time) bool {
	return timezone.UTCDay(start).Before(timezone.UTCDay(now))
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	start, err := shared.ParseDateTime(r.URL.Query().Get(constant.RequestParamStartAt))
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	end, err := shared.ParseDateTime(r.URL.Query().Get(constant.RequestParamEndAt))
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	return start, end, nil
}

func listParams(r *http.Request) gDto.QueryParams {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	if queryParams.Page == 0 {
		queryParams.Page = constant.DefaultValuePage
	}

	if queryParams.Limit == 0 {
		queryParams.Limit = constant.DefaultValueLimit
	}

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy, queryParams.SortDir = model.FieldStartAt, gDto.SortDirAsc
	}

	if queryParams.SortDir == constant.Empty {
		queryParams.SortDir = gDto.SortDirAsc
	}

	return queryParams
}
