package lodging

import (
	"net/http"

	"lodging/infras/otel"
	"lodging/internal/domains/lodging/model"
	"lodging/internal/domains/lodging/model/dto"
	"lodging/internal/domains/lodging/service"
	"lodging/shared/constant"
	gDto "lodging/shared/dto"
	"lodging/shared/validator"
	"lodging/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Lodging
	otel    otel.Otel
}

func New(service service.Lodging, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/lodgings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLodging)
		routerGroup.Get("/", handler.GetLodgings)
		routerGroup.Get("/{id}", handler.GetLodgingByID)
		routerGroup.Patch("/{id}", handler.UpdateLodging)
		routerGroup.Delete("/{id}", handler.DeleteLodging)
	})
}

// CreateLodging handles the creation of a new lodging.
// @Summary Create a new lodging
// @Tags Lodging
// @Accept json
// @Produce json
// @Param request body dto.CreateLodgingRequest true "Lodging details"
// @Success 201 {object} response.Envelope{data=dto.LodgingResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/lodgings [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateLodging(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLodging")
	defer scope.End()

	var req dto.CreateLodgingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	lodging, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lodging")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lodging created successfully")

	response.WithJSON(w, http.StatusCreated, lodging)
}

// GetLodgings lists lodgings.
// @Summary Get all lodgings
// @Tags Lodging
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Success 200 {object} response.Envelope{data=dto.GetLodgingsResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/lodgings [get]
func (handler *Handler) GetLodgings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLodgings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldLocation,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldLocation),
				Table:    model.TableName,
			},
		},
	}

	lodgings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lodgings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lodgings)
}

// GetLodgingByID retrieves a lodging by its ID.
// @Summary Get a lodging by ID
// @Tags Lodging
// @Produce json
// @Param id path string true "Lodging ID"
// @Success 200 {object} response.Envelope{data=dto.LodgingResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/lodgings/{id} [get]
func (handler *Handler) GetLodgingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLodgingByID")
	defer scope.End()

	lodging, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lodging by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lodging)
}

// UpdateLodging updates an existing lodging.
// @Summary Update a lodging by ID
// @Tags Lodging
// @Accept json
// @Produce json
// @Param id path string true "Lodging ID"
// @Param request body dto.UpdateLodgingRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/lodgings/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateLodging(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLodging")
	defer scope.End()

	var req dto.UpdateLodgingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update lodging")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Lodging updated successfully")
}

// DeleteLodging deletes a lodging without rooms.
// @Summary Delete a lodging by ID
// @Tags Lodging
// @Produce json
// @Param id path string true "Lodging ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/lodgings/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteLodging(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLodging")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete lodging")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Lodging deleted successfully")
}
