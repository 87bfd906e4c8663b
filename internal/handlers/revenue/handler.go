package revenue

import (
	"net/http"

	"lodging/infras/otel"
	"lodging/internal/domains/revenue/model/dto"
	"lodging/internal/domains/revenue/service"
	"lodging/shared"
	"lodging/shared/constant"
	"lodging/shared/validator"
	"lodging/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Revenue
	otel    otel.Otel
}

func New(service service.Revenue, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/revenue", func(routerGroup chi.Router) {
		routerGroup.Get("/monthly", handler.GetMonthlyRevenue)
		routerGroup.Post("/monthly/export", handler.ExportMonthlyRevenue)
	})
}

// GetMonthlyRevenue returns the revenue of a calendar month.
// @Summary Get monthly revenue
// @Description Sums rate x billable nights of every counted reservation touching the month.
// @Tags Revenue
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} response.Envelope{data=dto.MonthlyRevenueResponse}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/revenue/monthly [get]
// @Security ApiKeyAuth
func (handler *Handler) GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyRevenue")
	defer scope.End()

	month, year, err := shared.ParseMonthYear(r.URL.Query().Get(constant.RequestParamMonth), r.URL.Query().Get(constant.RequestParamYear))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	revenue, err := handler.service.GetMonthly(ctx, month, year)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly revenue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, revenue)
}

// ExportMonthlyRevenue uploads the itemized monthly report to object storage.
// @Summary Export monthly revenue report
// @Tags Revenue
// @Accept json
// @Produce json
// @Param request body dto.ExportRequest true "Month and year"
// @Success 201 {object} response.Envelope{data=dto.ExportResponse}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/revenue/monthly/export [post]
// @Security ApiKeyAuth
func (handler *Handler) ExportMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportMonthlyRevenue")
	defer scope.End()

	var req dto.ExportRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	exported, err := handler.service.Export(ctx, req.Month, req.Year)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export monthly revenue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue report exported to " + exported.URL)

	response.WithJSON(w, http.StatusCreated, exported)
}
