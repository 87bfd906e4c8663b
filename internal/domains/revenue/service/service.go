//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"lodging/config"
	"lodging/infras/otel"
	"lodging/infras/s3"
	reservationModel "lodging/internal/domains/reservation/model"
	reservationRepo "lodging/internal/domains/reservation/repository"
	"lodging/internal/domains/revenue/model"
	"lodging/internal/domains/revenue/model/dto"
	"lodging/shared"
	"lodging/shared/cache"
	"lodging/shared/constant"
	gDto "lodging/shared/dto"
	"lodging/shared/failure"
	"lodging/shared/timezone"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const exportDirectory = "revenue"

type Revenue interface {
	GetMonthly(ctx context.Context, month, year int) (dto.MonthlyRevenueResponse, error)
	Export(ctx context.Context, month, year int) (dto.ExportResponse, error)
}

type serviceImpl struct {
	reservationRepo reservationRepo.Reservation
	cfg             *config.Config
	cache           cache.Cache
	s3              s3.S3
	otel            otel.Otel

	group singleflight.Group
}

func New(reservationRepo reservationRepo.Reservation, cfg *config.Config, cache cache.Cache, s3 s3.S3, otel otel.Otel) Revenue {
	return &serviceImpl{
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		s3:              s3,
		otel:            otel,
	}
}

// GetMonthly returns the cached total for the month or computes and stores it.
// Concurrent misses on the same month share one computation.
func (s *serviceImpl) GetMonthly(ctx context.Context, month, year int) (res dto.MonthlyRevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMonthly")
	defer scope.End()
	defer scope.TraceIfError(err)

	if month < 1 || month > 12 || year < 1 {
		return res, failure.InvalidMonthOrYear
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyRevenueMonthly, month, year)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for monthly revenue")

		return res, nil
	}

	// The computation is shared by every collapsed caller, so it must not
	// end with the first caller's request.
	detached := context.WithoutCancel(ctx)

	value, err, collapsed := s.group.Do(cacheKey, func() (any, error) {
		report, err := s.loadReport(detached, month, year)
		if err != nil {
			return nil, err
		}

		var computed dto.MonthlyRevenueResponse
		computed.FromReport(report, s.cfg.App.Currency)

		if err := s.cache.Save(detached, cacheKey, computed, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save monthly revenue to cache")
		}

		return computed, nil
	})
	if err != nil {
		return res, err
	}

	log.Debug().Str("cacheKey", cacheKey).Bool("collapsed", collapsed).Msg("computed monthly revenue")

	return value.(dto.MonthlyRevenueResponse), nil //nolint:forcetypeassert
}

// Export uploads the itemized monthly report and returns its URL. It always
// reads from storage.
func (s *serviceImpl) Export(ctx context.Context, month, year int) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer scope.TraceIfError(err)

	if month < 1 || month > 12 || year < 1 {
		return res, failure.InvalidMonthOrYear
	}

	report, err := s.loadReport(ctx, month, year)
	if err != nil {
		return res, err
	}

	var document dto.MonthlyReport
	document.FromReport(report, s.cfg.App.Currency, timezone.Now().UTC().Format(constant.DateFormat))

	body, err := json.Marshal(document)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode revenue report")

		return res, fmt.Errorf("failed to encode revenue report: %w", err)
	}

	fileName := fmt.Sprintf("%04d-%02d.json", year, month)

	url, err := s.s3.UploadFileBytes(ctx, constant.Empty, exportDirectory, fileName, constant.ContentTypeJSON, body)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload revenue report")

		return res, fmt.Errorf("failed to upload revenue report: %w", err)
	}

	res.URL = url
	res.MonthlyRevenueResponse = document.MonthlyRevenueResponse

	return res, nil
}

func (s *serviceImpl) loadReport(ctx context.Context, month, year int) (model.Report, error) {
	windowStart, windowEnd := model.MonthWindow(month, year)

	statuses := []reservationModel.Status{reservationModel.StatusConfirmed}
	if s.cfg.Revenue.IncludePending {
		statuses = append(statuses, reservationModel.StatusPending)
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			reservationModel.StatusFilter(statuses...),
			reservationModel.HalfOpenWindowFilter(windowStart, windowEnd),
		},
	}

	params := gDto.QueryParams{SortBy: reservationModel.TableName + "." + reservationModel.FieldStartAt, SortDir: gDto.SortDirAsc}

	reservations, err := s.reservationRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for revenue")

		return model.Report{}, fmt.Errorf("failed to get reservations for revenue: %w", err)
	}

	included := reservations[:0]
	for _, r := range reservations {
		if model.InWindow(r, windowStart, windowEnd) {
			included = append(included, r)
		}
	}

	return model.NewReport(month, year, included), nil
}
