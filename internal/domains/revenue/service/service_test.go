package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodging/config"
	"lodging/infras/otel/mocks"
	s3Mocks "lodging/infras/s3/mocks"
	reservationMocks "lodging/internal/domains/reservation/mocks"
	reservationModel "lodging/internal/domains/reservation/model"
	"lodging/internal/domains/revenue/service"
	"lodging/shared/cache"
	cacheMocks "lodging/shared/cache/mocks"
	gDto "lodging/shared/dto"
	"lodging/shared/failure"
)

func newConfig(includePending bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.Currency = "BRL"
	cfg.Revenue.IncludePending = includePending

	return cfg
}

func stay(id string, start, end time.Time, rate string) reservationModel.Reservation {
	return reservationModel.Reservation{
		ID:       id,
		RoomID:   "room-1",
		StartAt:  start,
		EndAt:    end,
		Status:   reservationModel.StatusConfirmed,
		RoomRate: decimal.RequireFromString(rate),
	}
}

func march(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestRevenueService_GetMonthly(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	c := cacheMocks.NewMockCache(ctrl)
	svc := service.New(repo, newConfig(false), c, s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

	c.EXPECT().Get(gomock.Any(), "revenue:monthly:3:2024", gomock.Any()).Return(cache.Nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]reservationModel.Reservation{stay("res-1", march(10), march(12), "100")}, nil)
	c.EXPECT().Save(gomock.Any(), "revenue:monthly:3:2024", gomock.Any(), 0).Return(nil)

	res, err := svc.GetMonthly(context.Background(), 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Month)
	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, "300.00", res.Revenue)
	assert.Equal(t, "BRL", res.Currency)
}

func TestRevenueService_GetMonthlyCachedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	svc := service.New(repo, newConfig(false), cache.NewMemoryCache(mocks.NewOtel()), s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]reservationModel.Reservation{stay("res-1", march(10), march(12), "100")}, nil).
		Times(1)

	first, err := svc.GetMonthly(context.Background(), 3, 2024)
	require.NoError(t, err)

	second, err := svc.GetMonthly(context.Background(), 3, 2024)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRevenueService_GetMonthlyConcurrentMisses(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	svc := service.New(repo, newConfig(false), cache.NewMemoryCache(mocks.NewOtel()), s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]reservationModel.Reservation, error) {
			time.Sleep(200 * time.Millisecond)

			return []reservationModel.Reservation{stay("res-1", march(10), march(12), "100")}, nil
		}).
		Times(1)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)

	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			<-start

			res, err := svc.GetMonthly(context.Background(), 3, 2024)
			assert.NoError(t, err)
			assert.Equal(t, "300.00", res.Revenue)
		}()
	}

	close(start)
	wg.Wait()
}

func TestRevenueService_SpanningReservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	svc := service.New(repo, newConfig(false), cache.NewMemoryCache(mocks.NewOtel()), s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

	spanning := stay("res-1", march(30), time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), "100")

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]reservationModel.Reservation{spanning}, nil).
		Times(2)

	marchRes, err := svc.GetMonthly(context.Background(), 3, 2024)
	require.NoError(t, err)

	aprilRes, err := svc.GetMonthly(context.Background(), 4, 2024)
	require.NoError(t, err)

	assert.Equal(t, "400.00", marchRes.Revenue)
	assert.Equal(t, "400.00", aprilRes.Revenue)
}

func TestRevenueService_SubCentRatesAreNotRounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	svc := service.New(repo, newConfig(false), cache.NewMemoryCache(mocks.NewOtel()), s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

	halfDay := stay("res-1", march(10), march(10).Add(12*time.Hour), "33.335")
	threeNights := stay("res-2", march(12), march(14), "100")

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]reservationModel.Reservation{halfDay, threeNights}, nil).
		Times(1)

	first, err := svc.GetMonthly(context.Background(), 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, "333.335", first.Revenue)

	cached, err := svc.GetMonthly(context.Background(), 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, "333.335", cached.Revenue, "cached total keeps full precision")
}

func TestRevenueService_GetMonthlyIgnoresCallerCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	svc := service.New(repo, newConfig(false), cache.NewMemoryCache(mocks.NewOtel()), s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]reservationModel.Reservation, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			return []reservationModel.Reservation{stay("res-1", march(10), march(12), "100")}, nil
		})

	res, err := svc.GetMonthly(ctx, 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, "300.00", res.Revenue)
}

func TestRevenueService_StatusSelection(t *testing.T) {
	tests := []struct {
		name           string
		includePending bool
		wantArgs       map[string]any
	}{
		{
			name:     "confirmed only",
			wantArgs: map[string]any{"status_0": "Confirmada"},
		},
		{
			name:           "pending included",
			includePending: true,
			wantArgs:       map[string]any{"status_0": "Confirmada", "status_1": "Pendente"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := reservationMocks.NewMockReservation(ctrl)
			svc := service.New(repo, newConfig(tt.includePending), cache.NewMemoryCache(mocks.NewOtel()), s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

			repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]reservationModel.Reservation, error) {
					where, args := filter.GetWhereClause()

					assert.Contains(t, where, "reservations.status IN")
					assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), args["starts_from"])
					assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), args["starts_to"])

					for k, v := range tt.wantArgs {
						assert.Equal(t, v, args[k])
					}

					if !tt.includePending {
						assert.NotContains(t, args, "status_1")
					}

					return nil, nil
				})

			res, err := svc.GetMonthly(context.Background(), 3, 2024)

			require.NoError(t, err)
			assert.Equal(t, "0.00", res.Revenue)
		})
	}
}

func TestRevenueService_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.New(reservationMocks.NewMockReservation(ctrl), newConfig(false), cacheMocks.NewMockCache(ctrl), s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

	for _, period := range [][2]int{{0, 2024}, {13, 2024}, {3, 0}} {
		_, err := svc.GetMonthly(context.Background(), period[0], period[1])
		assert.ErrorIs(t, err, failure.InvalidMonthOrYear)

		_, err = svc.Export(context.Background(), period[0], period[1])
		assert.ErrorIs(t, err, failure.InvalidMonthOrYear)
	}
}

func TestRevenueService_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	c := cacheMocks.NewMockCache(ctrl)
	svc := service.New(repo, newConfig(false), c, s3Mocks.NewMockS3(ctrl), mocks.NewOtel())

	c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := svc.GetMonthly(context.Background(), 3, 2024)

	assert.Error(t, err)
}

func TestRevenueService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	s3 := s3Mocks.NewMockS3(ctrl)
	svc := service.New(repo, newConfig(false), cacheMocks.NewMockCache(ctrl), s3, mocks.NewOtel())

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]reservationModel.Reservation{stay("res-1", march(10), march(12), "100")}, nil)
	s3.EXPECT().
		UploadFileBytes(gomock.Any(), "", "revenue", "2024-03.json", "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _, _ string, body []byte) (string, error) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal(body, &doc))

			assert.Equal(t, "300.00", doc["revenue"])
			assert.Len(t, doc["lines"], 1)

			return "https://cdn.example.com/revenue/2024-03.json", nil
		})

	res, err := svc.Export(context.Background(), 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/revenue/2024-03.json", res.URL)
	assert.Equal(t, "300.00", res.Revenue)
}
