package revenue_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodging/infras/otel/mocks"
	revenueMocks "lodging/internal/domains/revenue/mocks"
	"lodging/internal/domains/revenue/model/dto"
	"lodging/internal/handlers/revenue"
)

func newRouter(t *testing.T) (*revenueMocks.MockRevenue, http.Handler) {
	t.Helper()

	svc := revenueMocks.NewMockRevenue(gomock.NewController(t))
	handler := revenue.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func TestGetMonthlyRevenue(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		setupMock func(svc *revenueMocks.MockRevenue)
		wantCode  int
		wantBody  string
	}{
		{
			name:  "success",
			query: "month=3&year=2024",
			setupMock: func(svc *revenueMocks.MockRevenue) {
				svc.EXPECT().GetMonthly(gomock.Any(), 3, 2024).
					Return(dto.MonthlyRevenueResponse{Month: 3, Year: 2024, Revenue: "300.00", Currency: "BRL"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"revenue":"300.00"`,
		},
		{
			name:      "month out of range",
			query:     "month=13&year=2024",
			setupMock: func(*revenueMocks.MockRevenue) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "missing year",
			query:     "month=3",
			setupMock: func(*revenueMocks.MockRevenue) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:  "storage failure",
			query: "month=3&year=2024",
			setupMock: func(svc *revenueMocks.MockRevenue) {
				svc.EXPECT().GetMonthly(gomock.Any(), 3, 2024).Return(dto.MonthlyRevenueResponse{}, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/revenue/monthly?"+tt.query, nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestExportMonthlyRevenue(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Export(gomock.Any(), 4, 2024).
		Return(dto.ExportResponse{URL: "https://reports.example.com/revenue/2024-04.json"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/revenue/monthly/export", strings.NewReader(`{"month":4,"year":2024}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024-04.json")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/revenue/monthly/export", strings.NewReader(`{"month":0,"year":2024}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
