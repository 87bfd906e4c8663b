package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reservationModel "lodging/internal/domains/reservation/model"
	"lodging/internal/domains/revenue/model"
	"lodging/internal/domains/revenue/model/dto"
)

func TestMonthlyReport_FromReportKeepsPrecision(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	report := model.NewReport(3, 2024, []reservationModel.Reservation{
		{ID: "res-1", RoomID: "room-1", StartAt: start, EndAt: start.Add(12 * time.Hour), Status: reservationModel.StatusConfirmed, RoomRate: decimal.RequireFromString("33.335")},
		{ID: "res-2", RoomID: "room-2", StartAt: start, EndAt: start.Add(12 * time.Hour), Status: reservationModel.StatusConfirmed, RoomRate: decimal.RequireFromString("33.335")},
	})

	var doc dto.MonthlyReport
	doc.FromReport(report, "BRL", "2024-04-01T00:00:00Z")

	assert.Equal(t, "66.67", doc.Revenue)
	require.Len(t, doc.Lines, 2)

	sum := decimal.Zero
	for _, line := range doc.Lines {
		assert.Equal(t, "33.335", line.Charge)
		sum = sum.Add(decimal.RequireFromString(line.Charge))
	}

	assert.True(t, sum.Equal(decimal.RequireFromString(doc.Revenue)), "lines add up to the total")
}
