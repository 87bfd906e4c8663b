package dto

import (
	"lodging/internal/domains/revenue/model"
	"lodging/shared"
	"lodging/shared/constant"
)

type MonthlyRevenueResponse struct {
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	Revenue  string `json:"revenue"`
	Currency string `json:"currency"`
}

func (r *MonthlyRevenueResponse) FromReport(report model.Report, currency string) {
	r.Month = report.Month
	r.Year = report.Year
	r.Revenue = shared.FormatMoney(report.Total)
	r.Currency = currency
}

type ReportLine struct {
	ReservationID string `json:"reservation_id"`
	RoomID        string `json:"room_id"`
	RoomNumber    int    `json:"room_number"`
	StartAt       string `json:"start_at"`
	EndAt         string `json:"end_at"`
	Status        string `json:"status"`
	Nights        int64  `json:"nights"`
	Rate          string `json:"rate"`
	Charge        string `json:"charge"`
}

// MonthlyReport is the exported document.
type MonthlyReport struct {
	MonthlyRevenueResponse
	GeneratedAt string       `json:"generated_at"`
	Lines       []ReportLine `json:"lines"`
}

func (r *MonthlyReport) FromReport(report model.Report, currency, generatedAt string) {
	r.MonthlyRevenueResponse.FromReport(report, currency)
	r.GeneratedAt = generatedAt

	r.Lines = make([]ReportLine, len(report.Lines))
	for i, line := range report.Lines {
		r.Lines[i] = ReportLine{
			ReservationID: line.ReservationID,
			RoomID:        line.RoomID,
			RoomNumber:    line.RoomNumber,
			StartAt:       line.StartAt.Format(constant.DateFormat),
			EndAt:         line.EndAt.Format(constant.DateFormat),
			Status:        line.Status.String(),
			Nights:        line.Nights,
			Rate:          shared.FormatMoney(line.Rate),
			Charge:        shared.FormatMoney(line.Charge),
		}
	}
}

type ExportResponse struct {
	URL string `json:"url"`
	MonthlyRevenueResponse
}

type ExportRequest struct {
	Month int `json:"month" validate:"gte=1,lte=12"`
	Year  int `json:"year"  validate:"gte=1"`
}
