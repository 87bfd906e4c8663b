package model

import (
	"time"

	reservationModel "lodging/internal/domains/reservation/model"
	"lodging/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	EntityName = "revenue"

	day = 24 * time.Hour
)

// BillableNights counts whole 24h periods between start and end, plus one.
// A stay ending at the exact instant it started the next day bills two nights.
func BillableNights(start, end time.Time) int64 {
	return int64(end.Sub(start)/day) + 1
}

// Charge is the room rate times the billable nights of the reservation.
func Charge(r reservationModel.Reservation) decimal.Decimal {
	return r.RoomRate.Mul(decimal.NewFromInt(BillableNights(r.StartAt, r.EndAt)))
}

// MonthWindow returns [first instant of month, first instant of next month) in UTC.
func MonthWindow(month, year int) (time.Time, time.Time) {
	start := timezone.MonthStart(month, year)

	return start, start.AddDate(0, 1, 0)
}

// InWindow reports whether r starts in, ends in or spans the half-open window.
func InWindow(r reservationModel.Reservation, windowStart, windowEnd time.Time) bool {
	start, end := r.StartAt.UTC(), r.EndAt.UTC()

	startsIn := !start.Before(windowStart) && start.Before(windowEnd)
	endsIn := !end.Before(windowStart) && end.Before(windowEnd)
	spans := !start.After(windowStart) && !end.Before(windowEnd)

	return startsIn || endsIn || spans
}

// Line is the contribution of one reservation to a monthly total.
type Line struct {
	ReservationID string
	RoomID        string
	RoomNumber    int
	StartAt       time.Time
	EndAt         time.Time
	Status        reservationModel.Status
	Nights        int64
	Rate          decimal.Decimal
	Charge        decimal.Decimal
}

type Report struct {
	Month int
	Year  int
	Total decimal.Decimal
	Lines []Line
}

// NewReport sums the full charge of every reservation once. Callers pass
// reservations already selected for the month.
func NewReport(month, year int, reservations []reservationModel.Reservation) Report {
	report := Report{Month: month, Year: year, Total: decimal.Zero, Lines: make([]Line, 0, len(reservations))}

	for _, r := range reservations {
		charge := Charge(r)

		report.Total = report.Total.Add(charge)
		report.Lines = append(report.Lines, Line{
			ReservationID: r.ID,
			RoomID:        r.RoomID,
			RoomNumber:    r.RoomNumber,
			StartAt:       r.StartAt.UTC(),
			EndAt:         r.EndAt.UTC(),
			Status:        r.Status,
			Nights:        BillableNights(r.StartAt, r.EndAt),
			Rate:          r.RoomRate,
			Charge:        charge,
		})
	}

	return report
}
