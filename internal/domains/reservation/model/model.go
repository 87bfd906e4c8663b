package model

import (
	"database/sql"
	"lodging/shared/dto"
	"lodging/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldRoomID  = "room_id"
	FieldStartAt = "start_at"
	FieldEndAt   = "end_at"
	FieldStatus  = "status"
)

type Reservation struct {
	ID      string    `db:"id"`
	UserID  string    `db:"user_id"`
	RoomID  string    `db:"room_id"`
	StartAt time.Time `db:"start_at"`
	EndAt   time.Time `db:"end_at"`
	Status  Status    `db:"status"`

	RoomNumber int             `column:"number"     db:"room_number" table:"rooms"`
	RoomRate   decimal.Decimal `column:"rate"       db:"room_rate"   table:"rooms"`
	LodgingID  string          `column:"lodging_id" db:"lodging_id"  table:"rooms"`
	UserName   sql.NullString  `column:"name"       db:"user_name"   table:"users"`
	UserEmail  sql.NullString  `column:"email"      db:"user_email"  table:"users"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "INNER JOIN rooms ON rooms.id = reservations.room_id LEFT JOIN users ON users.id = reservations.user_id"
}

// Overlaps reports whether the candidate [start, end) collides with an
// existing [rStart, rEnd). Only the candidate endpoints are tested: a
// candidate that strictly contains an existing reservation does not collide.
func Overlaps(start, end, rStart, rEnd time.Time) bool {
	startsInside := !start.Before(rStart) && start.Before(rEnd)
	endsInside := end.After(rStart) && !end.After(rEnd)

	return startsInside || endsInside
}

// IsAvailable reports whether no existing reservation of the room collides
// with [start, end). Reservations of every status count.
func IsAvailable(start, end time.Time, existing []Reservation) bool {
	for _, r := range existing {
		if Overlaps(start, end, r.StartAt, r.EndAt) {
			return false
		}
	}

	return true
}

// DateRangeFilter selects reservations that start inside, end inside or span
// the closed window [start, end].
func DateRangeFilter(start, end time.Time) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{ArgName: "starts_from", Field: FieldStartAt, Value: start, Operator: dto.FilterOperatorGreaterEq, Table: TableName},
					dto.Filter{ArgName: "starts_to", Field: FieldStartAt, Value: end, Operator: dto.FilterOperatorLessEq, Table: TableName},
				},
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{ArgName: "ends_from", Field: FieldEndAt, Value: start, Operator: dto.FilterOperatorGreaterEq, Table: TableName},
					dto.Filter{ArgName: "ends_to", Field: FieldEndAt, Value: end, Operator: dto.FilterOperatorLessEq, Table: TableName},
				},
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{ArgName: "spans_from", Field: FieldStartAt, Value: start, Operator: dto.FilterOperatorLessEq, Table: TableName},
					dto.Filter{ArgName: "spans_to", Field: FieldEndAt, Value: end, Operator: dto.FilterOperatorGreaterEq, Table: TableName},
				},
			},
		},
	}
}

// HalfOpenWindowFilter is DateRangeFilter over [start, end): a reservation
// touching end exactly belongs to the next window.
func HalfOpenWindowFilter(start, end time.Time) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{ArgName: "starts_from", Field: FieldStartAt, Value: start, Operator: dto.FilterOperatorGreaterEq, Table: TableName},
					dto.Filter{ArgName: "starts_to", Field: FieldStartAt, Value: end, Operator: dto.FilterOperatorLess, Table: TableName},
				},
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{ArgName: "ends_from", Field: FieldEndAt, Value: start, Operator: dto.FilterOperatorGreaterEq, Table: TableName},
					dto.Filter{ArgName: "ends_to", Field: FieldEndAt, Value: end, Operator: dto.FilterOperatorLess, Table: TableName},
				},
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{ArgName: "spans_from", Field: FieldStartAt, Value: start, Operator: dto.FilterOperatorLessEq, Table: TableName},
					dto.Filter{ArgName: "spans_to", Field: FieldEndAt, Value: end, Operator: dto.FilterOperatorGreaterEq, Table: TableName},
				},
			},
		},
	}
}

// StatusFilter matches any of the given statuses.
func StatusFilter(statuses ...Status) dto.Filter {
	labels := make([]string, len(statuses))
	for i, s := range statuses {
		labels[i] = s.String()
	}

	return dto.Filter{Field: FieldStatus, Value: labels, Operator: dto.FilterOperatorIn, Table: TableName}
}
