package dto

import (
	"lodging/internal/domains/reservation/model"
	roomModel "lodging/internal/domains/room/model"
	"lodging/shared"
	"lodging/shared/constant"
	gDto "lodging/shared/dto"
	"lodging/shared/failure"
	gModel "lodging/shared/model"
	"lodging/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID  string    `json:"room_id"  validate:"required"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at"   validate:"required,gtfield=StartAt"`
	Status  string    `json:"status"   validate:"omitempty,oneof=Pendente Confirmada Cancelada pending confirmed cancelled"`
}

// ToModel normalizes both instants to UTC. A missing status means Pending.
func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	status := model.StatusPending

	if c.Status != constant.Empty {
		parsed, err := model.ParseStatus(c.Status)
		if err != nil {
			return model.Reservation{}, failure.BadRequest(err) //nolint:wrapcheck
		}

		status = parsed
	}

	start, end := c.StartAt.UTC(), c.EndAt.UTC()
	if !end.After(start) {
		return model.Reservation{}, failure.InvalidDateRange
	}

	return model.Reservation{
		ID:       uuid.NewString(),
		UserID:   user,
		RoomID:   c.RoomID,
		StartAt:  start,
		EndAt:    end,
		Status:   status,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

// UpdateReservationRequest replaces the schedule and status. Room and owner never change.
type UpdateReservationRequest struct {
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at"   validate:"required,gtfield=StartAt"`
	Status  string    `json:"status"   validate:"required,oneof=Pendente Confirmada Cancelada pending confirmed cancelled"`
}

func (u *UpdateReservationRequest) ToFields(user string) (map[string]any, error) {
	status, err := model.ParseStatus(u.Status)
	if err != nil {
		return nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	start, end := u.StartAt.UTC(), u.EndAt.UTC()
	if !end.After(start) {
		return nil, failure.InvalidDateRange
	}

	return map[string]any{
		model.FieldStartAt:       start,
		model.FieldEndAt:         end,
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, nil
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
	Available bool   `json:"available"`
}

type RoomSummary struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Rate      string `json:"rate"`
	LodgingID string `json:"lodging_id"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type ReservationResponse struct {
	ID      string      `json:"id"`
	StartAt string      `json:"start_at"`
	EndAt   string      `json:"end_at"`
	Status  string      `json:"status"`
	Room    RoomSummary `json:"room"`
	User    UserSummary `json:"user"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.StartAt = model.StartAt.UTC().Format(constant.DateFormat)
	r.EndAt = model.EndAt.UTC().Format(constant.DateFormat)
	r.Status = model.Status.String()
	r.Room = RoomSummary{
		ID:        model.RoomID,
		Number:    model.RoomNumber,
		Rate:      shared.FormatMoney(model.RoomRate),
		LodgingID: model.LodgingID,
	}
	r.User = UserSummary{
		ID:    model.UserID,
		Name:  model.UserName.String,
		Email: model.UserEmail.String,
	}
	r.Metadata.FromModel(model.Metadata)
}

// WithRoom attaches the resolved room to a reservation that was built before insertion.
func WithRoom(reservation model.Reservation, room roomModel.Room) model.Reservation {
	reservation.RoomNumber = room.Number
	reservation.RoomRate = room.Rate
	reservation.LodgingID = room.LodgingID

	return reservation
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Reservations = FromModels(models)
}

func FromModels(models []model.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
