package dto

import (
	"lodging/internal/domains/room/model"
	"lodging/shared"
	gDto "lodging/shared/dto"
	gModel "lodging/shared/model"
	"lodging/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	LodgingID string          `json:"lodging_id" validate:"required"`
	Number    int             `json:"number"     validate:"gt=0"`
	Rate      decimal.Decimal `json:"rate"       validate:"gt=0"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:        uuid.NewString(),
		LodgingID: c.LodgingID,
		Number:    c.Number,
		Rate:      c.Rate,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	LodgingID string           `db:"lodging_id" json:"lodging_id" validate:"omitempty"`
	Number    *int             `db:"number"     json:"number"     validate:"omitempty,gt=0"`
	Rate      *decimal.Decimal `db:"rate"       json:"rate"       validate:"omitempty,gt=0"`
}

func (u *UpdateRoomRequest) Empty() bool {
	return u.LodgingID == "" && u.Number == nil && u.Rate == nil
}

type RoomResponse struct {
	ID          string `json:"id"`
	LodgingID   string `json:"lodging_id"`
	LodgingName string `json:"lodging_name,omitempty"`
	Number      int    `json:"number"`
	Rate        string `json:"rate"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.LodgingID = model.LodgingID
	r.LodgingName = model.LodgingName
	r.Number = model.Number
	r.Rate = shared.FormatMoney(model.Rate)
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
