package dto

import (
	"lodging/internal/domains/lodging/model"
	"lodging/shared"
	gDto "lodging/shared/dto"
	gModel "lodging/shared/model"
	"lodging/shared/timezone"

	"github.com/google/uuid"
)

type CreateLodgingRequest struct {
	Name     string `json:"name"     validate:"required,max=150"`
	Address  string `json:"address"  validate:"required,max=255"`
	Location string `json:"location" validate:"required,max=150"`
}

func (c *CreateLodgingRequest) ToModel(user string) model.Lodging {
	return model.Lodging{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Address:  c.Address,
		Location: c.Location,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateLodgingRequest struct {
	Name     string `db:"name"     json:"name"     validate:"omitempty,max=150"`
	Address  string `db:"address"  json:"address"  validate:"omitempty,max=255"`
	Location string `db:"location" json:"location" validate:"omitempty,max=150"`
}

type LodgingResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Location string `json:"location"`
	gDto.Metadata
}

func (r *LodgingResponse) FromModel(model model.Lodging) {
	r.ID = model.ID
	r.Name = model.Name
	r.Address = model.Address
	r.Location = model.Location
	r.Metadata.FromModel(model.Metadata)
}

type GetLodgingsResponse struct {
	Lodgings  []LodgingResponse `json:"lodgings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetLodgingsResponse) FromModels(models []model.Lodging, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Lodgings = make([]LodgingResponse, len(models))
	for i, mod := range models {
		r.Lodgings[i].FromModel(mod)
	}
}
