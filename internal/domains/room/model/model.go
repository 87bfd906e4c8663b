package model

import (
	"lodging/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldLodgingID = "lodging_id"
	FieldNumber    = "number"
	FieldRate      = "rate"
)

type Room struct {
	ID          string          `db:"id"`
	LodgingID   string          `db:"lodging_id"`
	Number      int             `db:"number"`
	Rate        decimal.Decimal `db:"rate"`
	LodgingName string          `column:"name" db:"lodging_name" table:"lodgings"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "INNER JOIN lodgings ON lodgings.id = rooms.lodging_id"
}
