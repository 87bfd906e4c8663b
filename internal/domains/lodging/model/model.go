package model

import "lodging/shared/model"

const (
	TableName  = "lodgings"
	EntityName = "lodging"

	FieldID       = "id"
	FieldName     = "name"
	FieldAddress  = "address"
	FieldLocation = "location"
)

type Lodging struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Address  string `db:"address"`
	Location string `db:"location"`
	model.Metadata
}
