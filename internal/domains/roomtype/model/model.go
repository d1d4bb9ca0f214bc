package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_types"
	EntityName = "room type"

	FieldID     = "id"
	FieldName   = "name"
	FieldActive = "active"
)

type RoomType struct {
	ID          string              `db:"id"`
	Name        string              `db:"name"`
	Description string              `db:"description"`
	BasePrice   decimal.NullDecimal `db:"base_price"`
	MaxPeople   *int                `db:"max_people"`
	Active      bool                `db:"active"`
	model.Metadata
}
