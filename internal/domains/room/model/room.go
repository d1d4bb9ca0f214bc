package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldCode          = "code"
	FieldName          = "name"
	FieldRoomTypeID    = "room_type_id"
	FieldPricePerNight = "price_per_night"
	FieldMaxPeople     = "max_people"
	FieldStatus        = "status"
	FieldDescription   = "description"
	FieldImageURL      = "image_url"
	FieldActive        = "active"
)

type Room struct {
	ID            string          `db:"id"`
	Code          string          `db:"code"`
	Name          string          `db:"name"`
	RoomTypeID    string          `db:"room_type_id"`
	RoomTypeName  string          `db:"room_type_name" table:"room_types" column:"name"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	MaxPeople     int             `db:"max_people"`
	Status        Status          `db:"status"`
	Description   string          `db:"description"`
	ImageURL      string          `db:"image_url"`
	Active        bool            `db:"active"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = rooms.room_type_id"
}

// IsBookable reports whether guests may see and book the room.
func (r Room) IsBookable() bool {
	return r.Active && r.Status == StatusAvailable
}
