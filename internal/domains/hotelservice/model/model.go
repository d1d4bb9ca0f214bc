package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID            = "id"
	FieldServiceTypeID = "service_type_id"
	FieldName          = "name"
	FieldUnitPrice     = "unit_price"
	FieldActive        = "active"
)

// Service is an add-on a guest can order with a booking.
type Service struct {
	ID              string          `db:"id"`
	ServiceTypeID   string          `db:"service_type_id"`
	ServiceTypeName string          `db:"service_type_name" table:"service_types" column:"name"`
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	Unit            string          `db:"unit"`
	Active          bool            `db:"active"`
	model.Metadata
}

func (Service) GetJoinQuery() string {
	return "LEFT JOIN service_types ON service_types.id = services.service_type_id"
}
