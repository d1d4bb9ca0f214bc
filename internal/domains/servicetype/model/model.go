package model

import "hotel/shared/model"

const (
	TableName  = "service_types"
	EntityName = "service type"

	FieldID   = "id"
	FieldName = "name"
)

type ServiceType struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}
