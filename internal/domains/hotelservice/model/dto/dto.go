package dto

import (
	"hotel/internal/domains/hotelservice/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateServiceRequest struct {
	ServiceTypeID string          `json:"service_type_id" validate:"required,uuid"`
	Name          string          `json:"name"            validate:"required,min=2,max=100"`
	Description   string          `json:"description"     validate:"omitempty,max=1000"`
	UnitPrice     decimal.Decimal `json:"unit_price"      swaggertype:"string" validate:"required,money"`
	Unit          string          `json:"unit"            validate:"omitempty,max=50"`
	Active        *bool           `json:"active"`
}

func (r *CreateServiceRequest) ToModel(actor string) model.Service {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return model.Service{
		ID:            uuid.NewString(),
		ServiceTypeID: r.ServiceTypeID,
		Name:          r.Name,
		Description:   r.Description,
		UnitPrice:     r.UnitPrice,
		Unit:          r.Unit,
		Active:        active,
		Metadata:      gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateServiceRequest struct {
	ServiceTypeID string           `db:"service_type_id" json:"service_type_id" validate:"omitempty,uuid"`
	Name          string           `db:"name"            json:"name"            validate:"omitempty,min=2,max=100"`
	Description   string           `db:"description"     json:"description"     validate:"omitempty,max=1000"`
	UnitPrice     *decimal.Decimal `json:"unit_price"      swaggertype:"string" validate:"omitempty,money"`
	Unit          string           `db:"unit"            json:"unit"            validate:"omitempty,max=50"`
	Active        *bool            `json:"active"`
}

func (r *UpdateServiceRequest) IsEmpty() bool {
	return *r == UpdateServiceRequest{}
}

func (r *UpdateServiceRequest) Fields(actor string) map[string]any {
	fields := shared.TransformFields(*r, actor)

	if r.UnitPrice != nil {
		fields[model.FieldUnitPrice] = *r.UnitPrice
	}

	if r.Active != nil {
		fields[model.FieldActive] = *r.Active
	}

	return fields
}

type ServiceResponse struct {
	ID              string          `json:"id"`
	ServiceTypeID   string          `json:"service_type_id"`
	ServiceTypeName string          `json:"service_type_name"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Unit            string          `json:"unit"`
	Active          bool            `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.ServiceTypeID = model.ServiceTypeID
	r.ServiceTypeName = model.ServiceTypeName
	r.Name = model.Name
	r.Description = model.Description
	r.UnitPrice = model.UnitPrice
	r.Unit = model.Unit
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
