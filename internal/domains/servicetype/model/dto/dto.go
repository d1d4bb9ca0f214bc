package dto

import (
	"hotel/internal/domains/servicetype/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceTypeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func (r *CreateServiceTypeRequest) ToModel(actor string) model.ServiceType {
	return model.ServiceType{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateServiceTypeRequest struct {
	Name string `db:"name" json:"name" validate:"required,min=2,max=100"`
}

type ServiceTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *ServiceTypeResponse) FromModel(model model.ServiceType) {
	r.ID = model.ID
	r.Name = model.Name
	r.Metadata.FromModel(model.Metadata)
}

type GetServiceTypesResponse struct {
	ServiceTypes []ServiceTypeResponse `json:"service_types"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetServiceTypesResponse) FromModels(models []model.ServiceType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.ServiceTypes = make([]ServiceTypeResponse, len(models))
	for i, mod := range models {
		r.ServiceTypes[i].FromModel(mod)
	}
}
