package dto

import (
	"hotel/internal/domains/roomtype/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomTypeRequest struct {
	Name        string              `json:"name"        validate:"required,min=2,max=100"`
	Description string              `json:"description" validate:"omitempty,max=1000"`
	BasePrice   decimal.NullDecimal `json:"base_price"  swaggertype:"string" validate:"omitempty,money"`
	MaxPeople   *int                `json:"max_people"  validate:"omitempty,gte=1,lte=20"`
	Active      *bool               `json:"active"`
}

func (r *CreateRoomTypeRequest) ToModel(actor string) model.RoomType {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return model.RoomType{
		ID:          uuid.NewString(),
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		MaxPeople:   r.MaxPeople,
		Active:      active,
		Metadata:    gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateRoomTypeRequest struct {
	Name        string           `db:"name"        json:"name"        validate:"omitempty,min=2,max=100"`
	Description string           `db:"description" json:"description" validate:"omitempty,max=1000"`
	BasePrice   *decimal.Decimal `json:"base_price"  swaggertype:"string" validate:"omitempty,money"`
	MaxPeople   *int             `json:"max_people"  validate:"omitempty,gte=1,lte=20"`
	Active      *bool            `json:"active"`
}

func (r *UpdateRoomTypeRequest) IsEmpty() bool {
	return *r == UpdateRoomTypeRequest{}
}

func (r *UpdateRoomTypeRequest) Fields(actor string) map[string]any {
	fields := shared.TransformFields(*r, actor)

	if r.BasePrice != nil {
		fields["base_price"] = *r.BasePrice
	}

	if r.MaxPeople != nil {
		fields["max_people"] = *r.MaxPeople
	}

	if r.Active != nil {
		fields[model.FieldActive] = *r.Active
	}

	return fields
}

type RoomTypeResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty" swaggertype:"string"`
	MaxPeople   *int             `json:"max_people,omitempty"`
	Active      bool             `json:"active"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.MaxPeople = model.MaxPeople
	r.Active = model.Active

	if model.BasePrice.Valid {
		price := model.BasePrice.Decimal
		r.BasePrice = &price
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
