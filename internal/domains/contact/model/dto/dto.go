package dto

import (
	"hotel/internal/domains/contact/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email,max=100"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (r *CreateContactRequest) ToModel(actor string) model.Contact {
	return model.Contact{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Message:  r.Message,
		Status:   model.StatusNew,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

// ReplyContactRequest answers a message. Status defaults to Replied.
type ReplyContactRequest struct {
	ReplyContent string `json:"reply_content" validate:"required,max=5000"`
	Status       string `json:"status"        validate:"omitempty,oneof=New Replied Closed"`
}

func (r *ReplyContactRequest) StatusOrDefault() string {
	if r.Status == constant.Empty {
		return model.StatusReplied
	}

	return r.Status
}

type ContactResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	Status       string `json:"status"`
	ReplyContent string `json:"reply_content,omitempty"`
	RepliedBy    string `json:"replied_by,omitempty"`
	RepliedAt    string `json:"replied_at,omitempty"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Message = model.Message
	r.Status = model.Status
	r.ReplyContent = model.ReplyContent
	r.RepliedBy = model.RepliedBy

	if model.RepliedAt != nil {
		r.RepliedAt = model.RepliedAt.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetContactsResponse) FromModels(models []model.Contact, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Contacts[i].FromModel(mod)
	}
}

type ReplyContactResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
