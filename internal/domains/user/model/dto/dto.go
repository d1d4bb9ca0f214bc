package dto

import (
	"time"

	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Username    string `json:"username"      validate:"required,min=3,max=50"`
	Email       string `json:"email"         validate:"required,email,max=100"`
	Password    string `json:"password"      validate:"required,min=8"`
	Role        string `json:"role"          validate:"required,oneof=admin manager client"`
	FullName    string `json:"full_name"     validate:"omitempty,max=100"`
	Phone       string `json:"phone"         validate:"omitempty,max=20"`
	Address     string `json:"address"       validate:"omitempty,max=255"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,date"`
	Gender      string `json:"gender"        validate:"omitempty,oneof=male female other"`
	Active      *bool  `json:"active"`
}

func (r *CreateUserRequest) ToModel(actor, hashedPassword string) model.User {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return model.User{
		ID:           uuid.NewString(),
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: hashedPassword,
		Role:         r.Role,
		Active:       active,
		FullName:     r.FullName,
		Phone:        r.Phone,
		Address:      r.Address,
		DateOfBirth:  parseOptionalDate(r.DateOfBirth),
		Gender:       r.Gender,
		Metadata:     gModel.NewMetadata(actor, timezone.Now()),
	}
}

// UpdateUserRequest leaves zero fields untouched. Password resets the password when set.
type UpdateUserRequest struct {
	Username    string `db:"username"  json:"username"      validate:"omitempty,min=3,max=50"`
	Email       string `db:"email"     json:"email"         validate:"omitempty,email,max=100"`
	Password    string `json:"password"      validate:"omitempty,min=8"`
	Role        string `db:"role"      json:"role"          validate:"omitempty,oneof=admin manager client"`
	FullName    string `db:"full_name" json:"full_name"     validate:"omitempty,max=100"`
	Phone       string `db:"phone"     json:"phone"         validate:"omitempty,max=20"`
	Address     string `db:"address"   json:"address"       validate:"omitempty,max=255"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,date"`
	Gender      string `db:"gender"    json:"gender"        validate:"omitempty,oneof=male female other"`
	Active      *bool  `db:"active"    json:"active"`
}

func (r *UpdateUserRequest) IsEmpty() bool {
	return *r == UpdateUserRequest{}
}

// Fields returns the columns to write, hashing is left to the caller.
func (r *UpdateUserRequest) Fields(actor string) map[string]any {
	fields := shared.TransformFields(*r, actor)

	if r.Active != nil {
		fields[model.FieldActive] = *r.Active
	}

	if date := parseOptionalDate(r.DateOfBirth); date != nil {
		fields["date_of_birth"] = *date
	}

	return fields
}

type UpdateProfileRequest struct {
	Email       string `db:"email"     json:"email"         validate:"required,email,max=100"`
	FullName    string `db:"full_name" json:"full_name"     validate:"omitempty,max=100"`
	Phone       string `db:"phone"     json:"phone"         validate:"omitempty,max=20"`
	Address     string `db:"address"   json:"address"       validate:"omitempty,max=255"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,date"`
	Gender      string `db:"gender"    json:"gender"        validate:"omitempty,oneof=male female other"`
}

func (r *UpdateProfileRequest) Fields(actor string) map[string]any {
	fields := shared.TransformFields(*r, actor)

	if date := parseOptionalDate(r.DateOfBirth); date != nil {
		fields["date_of_birth"] = *date
	}

	return fields
}

type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
	LastLogin   string `json:"last_login,omitempty"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Email = model.Email
	r.Role = model.Role
	r.Active = model.Active
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Address = model.Address
	r.Gender = model.Gender

	if model.LastLogin != nil {
		r.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}

	if model.DateOfBirth != nil {
		r.DateOfBirth = model.DateOfBirth.Format(constant.DateOnlyFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

func parseOptionalDate(value string) *time.Time {
	if value == constant.Empty {
		return nil
	}

	date, err := timezone.ParseDate(value)
	if err != nil {
		return nil
	}

	return &date
}
