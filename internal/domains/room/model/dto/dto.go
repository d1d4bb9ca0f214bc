package dto

import (
	"mime/multipart"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRoomRequest is read from a multipart form.
type CreateRoomRequest struct {
	Code          string                `json:"code"            validate:"required,max=20"`
	Name          string                `json:"name"            validate:"required,max=100"`
	RoomTypeID    string                `json:"room_type_id"    validate:"required,uuid"`
	PricePerNight string                `json:"price_per_night" validate:"required,money=positive"`
	MaxPeople     int                   `json:"max_people"      validate:"required,gte=1,lte=20"`
	Status        string                `json:"status"          validate:"omitempty,oneof=Available 'Under maintenance'"`
	Description   string                `json:"description"     validate:"omitempty,max=2000"`
	Active        *bool                 `json:"active"`
	Image         *multipart.FileHeader `json:"image"           swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/gif image/webp,maxfilesize=5"`
	ImageFile     multipart.File        `json:"-"`
}

func (r *CreateRoomRequest) ToModel(actor, imageURL string) model.Room {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	status := model.StatusAvailable
	if r.Status != constant.Empty {
		status = model.Status(r.Status)
	}

	price, _ := decimal.NewFromString(r.PricePerNight)

	return model.Room{
		ID:            uuid.NewString(),
		Code:          r.Code,
		Name:          r.Name,
		RoomTypeID:    r.RoomTypeID,
		PricePerNight: price,
		MaxPeople:     r.MaxPeople,
		Status:        status,
		Description:   r.Description,
		ImageURL:      imageURL,
		Active:        active,
		Metadata:      gModel.NewMetadata(actor, timezone.Now()),
	}
}

// UpdateRoomRequest is read from a multipart form. Setting Status back to
// Available is how staff clear a finished turnover.
type UpdateRoomRequest struct {
	Code          string                `db:"code"         json:"code"            validate:"omitempty,max=20"`
	Name          string                `db:"name"         json:"name"            validate:"omitempty,max=100"`
	RoomTypeID    string                `db:"room_type_id" json:"room_type_id"    validate:"omitempty,uuid"`
	PricePerNight string                `json:"price_per_night" validate:"omitempty,money=positive"`
	MaxPeople     int                   `db:"max_people"   json:"max_people"      validate:"omitempty,gte=1,lte=20"`
	Status        string                `db:"status"       json:"status"          validate:"omitempty,oneof=Available 'Under maintenance'"`
	Description   string                `db:"description"  json:"description"     validate:"omitempty,max=2000"`
	Active        *bool                 `json:"active"`
	Image         *multipart.FileHeader `json:"image"           swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/gif image/webp,maxfilesize=5"`
	ImageFile     multipart.File        `json:"-"`
}

func (r *UpdateRoomRequest) IsEmpty() bool {
	return r.Code == constant.Empty &&
		r.Name == constant.Empty &&
		r.RoomTypeID == constant.Empty &&
		r.PricePerNight == constant.Empty &&
		r.MaxPeople == 0 &&
		r.Status == constant.Empty &&
		r.Description == constant.Empty &&
		r.Active == nil &&
		r.Image == nil
}

func (r *UpdateRoomRequest) Fields(actor string) map[string]any {
	fields := shared.TransformFields(*r, actor)

	if price, err := decimal.NewFromString(r.PricePerNight); err == nil {
		fields[model.FieldPricePerNight] = price
	}

	if r.Active != nil {
		fields[model.FieldActive] = *r.Active
	}

	return fields
}

// SearchRoomsRequest filters the public room catalogue. CheckIn and CheckOut
// narrow results to rooms free for the whole stay.
type SearchRoomsRequest struct {
	Search     string `json:"search"       validate:"omitempty,max=100"`
	RoomTypeID string `json:"room_type_id" validate:"omitempty,uuid"`
	MinPrice   string `json:"min_price"    validate:"omitempty,money"`
	MaxPrice   string `json:"max_price"    validate:"omitempty,money"`
	CheckIn    string `json:"check_in"     validate:"required_with=CheckOut,omitempty,date"`
	CheckOut   string `json:"check_out"    validate:"required_with=CheckIn,omitempty,date"`
	Page       int    `json:"page"         validate:"omitempty,gte=1"`
}

// Window is an optional date range of an admin listing.
type Window struct {
	CheckIn  string `json:"check_in"  validate:"required_with=CheckOut,omitempty,date"`
	CheckOut string `json:"check_out" validate:"required_with=CheckIn,omitempty,date"`
}

func (w Window) IsSet() bool {
	return w.CheckIn != constant.Empty && w.CheckOut != constant.Empty
}

type StayResponse struct {
	BookingID string `json:"booking_id"`
	Code      string `json:"code"`
	GuestName string `json:"guest_name"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
}

func (r *StayResponse) FromModel(stay bookingModel.Stay) {
	r.BookingID = stay.BookingID
	r.Code = stay.Code
	r.GuestName = stay.GuestName
	r.CheckIn = stay.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = stay.CheckOut.Format(constant.DateOnlyFormat)
	r.Status = stay.Status.String()
}

type RoomResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	RoomTypeID    string          `json:"room_type_id"`
	RoomTypeName  string          `json:"room_type_name"`
	PricePerNight decimal.Decimal `json:"price_per_night" swaggertype:"string"`
	MaxPeople     int             `json:"max_people"`
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url"`
	Active        bool            `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Code = model.Code
	r.Name = model.Name
	r.RoomTypeID = model.RoomTypeID
	r.RoomTypeName = model.RoomTypeName
	r.PricePerNight = model.PricePerNight
	r.MaxPeople = model.MaxPeople
	r.Status = model.Status.String()
	r.Description = model.Description
	r.ImageURL = model.ImageURL
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

// AdminRoomResponse carries the derived status next to the stored one.
// FreeInWindow is only set when the listing asked for a date window.
type AdminRoomResponse struct {
	RoomResponse
	StoredStatus string         `json:"stored_status"`
	Bookings     []StayResponse `json:"bookings,omitempty"`
	FreeInWindow *bool          `json:"free_in_window,omitempty"`
}

func (r *AdminRoomResponse) FromModel(room model.Room, derived model.Status, stays []bookingModel.Stay) {
	r.RoomResponse.FromModel(room)
	r.StoredStatus = room.Status.String()
	r.Status = derived.String()

	if len(stays) == 0 {
		return
	}

	r.Bookings = make([]StayResponse, len(stays))
	for i, stay := range stays {
		r.Bookings[i].FromModel(stay)
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type GetAdminRoomsResponse struct {
	Rooms     []AdminRoomResponse `json:"rooms"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
}

type ReconcileResponse struct {
	RoomID         string   `json:"room_id"`
	Status         string   `json:"status"`
	Changed        bool     `json:"changed"`
	CompletedCodes []string `json:"completed_codes,omitempty"`
}

type ReconcileSummary struct {
	Checked int                 `json:"checked"`
	Changed []ReconcileResponse `json:"changed"`
}
