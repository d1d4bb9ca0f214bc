package dto

import (
	"time"

	"hotel/internal/domains/booking/model"
	hotelServiceModel "hotel/internal/domains/hotelservice/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteRequest prices a stay without booking it.
type QuoteRequest struct {
	RoomID     string   `json:"room_id"     validate:"required,uuid"`
	CheckIn    string   `json:"check_in"    validate:"required,date"`
	CheckOut   string   `json:"check_out"   validate:"required,date"`
	ServiceIDs []string `json:"service_ids" validate:"omitempty,unique,dive,uuid"`
}

type CreateBookingRequest struct {
	QuoteRequest
	GuestName    string `json:"guest_name"    validate:"required,max=100"`
	GuestPhone   string `json:"guest_phone"   validate:"required,max=20"`
	GuestEmail   string `json:"guest_email"   validate:"required,email,max=100"`
	GuestAddress string `json:"guest_address" validate:"omitempty,max=255"`
}

// ToModel builds a pending booking. The code is assigned by the caller.
func (r *CreateBookingRequest) ToModel(userID, actor string, period model.Period, quote model.Quote, now time.Time) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		UserID:       userID,
		GuestName:    r.GuestName,
		GuestPhone:   r.GuestPhone,
		GuestEmail:   r.GuestEmail,
		GuestAddress: r.GuestAddress,
		BookingDate:  now,
		CheckIn:      period.CheckIn,
		CheckOut:     period.CheckOut,
		Nights:       quote.Nights,
		Subtotal:     quote.Subtotal,
		VAT:          quote.VAT,
		Total:        quote.Total,
		Status:       model.StatusPending,
		Metadata:     gModel.NewMetadata(actor, now),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Cancelled Completed"`
}

type DetailResponse struct {
	RoomID        string          `json:"room_id"`
	RoomCode      string          `json:"room_code"`
	RoomName      string          `json:"room_name"`
	RoomTypeName  string          `json:"room_type_name,omitempty"`
	PricePerNight decimal.Decimal `json:"price_per_night" swaggertype:"string"`
}

func (r *DetailResponse) FromModel(detail model.Detail) {
	r.RoomID = detail.RoomID
	r.RoomCode = detail.RoomCode
	r.RoomName = detail.RoomName
	r.RoomTypeName = detail.RoomTypeName
	r.PricePerNight = detail.PricePerNight
}

type ServiceLineResponse struct {
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"  swaggertype:"string"`
	TotalPrice  decimal.Decimal `json:"total_price" swaggertype:"string"`
}

func (r *ServiceLineResponse) FromModel(line model.ServiceLine) {
	r.ServiceID = line.ServiceID
	r.ServiceName = line.ServiceName
	r.Unit = line.ServiceUnit
	r.Quantity = line.Quantity
	r.UnitPrice = line.UnitPrice
	r.TotalPrice = line.TotalPrice
}

type QuoteResponse struct {
	RoomID        string                `json:"room_id"`
	RoomCode      string                `json:"room_code"`
	CheckIn       string                `json:"check_in"`
	CheckOut      string                `json:"check_out"`
	Nights        int                   `json:"nights"`
	PricePerNight decimal.Decimal       `json:"price_per_night" swaggertype:"string"`
	RoomSubtotal  decimal.Decimal       `json:"room_subtotal"   swaggertype:"string"`
	ServicesTotal decimal.Decimal       `json:"services_total"  swaggertype:"string"`
	Subtotal      decimal.Decimal       `json:"subtotal"        swaggertype:"string"`
	VAT           decimal.Decimal       `json:"vat"             swaggertype:"string"`
	Total         decimal.Decimal       `json:"total"           swaggertype:"string"`
	Services      []ServiceLineResponse `json:"services"`
}

func (r *QuoteResponse) FromModel(roomID, roomCode string, period model.Period, quote model.Quote, lines []model.ServiceLine) {
	r.RoomID = roomID
	r.RoomCode = roomCode
	r.CheckIn = period.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = period.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = quote.Nights
	r.PricePerNight = quote.PricePerNight
	r.RoomSubtotal = quote.RoomSubtotal
	r.ServicesTotal = quote.ServicesTotal
	r.Subtotal = quote.Subtotal
	r.VAT = quote.VAT
	r.Total = quote.Total

	r.Services = make([]ServiceLineResponse, len(lines))
	for i, line := range lines {
		r.Services[i].FromModel(line)
	}
}

type BookingResponse struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	UserID        string                `json:"user_id"`
	OwnerUsername string                `json:"owner_username,omitempty"`
	GuestName     string                `json:"guest_name"`
	GuestPhone    string                `json:"guest_phone"`
	GuestEmail    string                `json:"guest_email"`
	GuestAddress  string                `json:"guest_address"`
	BookingDate   string                `json:"booking_date"`
	CheckIn       string                `json:"check_in"`
	CheckOut      string                `json:"check_out"`
	Nights        int                   `json:"nights"`
	Subtotal      decimal.Decimal       `json:"subtotal" swaggertype:"string"`
	VAT           decimal.Decimal       `json:"vat"      swaggertype:"string"`
	Total         decimal.Decimal       `json:"total"    swaggertype:"string"`
	Status        string                `json:"status"`
	Rooms         []DetailResponse      `json:"rooms,omitempty"`
	Services      []ServiceLineResponse `json:"services,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Code = model.Code
	r.UserID = model.UserID
	r.OwnerUsername = model.OwnerUsername
	r.GuestName = model.GuestName
	r.GuestPhone = model.GuestPhone
	r.GuestEmail = model.GuestEmail
	r.GuestAddress = model.GuestAddress
	r.BookingDate = model.BookingDate.Format(constant.DateFormat)
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights
	r.Subtotal = model.Subtotal
	r.VAT = model.VAT
	r.Total = model.Total
	r.Status = model.Status.String()
	r.Metadata.FromModel(model.Metadata)
}

// WithLines attaches the room and service lines of the booking.
func (r *BookingResponse) WithLines(details []model.Detail, lines []model.ServiceLine) {
	r.Rooms = make([]DetailResponse, len(details))
	for i, detail := range details {
		r.Rooms[i].FromModel(detail)
	}

	r.Services = make([]ServiceLineResponse, len(lines))
	for i, line := range lines {
		r.Services[i].FromModel(line)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type UpdateStatusResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ServiceLines snapshots the selected services at quantity one.
func ServiceLines(bookingID string, services []hotelServiceModel.Service) []model.ServiceLine {
	lines := make([]model.ServiceLine, len(services))
	for i, service := range services {
		lines[i] = model.ServiceLine{
			ID:          uuid.NewString(),
			BookingID:   bookingID,
			ServiceID:   service.ID,
			ServiceName: service.Name,
			ServiceUnit: service.Unit,
			Quantity:    1,
			UnitPrice:   service.UnitPrice,
			TotalPrice:  service.UnitPrice,
		}
	}

	return lines
}
