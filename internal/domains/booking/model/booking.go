package model

import (
	"fmt"
	"strings"
	"time"

	"hotel/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TableName            = "bookings"
	DetailTableName      = "booking_details"
	ServiceLineTableName = "booking_services"
	EntityName           = "booking"
	DetailEntityName     = "booking detail"
	ServiceEntityName    = "booking service"

	FieldID          = "id"
	FieldCode        = "code"
	FieldUserID      = "user_id"
	FieldGuestName   = "guest_name"
	FieldGuestEmail  = "guest_email"
	FieldBookingDate = "booking_date"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldStatus      = "status"
	FieldBookingID   = "booking_id"
	FieldRoomID      = "room_id"
	FieldServiceID   = "service_id"
)

const (
	codePrefix       = "BK"
	codeTimestamp    = "20060102150405"
	codeRandomLength = 4

	// MaxCodeAttempts bounds how often creation retries after a code collision.
	MaxCodeAttempts = 3
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// IsCancellable covers both guest and staff cancellation.
func (s Status) IsCancellable() bool {
	return s.CanTransitionTo(StatusCancelled)
}

type Booking struct {
	ID            string          `db:"id"`
	Code          string          `db:"code"`
	UserID        string          `db:"user_id"`
	OwnerUsername string          `db:"owner_username" table:"users" column:"username"`
	OwnerEmail    string          `db:"owner_email"    table:"users" column:"email"`
	GuestName     string          `db:"guest_name"`
	GuestPhone    string          `db:"guest_phone"`
	GuestEmail    string          `db:"guest_email"`
	GuestAddress  string          `db:"guest_address"`
	BookingDate   time.Time       `db:"booking_date"`
	CheckIn       time.Time       `db:"check_in"`
	CheckOut      time.Time       `db:"check_out"`
	Nights        int             `db:"nights"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	VAT           decimal.Decimal `db:"vat"`
	Total         decimal.Decimal `db:"total"`
	Status        Status          `db:"status"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = bookings.user_id"
}

func (b Booking) Period() Period {
	return Period{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// Recipient is where booking notifications go: the guest email, else the owner's.
func (b Booking) Recipient() string {
	if b.GuestEmail != "" {
		return b.GuestEmail
	}

	return b.OwnerEmail
}

// Detail is the room line of a booking with the nightly price at booking time.
type Detail struct {
	ID            string          `db:"id"`
	BookingID     string          `db:"booking_id"`
	RoomID        string          `db:"room_id"`
	RoomCode      string          `db:"room_code"      table:"rooms"      column:"code"`
	RoomName      string          `db:"room_name"      table:"rooms"      column:"name"`
	RoomTypeName  string          `db:"room_type_name" table:"room_types" column:"name"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
}

func (Detail) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = booking_details.room_id LEFT JOIN room_types ON room_types.id = rooms.room_type_id"
}

// ServiceLine is an add-on service of a booking with its price at booking time.
type ServiceLine struct {
	ID          string          `db:"id"`
	BookingID   string          `db:"booking_id"`
	ServiceID   string          `db:"service_id"`
	ServiceName string          `db:"service_name" table:"services" column:"name"`
	ServiceUnit string          `db:"service_unit" table:"services" column:"unit"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TotalPrice  decimal.Decimal `db:"total_price"`
}

func (ServiceLine) GetJoinQuery() string {
	return "JOIN services ON services.id = booking_services.service_id"
}

// NewCode builds a booking code such as BK20240601093000A1B2.
func NewCode(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:codeRandomLength]

	return fmt.Sprintf("%s%s%s", codePrefix, now.Format(codeTimestamp), strings.ToUpper(random))
}
