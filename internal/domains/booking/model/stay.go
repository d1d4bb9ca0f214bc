package model

import "time"

// Stay is the occupancy view of a booking on one room.
type Stay struct {
	DetailID  string    `db:"id"`
	BookingID string    `db:"booking_id"`
	RoomID    string    `db:"room_id"`
	Code      string    `db:"code"       table:"bookings"`
	GuestName string    `db:"guest_name" table:"bookings"`
	CheckIn   time.Time `db:"check_in"   table:"bookings"`
	CheckOut  time.Time `db:"check_out"  table:"bookings"`
	Status    Status    `db:"status"     table:"bookings"`
}

func (Stay) GetJoinQuery() string {
	return "JOIN bookings ON bookings.id = booking_details.booking_id"
}

func (s Stay) Period() Period {
	return Period{CheckIn: s.CheckIn, CheckOut: s.CheckOut}
}
