package dto

type SummaryResponse struct {
	TotalRooms      int `json:"total_rooms"`
	TotalBookings   int `json:"total_bookings"`
	TotalClients    int `json:"total_clients"`
	PendingBookings int `json:"pending_bookings"`
}
