package constant

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleClient  = "client"
)

// Event types published to kafka and stored by the audit consumer.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"
	EventRoomStatusChanged    = "room.status_changed"
)

// Uploaded images live under ImagePathPrefix/<directory>/<object>.
const (
	ImagePathPrefix    = "/v1/images"
	ImageDirectoryRoom = "rooms"
	ImageDirectoryBlog = "blogs"
)
