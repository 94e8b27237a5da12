package models

import "time"

// AvailabilityBlock is an owner-imposed unavailability window for a room,
// independent of bookings. Dates follow half-open [StartDate, EndDate).
type AvailabilityBlock struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
