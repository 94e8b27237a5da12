package models

import "time"

type Booking struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	RoomID     int64     `json:"room_id"`
	GuestID    int64     `json:"guest_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Guests     int       `json:"guests"`
	Status     string    `json:"status"` // pending, confirmed, cancelled, completed
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int64     `json:"version"`
}

// Nights returns the stay length for the half-open [StartDate, EndDate) range.
func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// Occupies reports whether the booking renders its date range unavailable.
// Cancelled and completed bookings free the calendar.
func (b *Booking) Occupies() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
