package models

import "time"

// BookingReport aggregates confirmed and completed bookings intersecting a
// period. Revenue is nights times the nightly price at booking time.
type BookingReport struct {
	Count   int     `json:"count"`
	Nights  int     `json:"nights"`
	Revenue float64 `json:"revenue"`
}

type AccommodationIncome struct {
	AccommodationID   int64   `json:"accommodation_id"`
	AccommodationName string  `json:"accommodation_name"`
	TotalIncome       float64 `json:"total_income"`
}

type PeriodBookingCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

type RoomAvailability struct {
	Date      time.Time `json:"date"`
	RoomID    int64     `json:"room_id"`
	Available bool      `json:"available"`
	Source    string    `json:"source,omitempty"` // booking or block when unavailable
}
