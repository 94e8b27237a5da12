package models

import "time"

type Room struct {
	ID              int64     `yaml:"id" json:"id"`
	AccommodationID int64     `yaml:"accommodation_id" json:"accommodation_id"`
	RoomType        string    `yaml:"room_type" json:"room_type"`
	Capacity        int       `yaml:"capacity" json:"capacity"`
	Beds            int       `yaml:"beds" json:"beds"`
	Amenities       string    `yaml:"amenities" json:"amenities"`
	BasePrice       float64   `yaml:"base_price" json:"base_price"`
	MinStay         int       `yaml:"min_stay" json:"min_stay"`
	MaxStay         int       `yaml:"max_stay" json:"max_stay"` // 0 means no upper bound
	IsAvailable     bool      `yaml:"is_available" json:"is_available"`
	CreatedAt       time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt       time.Time `yaml:"updated_at" json:"updated_at"`
}
