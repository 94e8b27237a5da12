package models

import "time"

type Accommodation struct {
	ID          int64     `yaml:"id" json:"id"`
	HostID      int64     `yaml:"host_id" json:"host_id"`
	Name        string    `yaml:"name" json:"name"`
	Location    string    `yaml:"location" json:"location"`
	Description string    `yaml:"description" json:"description"`
	Services    string    `yaml:"services" json:"services"`
	Type        string    `yaml:"type" json:"type"` // hotel, cabin, hostel, apartment
	PetFriendly bool      `yaml:"pet_friendly" json:"pet_friendly"`
	IsActive    bool      `yaml:"is_active" json:"is_active"`
	CreatedAt   time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at" json:"updated_at"`
}
