package models

import "time"

// Duration is minutes, Price is the smallest currency unit.
// Both are copied into AppointmentService at booking time, so edits here
// never change historical appointments.
type Service struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:30;uniqueIndex;not null" json:"name"`
	ImagePath *string `gorm:"type:text" json:"image_path"`
	Duration  int     `gorm:"not null" json:"duration"`
	Price     int     `gorm:"not null" json:"price"`
	IsBooked  bool    `gorm:"not null;default:false" json:"is_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
