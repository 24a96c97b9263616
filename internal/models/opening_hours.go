package models

import "time"

// One row per weekday name ("Monday" .. "Sunday"). A missing opening or
// closing time means the shop is closed that day.
type OpeningHours struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	DayOfWeek   string  `gorm:"size:10;uniqueIndex;not null" json:"day_of_week"`
	OpeningTime *string `gorm:"type:time" json:"opening_time"`
	ClosingTime *string `gorm:"type:time" json:"closing_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
