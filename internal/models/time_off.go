package models

import "time"

// Shop-wide unavailability interval [Start, End), independent of daily hours.
type TimeOff struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Start  time.Time `gorm:"not null" json:"start"`
	End    time.Time `gorm:"not null" json:"end"`
	Reason *string   `gorm:"type:text" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
