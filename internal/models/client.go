package models

import "time"

type Client struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	FirstName   string  `gorm:"size:15;not null" json:"first_name"`
	LastName    string  `gorm:"size:15;not null" json:"last_name"`
	Email       string  `gorm:"size:50;uniqueIndex;not null" json:"email"`
	PhoneNumber *string `gorm:"size:15" json:"phone_number"`
	Note        *string `gorm:"type:text" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
