package models

import "time"

type BarberShop struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	PhoneNumber string  `gorm:"size:15" json:"phone_number"`
	Email       string  `gorm:"size:100" json:"email"`
	Street      string  `gorm:"size:100" json:"street"`
	PostalCode  string  `gorm:"size:4" json:"postal_code"`
	Description *string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
