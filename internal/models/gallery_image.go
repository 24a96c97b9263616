package models

import "time"

type GalleryImage struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarberShopID uint `gorm:"not null;index" json:"barber_shop_id"`

	FilePath    string  `gorm:"type:text;not null" json:"file_path"`
	AltText     string  `gorm:"type:text;not null" json:"alt_text"`
	Title       *string `gorm:"type:text" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
