package models

import "time"

const (
	StatusBooked    = "BOOKED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// AppointmentDate is YYYY-MM-DD, StartTime/EndTime are HH:MM:SS, all shop-local
// wall-clock with no timezone attached.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	AppointmentDate string `gorm:"type:date;not null;index" json:"appointment_date"`
	StartTime       string `gorm:"type:time;not null" json:"start_time"`
	EndTime         string `gorm:"type:time;not null" json:"end_time"`

	Status          string `gorm:"size:20;not null;default:'BOOKED'" json:"status"`
	TotalPriceCents int    `json:"total_price_cents"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Line item carrying a copy of the service's price and duration at booking
// time, not a live reference.
type AppointmentService struct {
	AppointmentID uint `gorm:"primaryKey;autoIncrement:false" json:"appointment_id"`
	ServiceID     uint `gorm:"primaryKey;autoIncrement:false" json:"service_id"`

	Service Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	Price    int `gorm:"not null" json:"price"`
	Duration int `gorm:"not null" json:"duration"`
}
