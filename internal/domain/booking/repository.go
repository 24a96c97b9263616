package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ServiceLine is the price/duration copy taken from a Service at booking
// time.
type ServiceLine struct {
	ServiceID uint
	Price     int
	Duration  int
}

// NewBooking is everything the repository needs to persist one appointment
// and its line items in a single transaction. Exactly one of ClientID and
// NewClient is set.
type NewBooking struct {
	ShopID uint

	DateISO   string
	StartTime string // HH:MM:SS
	EndTime   string // HH:MM:SS

	TotalPriceCents int

	ClientID  *uint
	NewClient *models.Client

	Lines []ServiceLine
}

type Repository interface {
	// -------- Catalog --------
	ResolveServices(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Schedule --------
	GetOpeningHours(
		ctx context.Context,
		dayOfWeek string,
	) (*models.OpeningHours, error)

	ListBookedRanges(
		ctx context.Context,
		dateISO string,
	) ([]Range, error)

	ListTimeOffRanges(
		ctx context.Context,
		dateISO string,
	) ([]Range, error)

	// -------- Client --------
	FindClientByEmail(
		ctx context.Context,
		email string,
	) (*models.Client, error)

	// -------- Booking (transactional) --------
	// CreateBooking re-checks the slot against BOOKED appointments and
	// inserts the appointment plus its line items atomically; a lost race
	// returns the double_booking business error.
	CreateBooking(
		ctx context.Context,
		b *NewBooking,
	) (uint, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
