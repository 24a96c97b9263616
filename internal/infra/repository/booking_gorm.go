package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) ResolveServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetOpeningHours(
	ctx context.Context,
	dayOfWeek string,
) (*models.OpeningHours, error) {

	var oh models.OpeningHours
	err := r.db.WithContext(ctx).
		Where("day_of_week = ?", dayOfWeek).
		First(&oh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &oh, nil
}

func (r *BookingGormRepository) ListBookedRanges(
	ctx context.Context,
	dateISO string,
) ([]domain.Range, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"appointment_date = ? AND status = ?",
			dateISO, models.StatusBooked,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	ranges := make([]domain.Range, 0, len(apps))
	for _, ap := range apps {
		start, err := domain.ToMinutes(ap.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := domain.ToMinutes(ap.EndTime)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, domain.Range{Start: start, End: end})
	}
	return ranges, nil
}

func (r *BookingGormRepository) ListTimeOffRanges(
	ctx context.Context,
	dateISO string,
) ([]domain.Range, error) {

	var offs []models.TimeOff
	if err := r.db.WithContext(ctx).
		Where(
			`start < ?::date + interval '1 day' AND "end" > ?::date`,
			dateISO, dateISO,
		).
		Find(&offs).Error; err != nil {
		return nil, err
	}

	ranges := make([]domain.Range, 0, len(offs))
	for _, t := range offs {
		ranges = append(ranges, domain.ClipToDay(dateISO, t.Start, t.End))
	}
	return ranges, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) FindClientByEmail(
	ctx context.Context,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&client).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// CreateBooking serializes writers for the same shop/day with an advisory
// transaction lock, re-checks for BOOKED overlap, then inserts the
// appointment and its line items atomically. The exclusion constraint on
// appointments backs this up; callers translate 23P01 to double_booking.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *domain.NewBooking,
) (uint, error) {

	var id uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		lockKey := fmt.Sprintf("booking:%d:%s", b.ShopID, b.DateISO)
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))", lockKey,
		).Error; err != nil {
			return err
		}

		var conflicts int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"appointment_date = ? AND status = ? AND start_time < ? AND end_time > ?",
				b.DateISO, models.StatusBooked, b.EndTime, b.StartTime,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.ErrBusiness(httperr.CodeDoubleBooking)
		}

		clientID := b.ClientID
		if clientID == nil {
			if err := tx.Create(b.NewClient).Error; err != nil {
				return err
			}
			clientID = &b.NewClient.ID
		}

		ap := models.Appointment{
			ClientID:        clientID,
			AppointmentDate: b.DateISO,
			StartTime:       b.StartTime,
			EndTime:         b.EndTime,
			Status:          models.StatusBooked,
			TotalPriceCents: b.TotalPriceCents,
		}
		if err := tx.Create(&ap).Error; err != nil {
			return err
		}

		lines := make([]models.AppointmentService, 0, len(b.Lines))
		serviceIDs := make([]uint, 0, len(b.Lines))
		for _, ln := range b.Lines {
			lines = append(lines, models.AppointmentService{
				AppointmentID: ap.ID,
				ServiceID:     ln.ServiceID,
				Price:         ln.Price,
				Duration:      ln.Duration,
			})
			serviceIDs = append(serviceIDs, ln.ServiceID)
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.Service{}).
			Where("id IN ? AND is_booked = ?", serviceIDs, false).
			Update("is_booked", true).Error; err != nil {
			return err
		}

		id = ap.ID
		return nil
	})

	return id, err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
