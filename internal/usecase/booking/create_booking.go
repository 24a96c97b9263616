package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ShopID     uint
	ServiceIDs []uint

	DateISO   string
	StartTime string // HH:MM

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type CreateBookingResult struct {
	AppointmentID uint `json:"appointmentID"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo       domain.Repository
	audit      *audit.Dispatcher
	guestEmail domain.GuestEmailFunc
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:       repo,
		audit:      audit,
		guestEmail: domain.DefaultGuestEmail,
	}
}

// WithGuestEmail overrides guest e-mail synthesis. Used by tests and kept
// for a future nullable-email schema.
func (uc *CreateBooking) WithGuestEmail(f domain.GuestEmailFunc) *CreateBooking {
	uc.guestEmail = f
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// Duration and price always come from the current service records,
	// never from anything the client cached.
	services, err := uc.repo.ResolveServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeServicesNotFound)
	}

	durationMin := 0
	totalPriceCents := 0
	lines := make([]domain.ServiceLine, 0, len(services))
	for _, s := range services {
		durationMin += s.Duration
		totalPriceCents += s.Price
		lines = append(lines, domain.ServiceLine{
			ServiceID: s.ID,
			Price:     s.Price,
			Duration:  s.Duration,
		})
	}

	date, err := time.Parse("2006-01-02", in.DateISO)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeShopClosed)
	}

	startMin, err := domain.ToMinutes(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideHours)
	}
	endMin := startMin + durationMin

	oh, err := uc.repo.GetOpeningHours(ctx, domain.DayNameFor(date))
	if err != nil {
		return nil, err
	}
	if oh == nil || oh.OpeningTime == nil || oh.ClosingTime == nil {
		return nil, httperr.ErrBusiness(httperr.CodeShopClosed)
	}

	openMin, err := domain.ToMinutes(*oh.OpeningTime)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeShopClosed)
	}
	closeMin, err := domain.ToMinutes(*oh.ClosingTime)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeShopClosed)
	}

	if startMin < openMin || endMin > closeMin {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideHours)
	}

	booking := &domain.NewBooking{
		ShopID:          in.ShopID,
		DateISO:         in.DateISO,
		StartTime:       domain.FromMinutes(startMin) + ":00",
		EndTime:         domain.FromMinutes(endMin) + ":00",
		TotalPriceCents: totalPriceCents,
		Lines:           lines,
	}

	// Reuse the client when the e-mail is known; otherwise synthesize a
	// guest record.
	if in.CustomerEmail != "" {
		client, err := uc.repo.FindClientByEmail(ctx, in.CustomerEmail)
		if err != nil {
			return nil, err
		}
		if client != nil {
			booking.ClientID = &client.ID
		}
	}
	if booking.ClientID == nil {
		booking.NewClient = domain.NewGuestClient(
			in.CustomerName,
			in.CustomerEmail,
			in.CustomerPhone,
			uc.guestEmail,
		)
	}

	// The repository re-checks the slot and inserts inside one transaction;
	// a concurrent winner surfaces here as double_booking.
	id, err := uc.repo.CreateBooking(ctx, booking)
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			err = httperr.ErrBusiness(httperr.CodeDoubleBooking)
		}
		if httperr.IsBusiness(err, httperr.CodeDoubleBooking) {
			uc.audit.Dispatch(audit.Event{
				Actor:  "public",
				Action: "booking_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"date":  in.DateISO,
					"start": in.StartTime,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    "public",
		Action:   "booking_created",
		Entity:   "appointment",
		EntityID: &id,
	})

	return &CreateBookingResult{AppointmentID: id}, nil
}
