package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type AvailabilityInput struct {
	ShopID     uint
	DateISO    string
	ServiceIDs []uint
}

type AvailabilityResult struct {
	Slots       []string `json:"slots"`
	DurationMin int      `json:"durationMin"`
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute is read-only and advisory: the returned slots reflect persisted
// state at call time and may be stale by the time a booking is submitted.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	services, err := uc.repo.ResolveServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// No resolvable services means nothing bookable, not an error.
	if len(services) == 0 {
		return &AvailabilityResult{Slots: []string{}, DurationMin: 0}, nil
	}

	durationMin := 0
	for _, s := range services {
		durationMin += s.Duration
	}

	empty := &AvailabilityResult{Slots: []string{}, DurationMin: durationMin}

	date, err := time.Parse("2006-01-02", in.DateISO)
	if err != nil {
		return nil, err
	}

	oh, err := uc.repo.GetOpeningHours(ctx, domain.DayNameFor(date))
	if err != nil {
		return nil, err
	}
	if oh == nil || oh.OpeningTime == nil || oh.ClosingTime == nil {
		return empty, nil
	}

	openMin, err := domain.ToMinutes(*oh.OpeningTime)
	if err != nil {
		return empty, nil
	}
	closeMin, err := domain.ToMinutes(*oh.ClosingTime)
	if err != nil {
		return empty, nil
	}

	busy, err := uc.repo.ListBookedRanges(ctx, in.DateISO)
	if err != nil {
		return nil, err
	}

	off, err := uc.repo.ListTimeOffRanges(ctx, in.DateISO)
	if err != nil {
		return nil, err
	}

	blocked := make([]domain.Range, 0, len(busy)+len(off))
	blocked = append(blocked, busy...)
	blocked = append(blocked, off...)

	return &AvailabilityResult{
		Slots:       domain.Slots(openMin, closeMin, durationMin, blocked),
		DurationMin: durationMin,
	}, nil
}
