package booking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// IN-MEMORY REPOSITORY
// ======================================================

// fakeRepo stores full appointments with a status, so conflict detection
// filters on BOOKED the same way the SQL queries do.
type fakeRepo struct {
	mu sync.Mutex

	services map[uint]models.Service
	hours    map[string]*models.OpeningHours
	clients  map[string]*models.Client

	appointments map[uint]*models.Appointment
	timeOff      []domain.Range

	nextID  uint
	created []*domain.NewBooking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]models.Service{},
		hours:        map[string]*models.OpeningHours{},
		clients:      map[string]*models.Client{},
		appointments: map[uint]*models.Appointment{},
		nextID:       1,
	}
}

func (f *fakeRepo) addService(id uint, duration, price int) {
	f.services[id] = models.Service{ID: id, Duration: duration, Price: price}
}

func (f *fakeRepo) open(day, from, to string) {
	f.hours[day] = &models.OpeningHours{DayOfWeek: day, OpeningTime: &from, ClosingTime: &to}
}

// book seeds an appointment directly, bypassing the use case.
func (f *fakeRepo) book(dateISO, start, end, status string) uint {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.appointments[id] = &models.Appointment{
		ID:              id,
		AppointmentDate: dateISO,
		StartTime:       start,
		EndTime:         end,
		Status:          status,
	}
	return id
}

// bookedRangesLocked collects BOOKED intervals for the date. Callers hold mu.
func (f *fakeRepo) bookedRangesLocked(dateISO string) ([]domain.Range, error) {
	var ranges []domain.Range
	for _, ap := range f.appointments {
		if ap.AppointmentDate != dateISO || ap.Status != models.StatusBooked {
			continue
		}
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

func (f *fakeRepo) ResolveServices(_ context.Context, ids []uint) ([]models.Service, error) {
	out := []models.Service{}
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOpeningHours(_ context.Context, day string) (*models.OpeningHours, error) {
	return f.hours[day], nil
}

func (f *fakeRepo) ListBookedRanges(_ context.Context, dateISO string) ([]domain.Range, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookedRangesLocked(dateISO)
}

func (f *fakeRepo) ListTimeOffRanges(_ context.Context, _ string) ([]domain.Range, error) {
	return append([]domain.Range{}, f.timeOff...), nil
}

func (f *fakeRepo) FindClientByEmail(_ context.Context, email string) (*models.Client, error) {
	return f.clients[email], nil
}

// CreateBooking mirrors the transactional re-check: the BOOKED-overlap test
// and the insert happen under one lock, so concurrent callers serialize here
// exactly as they do on the advisory lock in Postgres.
func (f *fakeRepo) CreateBooking(_ context.Context, b *domain.NewBooking) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	start, err := domain.ToMinutes(b.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := domain.ToMinutes(b.EndTime)
	if err != nil {
		return 0, err
	}

	booked, err := f.bookedRangesLocked(b.DateISO)
	if err != nil {
		return 0, err
	}
	cand := domain.Range{Start: start, End: end}
	for _, r := range booked {
		if cand.Overlaps(r) {
			return 0, httperr.ErrBusiness(httperr.CodeDoubleBooking)
		}
	}

	id := f.nextID
	f.nextID++
	f.appointments[id] = &models.Appointment{
		ID:              id,
		ClientID:        b.ClientID,
		AppointmentDate: b.DateISO,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          models.StatusBooked,
		TotalPriceCents: b.TotalPriceCents,
	}
	f.created = append(f.created, b)
	return id, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ap, ok := f.appointments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return ap, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.appointments[ap.ID]; !ok {
		return fmt.Errorf("appointment %d not found", ap.ID)
	}
	f.appointments[ap.ID] = ap
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// AVAILABILITY
// ======================================================

// 2026-03-02 is a Monday.
const monday = "2026-03-02"

func TestGetAvailability_OpenDay(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")

	res, err := NewGetAvailability(repo).Execute(context.Background(), AvailabilityInput{
		ShopID:     1,
		DateISO:    monday,
		ServiceIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DurationMin != 30 {
		t.Fatalf("expected duration 30, got %d", res.DurationMin)
	}
	if len(res.Slots) != 35 || res.Slots[0] != "09:00" || res.Slots[34] != "17:30" {
		t.Fatalf("unexpected slots: %v", res.Slots)
	}
}

func TestGetAvailability_SumsServiceDurations(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.addService(2, 15, 1000)
	repo.open("Monday", "09:00:00", "10:00:00")

	res, err := NewGetAvailability(repo).Execute(context.Background(), AvailabilityInput{
		DateISO:    monday,
		ServiceIDs: []uint{1, 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DurationMin != 45 {
		t.Fatalf("expected duration 45, got %d", res.DurationMin)
	}
	// 45 min in a one-hour window: 09:00 and 09:15 fit.
	if len(res.Slots) != 2 || res.Slots[0] != "09:00" || res.Slots[1] != "09:15" {
		t.Fatalf("unexpected slots: %v", res.Slots)
	}
}

func TestGetAvailability_ClosedDay(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)

	res, err := NewGetAvailability(repo).Execute(context.Background(), AvailabilityInput{
		DateISO:    monday,
		ServiceIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Slots) != 0 || res.Slots == nil {
		t.Fatalf("expected empty non-nil slots, got %v", res.Slots)
	}
	if res.DurationMin != 30 {
		t.Fatalf("expected duration 30, got %d", res.DurationMin)
	}
}

func TestGetAvailability_UnknownServices(t *testing.T) {
	repo := newFakeRepo()
	repo.open("Monday", "09:00:00", "18:00:00")

	res, err := NewGetAvailability(repo).Execute(context.Background(), AvailabilityInput{
		DateISO:    monday,
		ServiceIDs: []uint{42},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Slots) != 0 || res.DurationMin != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestGetAvailability_BookedAndTimeOffBlock(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")
	repo.book(monday, "10:00:00", "10:30:00", models.StatusBooked)
	repo.timeOff = []domain.Range{{Start: 12 * 60, End: 13 * 60}}

	res, err := NewGetAvailability(repo).Execute(context.Background(), AvailabilityInput{
		DateISO:    monday,
		ServiceIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]bool{}
	for _, s := range res.Slots {
		seen[s] = true
	}
	for _, s := range []string{"10:00", "10:15", "09:45", "12:00", "12:30", "11:45"} {
		if seen[s] {
			t.Fatalf("slot %s should be blocked", s)
		}
	}
	for _, s := range []string{"09:30", "10:30", "13:00", "11:30"} {
		if !seen[s] {
			t.Fatalf("slot %s should be available", s)
		}
	}
}

// Cancelled and completed appointments free their slot; only BOOKED rows
// block availability.
func TestGetAvailability_IgnoresTerminalStatuses(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")
	repo.book(monday, "10:00:00", "10:30:00", models.StatusCancelled)
	repo.book(monday, "11:00:00", "11:30:00", models.StatusCompleted)

	res, err := NewGetAvailability(repo).Execute(context.Background(), AvailabilityInput{
		DateISO:    monday,
		ServiceIDs: []uint{1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Slots) != 35 {
		t.Fatalf("expected a fully open day, got %d slots", len(res.Slots))
	}
}

func TestGetAvailability_ReadIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")
	repo.book(monday, "10:00:00", "10:30:00", models.StatusBooked)

	uc := NewGetAvailability(repo)
	in := AvailabilityInput{DateISO: monday, ServiceIDs: []uint{1}}

	first, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// ======================================================
// CREATE BOOKING
// ======================================================

func newCreateUC(repo *fakeRepo) *CreateBooking {
	return NewCreateBooking(repo, nil).
		WithGuestEmail(func() string { return "guest+test@example.invalid" })
}

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.addService(2, 15, 1000)
	repo.open("Monday", "09:00:00", "18:00:00")

	res, err := newCreateUC(repo).Execute(context.Background(), CreateBookingInput{
		ShopID:       1,
		ServiceIDs:   []uint{1, 2},
		DateISO:      monday,
		StartTime:    "10:00",
		CustomerName: "Ada Lovelace",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AppointmentID == 0 {
		t.Fatal("expected an appointment id")
	}

	b := repo.created[0]
	if b.StartTime != "10:00:00" || b.EndTime != "10:45:00" {
		t.Fatalf("unexpected times %s-%s", b.StartTime, b.EndTime)
	}
	if b.TotalPriceCents != 3500 {
		t.Fatalf("expected total 3500, got %d", b.TotalPriceCents)
	}
	if len(b.Lines) != 2 || b.Lines[0].Price != 2500 || b.Lines[1].Duration != 15 {
		t.Fatalf("unexpected lines %+v", b.Lines)
	}
	if b.NewClient == nil || b.NewClient.FirstName != "Ada" {
		t.Fatalf("expected synthesized guest client, got %+v", b.NewClient)
	}
	if b.NewClient.Email != "guest+test@example.invalid" {
		t.Fatalf("expected synthesized email, got %q", b.NewClient.Email)
	}
}

func TestCreateBooking_ReusesClientByEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")
	repo.clients["ada@example.com"] = &models.Client{ID: 7, Email: "ada@example.com"}

	_, err := newCreateUC(repo).Execute(context.Background(), CreateBookingInput{
		ServiceIDs:    []uint{1},
		DateISO:       monday,
		StartTime:     "10:00",
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := repo.created[0]
	if b.ClientID == nil || *b.ClientID != 7 {
		t.Fatalf("expected client 7 reuse, got %+v", b)
	}
	if b.NewClient != nil {
		t.Fatal("must not synthesize a client when the email is known")
	}
}

func TestCreateBooking_ServicesNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.open("Monday", "09:00:00", "18:00:00")

	_, err := newCreateUC(repo).Execute(context.Background(), CreateBookingInput{
		ServiceIDs:   []uint{42},
		DateISO:      monday,
		StartTime:    "10:00",
		CustomerName: "Ada",
	})
	if !httperr.IsBusiness(err, httperr.CodeServicesNotFound) {
		t.Fatalf("expected services_not_found, got %v", err)
	}
}

func TestCreateBooking_ShopClosed(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)

	_, err := newCreateUC(repo).Execute(context.Background(), CreateBookingInput{
		ServiceIDs:   []uint{1},
		DateISO:      monday,
		StartTime:    "10:00",
		CustomerName: "Ada",
	})
	if !httperr.IsBusiness(err, httperr.CodeShopClosed) {
		t.Fatalf("expected shop_closed, got %v", err)
	}
}

func TestCreateBooking_OutsideOpeningHours(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 60, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")

	uc := newCreateUC(repo)

	// Starts before opening.
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		ServiceIDs:   []uint{1},
		DateISO:      monday,
		StartTime:    "08:00",
		CustomerName: "Ada",
	})
	if !httperr.IsBusiness(err, httperr.CodeOutsideHours) {
		t.Fatalf("expected outside_opening_hours, got %v", err)
	}

	// Ends after closing: 17:30 + 60 min > 18:00.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		ServiceIDs:   []uint{1},
		DateISO:      monday,
		StartTime:    "17:30",
		CustomerName: "Ada",
	})
	if !httperr.IsBusiness(err, httperr.CodeOutsideHours) {
		t.Fatalf("expected outside_opening_hours, got %v", err)
	}

	// Ending exactly at closing is allowed.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		ServiceIDs:   []uint{1},
		DateISO:      monday,
		StartTime:    "17:00",
		CustomerName: "Ada",
	})
	if err != nil {
		t.Fatalf("17:00-18:00 must be bookable: %v", err)
	}
}

func TestCreateBooking_DoubleBooking(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")
	repo.book(monday, "10:00:00", "10:30:00", models.StatusBooked)

	_, err := newCreateUC(repo).Execute(context.Background(), CreateBookingInput{
		ServiceIDs:   []uint{1},
		DateISO:      monday,
		StartTime:    "10:15",
		CustomerName: "Ada",
	})
	if !httperr.IsBusiness(err, httperr.CodeDoubleBooking) {
		t.Fatalf("expected double_booking, got %v", err)
	}
}

// A slot occupied by a BOOKED appointment rejects a second booking, but
// cancelling the first frees it for rebooking.
func TestCreateBooking_SlotFreedByCancellation(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")

	uc := newCreateUC(repo)
	in := CreateBookingInput{
		ServiceIDs:   []uint{1},
		DateISO:      monday,
		StartTime:    "10:00",
		CustomerName: "Ada",
	}

	first, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err = uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, httperr.CodeDoubleBooking) {
		t.Fatalf("expected double_booking while slot is held, got %v", err)
	}

	cancelUC := ucAppointment.NewCancelAppointment(repo, nil)
	if _, err := cancelUC.Execute(context.Background(), "admin", first.AppointmentID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	second, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("rebooking a cancelled slot must succeed: %v", err)
	}
	if second.AppointmentID == first.AppointmentID {
		t.Fatal("rebooking must create a new appointment")
	}
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")

	uc := newCreateUC(repo)
	in := CreateBookingInput{
		ServiceIDs:   []uint{1},
		DateISO:      monday,
		StartTime:    "10:00",
		CustomerName: "Racer",
	}

	const racers = 8
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), in)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, httperr.CodeDoubleBooking):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if conflicts != racers-1 {
		t.Fatalf("expected %d conflicts, got %d", racers-1, conflicts)
	}
}

// Back-to-back bookings share an endpoint and must not conflict.
func TestCreateBooking_AdjacentSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 30, 2500)
	repo.open("Monday", "09:00:00", "18:00:00")

	uc := newCreateUC(repo)

	for _, start := range []string{"10:00", "10:30", "09:30"} {
		in := CreateBookingInput{
			ServiceIDs:   []uint{1},
			DateISO:      monday,
			StartTime:    start,
			CustomerName: "Ada",
		}
		if _, err := uc.Execute(context.Background(), in); err != nil {
			t.Fatalf("booking at %s failed: %v", start, err)
		}
	}
}
