package appointment

import (
	"context"
	"errors"
	"testing"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Minimal repository stub: only the appointment state-change methods do
// anything.
type stubRepo struct {
	appointments map[uint]*models.Appointment
	saved        *models.Appointment
}

func newStubRepo(aps ...*models.Appointment) *stubRepo {
	s := &stubRepo{appointments: map[uint]*models.Appointment{}}
	for _, ap := range aps {
		s.appointments[ap.ID] = ap
	}
	return s
}

func (s *stubRepo) ResolveServices(context.Context, []uint) ([]models.Service, error) {
	return nil, nil
}

func (s *stubRepo) GetOpeningHours(context.Context, string) (*models.OpeningHours, error) {
	return nil, nil
}

func (s *stubRepo) ListBookedRanges(context.Context, string) ([]domain.Range, error) {
	return nil, nil
}

func (s *stubRepo) ListTimeOffRanges(context.Context, string) ([]domain.Range, error) {
	return nil, nil
}

func (s *stubRepo) FindClientByEmail(context.Context, string) (*models.Client, error) {
	return nil, nil
}

func (s *stubRepo) CreateBooking(context.Context, *domain.NewBooking) (uint, error) {
	return 0, errors.New("not implemented")
}

func (s *stubRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := s.appointments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return ap, nil
}

func (s *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.saved = ap
	return nil
}

var _ domain.Repository = (*stubRepo)(nil)

func TestCancelAppointment(t *testing.T) {
	repo := newStubRepo(&models.Appointment{ID: 1, Status: models.StatusBooked})

	ap, err := NewCancelAppointment(repo, nil).Execute(context.Background(), "admin", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != models.StatusCancelled || ap.CancelledAt == nil {
		t.Fatalf("cancel did not apply: %+v", ap)
	}
	if repo.saved == nil || repo.saved.ID != 1 {
		t.Fatal("expected the appointment to be persisted")
	}
}

func TestCancelAppointment_NotFound(t *testing.T) {
	repo := newStubRepo()

	_, err := NewCancelAppointment(repo, nil).Execute(context.Background(), "admin", 99)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestCancelAppointment_TerminalState(t *testing.T) {
	repo := newStubRepo(&models.Appointment{ID: 1, Status: models.StatusCompleted})

	_, err := NewCancelAppointment(repo, nil).Execute(context.Background(), "admin", 1)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
	if repo.saved != nil {
		t.Fatal("terminal appointment must not be persisted")
	}
}

func TestCompleteAppointment(t *testing.T) {
	repo := newStubRepo(&models.Appointment{ID: 2, Status: models.StatusBooked})

	ap, err := NewCompleteAppointment(repo, nil).Execute(context.Background(), "admin", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != models.StatusCompleted || ap.CompletedAt == nil {
		t.Fatalf("complete did not apply: %+v", ap)
	}
}

func TestCompleteAppointment_AlreadyCancelled(t *testing.T) {
	repo := newStubRepo(&models.Appointment{ID: 2, Status: models.StatusCancelled})

	_, err := NewCompleteAppointment(repo, nil).Execute(context.Background(), "admin", 2)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}
