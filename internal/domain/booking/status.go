package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Appointment status machine
// ===============================
//
// BOOKED -> CANCELLED (terminal)
// BOOKED -> COMPLETED (terminal)
//
// Only BOOKED appointments participate in conflict detection, so these are
// the sole legal mutations.

func CanCancel(status string) error {
	if status != models.StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(status string) error {
	if status != models.StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(ap.Status); err != nil {
		return err
	}
	ap.Status = models.StatusCancelled
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(ap.Status); err != nil {
		return err
	}
	ap.Status = models.StatusCompleted
	ap.CompletedAt = &now
	return nil
}
