package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Storage widths for client fields. Values are truncated, never rejected,
// to keep the public flow frictionless.
const (
	maxNameLen  = 15
	maxEmailLen = 50
)

// GuestEmailFunc synthesizes a unique e-mail for bookings made without one,
// so the uniqueness constraint on clients.email holds for concurrent guest
// bookings. Swappable so a nullable-email schema can drop the hack.
type GuestEmailFunc func() string

func DefaultGuestEmail() string {
	return fmt.Sprintf("guest+%d@example.invalid", time.Now().UnixNano())
}

// NewGuestClient derives a client record from the booking form. The display
// name splits on whitespace into first/last, with placeholders when parts
// are missing.
func NewGuestClient(displayName, email, phone string, guestEmail GuestEmailFunc) *models.Client {
	parts := strings.Fields(displayName)

	first := "Guest"
	last := "Client"
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}

	if email == "" {
		email = guestEmail()
	}

	c := &models.Client{
		FirstName: truncate(first, maxNameLen),
		LastName:  truncate(last, maxNameLen),
		Email:     truncate(email, maxEmailLen),
	}
	if phone != "" {
		p := truncate(phone, maxNameLen)
		c.PhoneNumber = &p
	}
	return c
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
