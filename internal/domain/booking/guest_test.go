package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func fixedGuestEmail() string { return "guest+1@example.invalid" }

func TestNewGuestClient_NameSplit(t *testing.T) {
	c := NewGuestClient("Ada Lovelace", "ada@example.com", "", fixedGuestEmail)
	if c.FirstName != "Ada" || c.LastName != "Lovelace" {
		t.Fatalf("got %q %q", c.FirstName, c.LastName)
	}
	if c.Email != "ada@example.com" {
		t.Fatalf("got email %q", c.Email)
	}
	if c.PhoneNumber != nil {
		t.Fatal("expected nil phone")
	}
}

func TestNewGuestClient_SingleName(t *testing.T) {
	c := NewGuestClient("Ada", "", "", fixedGuestEmail)
	if c.FirstName != "Ada" || c.LastName != "Client" {
		t.Fatalf("got %q %q", c.FirstName, c.LastName)
	}
}

func TestNewGuestClient_EmptyName(t *testing.T) {
	c := NewGuestClient("   ", "", "", fixedGuestEmail)
	if c.FirstName != "Guest" || c.LastName != "Client" {
		t.Fatalf("got %q %q", c.FirstName, c.LastName)
	}
}

func TestNewGuestClient_MultiWordLastName(t *testing.T) {
	c := NewGuestClient("Jean Claude Van Damme", "", "", fixedGuestEmail)
	if c.FirstName != "Jean" {
		t.Fatalf("got first %q", c.FirstName)
	}
	if c.LastName != "Claude Van Damm" { // truncated to 15
		t.Fatalf("got last %q", c.LastName)
	}
}

func TestNewGuestClient_Truncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	c := NewGuestClient(long+" "+long, long+"@example.com", long, fixedGuestEmail)
	if len(c.FirstName) != 15 || len(c.LastName) != 15 {
		t.Fatalf("names not truncated: %d %d", len(c.FirstName), len(c.LastName))
	}
	if len(c.Email) != 50 {
		t.Fatalf("email not truncated: %d", len(c.Email))
	}
	if c.PhoneNumber == nil || len(*c.PhoneNumber) != 15 {
		t.Fatalf("phone not truncated: %v", c.PhoneNumber)
	}
}

func TestNewGuestClient_SynthesizedEmail(t *testing.T) {
	c := NewGuestClient("Ada", "", "", fixedGuestEmail)
	if c.Email != "guest+1@example.invalid" {
		t.Fatalf("got email %q", c.Email)
	}
}

func TestDefaultGuestEmail_Unique(t *testing.T) {
	a := DefaultGuestEmail()
	time.Sleep(time.Microsecond)
	b := DefaultGuestEmail()

	if !strings.HasPrefix(a, "guest+") || !strings.HasSuffix(a, "@example.invalid") {
		t.Fatalf("unexpected shape %q", a)
	}
	if a == b {
		t.Fatalf("expected unique emails, got %q twice", a)
	}
}

func TestStatusMachine(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: models.StatusBooked}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancel booked: %v", err)
	}
	if ap.Status != models.StatusCancelled || ap.CancelledAt == nil {
		t.Fatalf("cancel did not apply: %+v", ap)
	}
	if err := Complete(ap, now); err == nil {
		t.Fatal("complete after cancel must fail")
	}

	ap = &models.Appointment{Status: models.StatusBooked}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("complete booked: %v", err)
	}
	if ap.Status != models.StatusCompleted || ap.CompletedAt == nil {
		t.Fatalf("complete did not apply: %+v", ap)
	}
	if err := Cancel(ap, now); err == nil {
		t.Fatal("cancel after complete must fail")
	}
}
