package booking

import (
	"reflect"
	"testing"
)

func TestSlots_FullDay(t *testing.T) {
	// 09:00-18:00, 30 min appointment, nothing blocked.
	slots := Slots(9*60, 18*60, 30, nil)

	if len(slots) != 35 {
		t.Fatalf("expected 35 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" {
		t.Fatalf("expected first slot 09:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "17:30" {
		t.Fatalf("expected last slot 17:30, got %s", slots[len(slots)-1])
	}
}

func TestSlots_BlockedAppointment(t *testing.T) {
	// Existing booking 10:00-10:30. A 30 min candidate at 09:45 would
	// overlap; 09:30 ends exactly at 10:00 and 10:30 starts exactly at the
	// booking's end, so both stay available.
	blocked := []Range{{Start: 10 * 60, End: 10*60 + 30}}
	slots := Slots(9*60, 12*60, 30, blocked)

	want := map[string]bool{"09:30": true, "10:30": true}
	gone := map[string]bool{"09:45": true, "10:00": true, "10:15": true}

	seen := map[string]bool{}
	for _, s := range slots {
		seen[s] = true
	}
	for s := range want {
		if !seen[s] {
			t.Fatalf("expected slot %s to be available", s)
		}
	}
	for s := range gone {
		if seen[s] {
			t.Fatalf("expected slot %s to be blocked", s)
		}
	}
}

func TestSlots_TimeOffBlock(t *testing.T) {
	// Lunch break 12:00-13:00 blocks every start from 11:15 through 12:45
	// for a 60 min appointment.
	blocked := []Range{{Start: 12 * 60, End: 13 * 60}}
	slots := Slots(9*60, 18*60, 60, blocked)

	for _, s := range slots {
		min, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("bad slot %q: %v", s, err)
		}
		if min > 11*60 && min < 13*60 {
			t.Fatalf("slot %s overlaps the time-off block", s)
		}
	}
	if slots[0] != "09:00" {
		t.Fatalf("expected first slot 09:00, got %s", slots[0])
	}
}

func TestSlots_DurationLongerThanWindow(t *testing.T) {
	slots := Slots(9*60, 10*60, 90, nil)
	if !reflect.DeepEqual(slots, []string{}) {
		t.Fatalf("expected empty slice, got %v", slots)
	}
}

func TestSlots_ExactFit(t *testing.T) {
	// A 60 min appointment in a 09:00-10:00 window fits exactly once.
	slots := Slots(9*60, 10*60, 60, nil)
	if !reflect.DeepEqual(slots, []string{"09:00"}) {
		t.Fatalf("expected [09:00], got %v", slots)
	}
}

func TestSlots_DegenerateInputs(t *testing.T) {
	if got := Slots(9*60, 18*60, 0, nil); len(got) != 0 || got == nil {
		t.Fatalf("zero duration: expected empty non-nil slice, got %v", got)
	}
	if got := Slots(18*60, 9*60, 30, nil); len(got) != 0 || got == nil {
		t.Fatalf("inverted window: expected empty non-nil slice, got %v", got)
	}
}

func TestSlots_FullyBlockedDay(t *testing.T) {
	blocked := []Range{{Start: 0, End: MinutesPerDay}}
	slots := Slots(9*60, 18*60, 15, blocked)
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}
