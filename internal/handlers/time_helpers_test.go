package handlers

import (
	"reflect"
	"testing"
)

func TestValidDateISO(t *testing.T) {
	valid := []string{"2026-03-02", "2024-02-29", "1999-12-31"}
	invalid := []string{"2026-13-01", "2026-02-30", "2026-3-2", "02-03-2026", "", "yesterday"}

	for _, s := range valid {
		if !ValidDateISO(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range invalid {
		if ValidDateISO(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestValidHHMM(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"24:00", "09:60", "9:30", "09:30:00", "", "noon"}

	for _, s := range valid {
		if !ValidHHMM(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range invalid {
		if ValidHHMM(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestParseIDList(t *testing.T) {
	cases := []struct {
		in   string
		want []uint
	}{
		{"1,2,3", []uint{1, 2, 3}},
		{" 1 , 2 ", []uint{1, 2}},
		{"1,,3", []uint{1, 3}},
		{"0,-1,abc,2", []uint{2}},
		{"", nil},
	}

	for _, c := range cases {
		if got := ParseIDList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("ParseIDList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, ok := ParseID("42"); !ok || id != 42 {
		t.Fatalf("ParseID(42) = %d, %v", id, ok)
	}
	for _, s := range []string{"0", "-1", "abc", ""} {
		if _, ok := ParseID(s); ok {
			t.Fatalf("ParseID(%q) should fail", s)
		}
	}
}
