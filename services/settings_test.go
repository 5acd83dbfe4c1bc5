package services

import (
	"errors"
	"testing"
)

func TestValidateOfficeHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                           string
		openHour, closeHour, slotMin   int
		wantErr                        bool
	}{
		{"defaults are valid", 8, 22, 30, false},
		{"full day window", 0, 24, 60, false},
		{"zero slot length", 8, 22, 0, true},
		{"negative slot length", 8, 22, -15, true},
		{"close before open", 18, 9, 30, true},
		{"close equals open", 9, 9, 30, true},
		{"open hour out of range", 25, 26, 30, true},
		{"negative open hour", -1, 10, 30, true},
		{"close hour past midnight", 8, 25, 30, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := validateOfficeHours(tc.openHour, tc.closeHour, tc.slotMin)
			if tc.wantErr && !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("got err %v, want ErrInvalidSettings", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("got err %v, want nil", err)
			}
		})
	}
}

func TestIntField(t *testing.T) {
	t.Parallel()

	fields := map[string]interface{}{
		"slot_minutes": float64(15), // JSON numbers decode as float64
		"open_hour":    9,
	}

	if got := intField(fields, "slot_minutes", 30); got != 15 {
		t.Fatalf("float64 field = %d, want 15", got)
	}
	if got := intField(fields, "open_hour", 8); got != 9 {
		t.Fatalf("int field = %d, want 9", got)
	}
	if got := intField(fields, "close_hour", 22); got != 22 {
		t.Fatalf("absent field = %d, want the current value 22", got)
	}
	fields["close_hour"] = "ten"
	if got := intField(fields, "close_hour", 22); got != 22 {
		t.Fatalf("non-numeric field = %d, want the current value 22", got)
	}
}

func TestResolveGranularity(t *testing.T) {
	t.Parallel()

	if got := resolveGranularity(15, 30); got != 15 {
		t.Fatalf("explicit request = %d, want 15", got)
	}
	if got := resolveGranularity(0, 45); got != 45 {
		t.Fatalf("configured fallback = %d, want 45", got)
	}
	// a pre-validation settings row with slot_minutes 0 must not reach the
	// slot enumeration as a zero step
	if got := resolveGranularity(0, 0); got != fallbackSlotMinutes {
		t.Fatalf("degenerate settings = %d, want %d", got, fallbackSlotMinutes)
	}
	if got := resolveGranularity(-5, -5); got != fallbackSlotMinutes {
		t.Fatalf("negative inputs = %d, want %d", got, fallbackSlotMinutes)
	}
}
