package controllers

import (
	"testing"
	"time"
)

func TestParseBookingTime(t *testing.T) {
	t.Parallel()

	t.Run("accepts RFC3339", func(t *testing.T) {
		t.Parallel()
		got, err := parseBookingTime("2026-03-10T09:30:00Z")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		want := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("accepts the plain datetime form", func(t *testing.T) {
		t.Parallel()
		got, err := parseBookingTime("2026-03-10 09:30")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if got.Hour() != 9 || got.Minute() != 30 {
			t.Fatalf("got %v, want 09:30", got)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()
		if _, err := parseBookingTime("next tuesday"); err == nil {
			t.Fatal("expected a parse error")
		}
	})
}
