package services

import (
	"testing"
	"time"

	"boardroom-backend/models"
)

func day() time.Time {
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
}

func TestAvailableStarts(t *testing.T) {
	t.Parallel()

	gran := 30 * time.Minute
	past := mustTime(0, 0) // a different day: no today-cutoff in effect
	pastDay := past.AddDate(0, 0, -1)

	t.Run("empty day exposes every slot", func(t *testing.T) {
		t.Parallel()
		starts := availableStarts(nil, day(), 9, 12, gran, pastDay)
		if len(starts) != 6 {
			t.Fatalf("got %d starts, want 6", len(starts))
		}
		if !starts[0].Equal(mustTime(9, 0)) || !starts[5].Equal(mustTime(11, 30)) {
			t.Fatalf("starts span %v..%v, want 09:00..11:30", starts[0], starts[5])
		}
	})

	t.Run("a booking removes the slots it covers", func(t *testing.T) {
		t.Parallel()
		bookings := []models.Booking{
			booking(1, models.BookingStatusConfirmed, mustTime(10, 0), mustTime(11, 0)),
		}
		starts := availableStarts(bookings, day(), 9, 12, gran, pastDay)
		want := []time.Time{mustTime(9, 0), mustTime(9, 30), mustTime(11, 0), mustTime(11, 30)}
		if len(starts) != len(want) {
			t.Fatalf("got %d starts %v, want %d", len(starts), starts, len(want))
		}
		for i := range want {
			if !starts[i].Equal(want[i]) {
				t.Fatalf("starts[%d] = %v, want %v", i, starts[i], want[i])
			}
		}
	})

	t.Run("a cancelled booking frees its slots", func(t *testing.T) {
		t.Parallel()
		bookings := []models.Booking{
			booking(1, models.BookingStatusCancelled, mustTime(10, 0), mustTime(11, 0)),
		}
		starts := availableStarts(bookings, day(), 9, 12, gran, pastDay)
		if len(starts) != 6 {
			t.Fatalf("got %d starts, want 6", len(starts))
		}
	})

	t.Run("today's elapsed slots are cut off at the next boundary", func(t *testing.T) {
		t.Parallel()
		now := mustTime(10, 7)
		starts := availableStarts(nil, day(), 9, 12, gran, now)
		if len(starts) == 0 {
			t.Fatal("got no starts")
		}
		if !starts[0].Equal(mustTime(10, 30)) {
			t.Fatalf("first start = %v, want 10:30", starts[0])
		}
	})

	t.Run("cutoff holds when the clock runs in another timezone", func(t *testing.T) {
		t.Parallel()
		// 17:07 at UTC+7 is 10:07 UTC on the same date: the cutoff must
		// still land on 10:30 UTC, not treat the day as already over.
		bangkok := time.FixedZone("UTC+7", 7*60*60)
		now := time.Date(2026, time.March, 10, 17, 7, 0, 0, bangkok)
		starts := availableStarts(nil, day(), 9, 12, gran, now)
		if len(starts) == 0 {
			t.Fatal("got no starts")
		}
		if !starts[0].Equal(mustTime(10, 30)) {
			t.Fatalf("first start = %v, want 10:30", starts[0])
		}
	})

	t.Run("late in the day nothing remains", func(t *testing.T) {
		t.Parallel()
		now := mustTime(11, 45)
		starts := availableStarts(nil, day(), 9, 12, gran, now)
		if len(starts) != 0 {
			t.Fatalf("got %d starts %v, want none", len(starts), starts)
		}
	})
}

func TestAllowedDurations(t *testing.T) {
	t.Parallel()

	gran := 30 * time.Minute

	t.Run("free afternoon runs to close of day", func(t *testing.T) {
		t.Parallel()
		ds := allowedDurations(nil, mustTime(12, 0), 14, gran)
		want := []time.Duration{30 * time.Minute, time.Hour, 90 * time.Minute, 2 * time.Hour}
		if len(ds) != len(want) {
			t.Fatalf("got %d durations %v, want %d", len(ds), ds, len(want))
		}
		for i := range want {
			if ds[i] != want[i] {
				t.Fatalf("durations[%d] = %v, want %v", i, ds[i], want[i])
			}
		}
	})

	t.Run("enumeration stops at the next booking", func(t *testing.T) {
		t.Parallel()
		bookings := []models.Booking{
			booking(1, models.BookingStatusPending, mustTime(12, 0), mustTime(13, 0)),
		}
		// 10:30 + 90m = 12:00, back-to-back with the booking: still legal.
		ds := allowedDurations(bookings, mustTime(10, 30), 14, gran)
		want := []time.Duration{30 * time.Minute, time.Hour, 90 * time.Minute}
		if len(ds) != len(want) {
			t.Fatalf("got %d durations %v, want %d", len(ds), ds, len(want))
		}
		if ds[len(ds)-1] != 90*time.Minute {
			t.Fatalf("longest duration = %v, want 90m", ds[len(ds)-1])
		}
	})

	t.Run("start inside an existing booking allows nothing", func(t *testing.T) {
		t.Parallel()
		bookings := []models.Booking{
			booking(1, models.BookingStatusConfirmed, mustTime(10, 0), mustTime(11, 0)),
		}
		ds := allowedDurations(bookings, mustTime(10, 30), 14, gran)
		if len(ds) != 0 {
			t.Fatalf("got durations %v, want none", ds)
		}
	})
}
