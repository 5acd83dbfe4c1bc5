package services

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"boardroom-backend/models"
	"boardroom-backend/utils"
)

func mustTime(hour, min int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, 0, 0, time.UTC)
}

func booking(id uint, status string, start, end time.Time) models.Booking {
	return models.Booking{
		ID:        id,
		Status:    status,
		StartTime: start,
		EndTime:   end,
	}
}

func TestFindOverlap(t *testing.T) {
	t.Parallel()

	existing := []models.Booking{
		booking(1, models.BookingStatusConfirmed, mustTime(9, 0), mustTime(10, 30)),
		booking(2, models.BookingStatusPending, mustTime(14, 0), mustTime(15, 0)),
		booking(3, models.BookingStatusCancelled, mustTime(11, 0), mustTime(12, 0)),
	}

	t.Run("back-to-back after a confirmed booking is admissible", func(t *testing.T) {
		t.Parallel()
		if hit := findOverlap(existing, mustTime(10, 30), mustTime(11, 30), 0); hit != nil {
			t.Fatalf("got conflict with booking %d, want none", hit.ID)
		}
	})

	t.Run("overlapping a confirmed booking conflicts", func(t *testing.T) {
		t.Parallel()
		hit := findOverlap(existing, mustTime(10, 0), mustTime(11, 0), 0)
		if hit == nil {
			t.Fatal("got no conflict, want conflict with booking 1")
		}
		if hit.ID != 1 {
			t.Fatalf("conflicted with booking %d, want 1", hit.ID)
		}
	})

	t.Run("overlapping a pending booking conflicts", func(t *testing.T) {
		t.Parallel()
		hit := findOverlap(existing, mustTime(14, 30), mustTime(16, 0), 0)
		if hit == nil || hit.ID != 2 {
			t.Fatalf("got %v, want conflict with booking 2", hit)
		}
	})

	t.Run("cancelled bookings release their slot", func(t *testing.T) {
		t.Parallel()
		if hit := findOverlap(existing, mustTime(11, 0), mustTime(12, 0), 0); hit != nil {
			t.Fatalf("got conflict with booking %d, want none", hit.ID)
		}
	})

	t.Run("a booking never conflicts with itself during edit", func(t *testing.T) {
		t.Parallel()
		if hit := findOverlap(existing, mustTime(9, 0), mustTime(10, 0), 1); hit != nil {
			t.Fatalf("got conflict with booking %d, want none", hit.ID)
		}
	})

	t.Run("edit excluding self still sees other bookings", func(t *testing.T) {
		t.Parallel()
		hit := findOverlap(existing, mustTime(13, 30), mustTime(14, 30), 1)
		if hit == nil || hit.ID != 2 {
			t.Fatalf("got %v, want conflict with booking 2", hit)
		}
	})

	t.Run("candidate containing an existing booking conflicts", func(t *testing.T) {
		t.Parallel()
		hit := findOverlap(existing, mustTime(8, 0), mustTime(16, 0), 0)
		if hit == nil {
			t.Fatal("got no conflict, want one")
		}
	})
}

// Admitting random intervals one by one through findOverlap must never yield
// a set with two overlapping bookings.
func TestFindOverlapNeverAdmitsDoubleBooking(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 200; round++ {
		var admitted []models.Booking
		for i := 0; i < 40; i++ {
			// random half-hour-aligned interval within 08:00-22:00
			startSlot := rng.Intn(27)
			lenSlots := 1 + rng.Intn(8)
			start := day.Add(time.Duration(8*60+30*startSlot) * time.Minute)
			end := start.Add(time.Duration(30*lenSlots) * time.Minute)

			if findOverlap(admitted, start, end, 0) != nil {
				continue
			}
			admitted = append(admitted, booking(uint(len(admitted)+1),
				models.BookingStatusConfirmed, start, end))
		}

		for i := range admitted {
			for j := i + 1; j < len(admitted); j++ {
				a, b := admitted[i], admitted[j]
				if utils.Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
					t.Fatalf("round %d admitted overlapping bookings %v-%v and %v-%v",
						round,
						a.StartTime.Format("15:04"), a.EndTime.Format("15:04"),
						b.StartTime.Format("15:04"), b.EndTime.Format("15:04"))
				}
			}
		}
	}
}

func TestConflictErrorMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := &ConflictError{BookingID: 7, Start: mustTime(9, 0), End: mustTime(10, 0)}
	if !errors.Is(err, ErrConflictDetected) {
		t.Fatal("ConflictError should match ErrConflictDetected with errors.Is")
	}

	var ce *ConflictError
	if !errors.As(error(err), &ce) {
		t.Fatal("errors.As should extract *ConflictError")
	}
	if ce.BookingID != 7 {
		t.Fatalf("BookingID = %d, want 7", ce.BookingID)
	}
}
