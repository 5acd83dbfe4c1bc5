package services

import (
	"errors"
	"fmt"
	"time"

	"boardroom-backend/models"
	"boardroom-backend/utils"

	"gorm.io/gorm"
)

// AvailabilityService answers the two booking-UI questions: which start
// times are still free on a date, and how long a booking starting at a given
// time may run. Both use the same overlap predicate as the conflict
// detector, so a slot offered here is a slot the admission path will accept.
type AvailabilityService struct {
	DB       *gorm.DB
	Conflict *ConflictService
	Settings *SettingsService
	Now      func() time.Time // injectable for tests
}

func NewAvailabilityService(db *gorm.DB, conflict *ConflictService, settings *SettingsService) *AvailabilityService {
	return &AvailabilityService{DB: db, Conflict: conflict, Settings: settings, Now: time.Now}
}

// availableStarts enumerates slot starts on date that a granularity-sized
// booking could take. When date is today, starts earlier than now (rounded
// up to the next boundary) are dropped. now is compared in date's location
// so the cutoff is not skewed by the server timezone.
func availableStarts(bookings []models.Booking, date time.Time, openHour, closeHour int, granularity time.Duration, now time.Time) []time.Time {
	now = now.In(date.Location())

	var cutoff time.Time
	if sameDay(date, now) {
		cutoff = utils.RoundUpToGranularity(now, granularity)
	}

	starts := []time.Time{}
	for _, t := range utils.SlotStarts(date, openHour, closeHour, granularity) {
		if !cutoff.IsZero() && t.Before(cutoff) {
			continue
		}
		if findOverlap(bookings, t, t.Add(granularity), 0) == nil {
			starts = append(starts, t)
		}
	}
	return starts
}

// allowedDurations enumerates the legal durations for a booking starting at
// start, in ascending granularity multiples up to the close of day. Growing
// an interval only ever adds overlaps, so enumeration stops at the first
// duration that conflicts.
func allowedDurations(bookings []models.Booking, start time.Time, closeHour int, granularity time.Duration) []time.Duration {
	dayEnd := time.Date(start.Year(), start.Month(), start.Day(), closeHour, 0, 0, 0, start.Location())

	durations := []time.Duration{}
	for d := granularity; !start.Add(d).After(dayEnd); d += granularity {
		if findOverlap(bookings, start, start.Add(d), 0) != nil {
			break
		}
		durations = append(durations, d)
	}
	return durations
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// fallbackSlotMinutes covers a settings row whose slot length predates
// validation; the enumeration must never run with a non-positive step.
const fallbackSlotMinutes = 30

func resolveGranularity(requested, configured int) int {
	if requested > 0 {
		return requested
	}
	if configured > 0 {
		return configured
	}
	return fallbackSlotMinutes
}

func (s *AvailabilityService) loadRoomBookings(boardroomID uint) ([]models.Booking, error) {
	var room models.Boardroom
	if err := s.DB.First(&room, boardroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardroomNotFound
		}
		return nil, fmt.Errorf("db error checking boardroom %d: %w", boardroomID, err)
	}
	return activeBookings(s.DB, boardroomID)
}

// ListAvailableStarts returns the free start times for a boardroom on one
// date. granularityMinutes 0 falls back to the configured slot length.
func (s *AvailabilityService) ListAvailableStarts(boardroomID uint, date time.Time, granularityMinutes int) ([]time.Time, error) {
	settings, err := s.Settings.Get()
	if err != nil {
		return nil, err
	}
	granularityMinutes = resolveGranularity(granularityMinutes, settings.SlotMinutes)

	bookings, err := s.loadRoomBookings(boardroomID)
	if err != nil {
		return nil, err
	}

	granularity := time.Duration(granularityMinutes) * time.Minute
	return availableStarts(bookings, date, settings.OpenHour, settings.CloseHour, granularity, s.Now()), nil
}

// AllowedDurations returns the legal durations (in minutes, ascending) for a
// booking starting at start.
func (s *AvailabilityService) AllowedDurations(boardroomID uint, start time.Time, granularityMinutes int) ([]int, error) {
	settings, err := s.Settings.Get()
	if err != nil {
		return nil, err
	}
	granularityMinutes = resolveGranularity(granularityMinutes, settings.SlotMinutes)

	bookings, err := s.loadRoomBookings(boardroomID)
	if err != nil {
		return nil, err
	}

	granularity := time.Duration(granularityMinutes) * time.Minute
	minutes := []int{}
	for _, d := range allowedDurations(bookings, start, settings.CloseHour, granularity) {
		minutes = append(minutes, int(d.Minutes()))
	}
	return minutes, nil
}
