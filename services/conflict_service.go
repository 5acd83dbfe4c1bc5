package services

import (
	"errors"
	"fmt"
	"time"

	"boardroom-backend/models"
	"boardroom-backend/utils"

	"gorm.io/gorm"
)

// ConflictService decides whether a candidate interval is free on a
// boardroom. Pure read + decision; callers that need the answer to stay true
// until commit run it on their own locked transaction handle.
type ConflictService struct {
	DB *gorm.DB
}

func NewConflictService(db *gorm.DB) *ConflictService {
	return &ConflictService{DB: db}
}

// findOverlap returns the first active booking whose [start, end) interval
// overlaps the candidate, skipping excludeID (the booking being edited).
// Half-open semantics: back-to-back bookings are not conflicts.
func findOverlap(bookings []models.Booking, start, end time.Time, excludeID uint) *models.Booking {
	for i := range bookings {
		b := &bookings[i]
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !b.Active() {
			continue
		}
		if utils.Overlaps(start, end, b.StartTime, b.EndTime) {
			return b
		}
	}
	return nil
}

// activeBookings loads the pending/confirmed bookings for a boardroom.
// Cancelled bookings are logically retracted and never block a slot.
func activeBookings(tx *gorm.DB, boardroomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := tx.
		Where("boardroom_id = ? AND status IN ?", boardroomID,
			[]string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for boardroom %d: %w", boardroomID, err)
	}
	return bookings, nil
}

// CheckAdmissible validates the interval and tests it against the
// boardroom's active bookings inside tx. Returns nil when free, a
// *ConflictError when taken, ErrInvalidInterval / ErrBoardroomNotFound on
// bad input.
func (s *ConflictService) CheckAdmissible(tx *gorm.DB, boardroomID uint, start, end time.Time, excludeBookingID uint) error {
	if !end.After(start) {
		return ErrInvalidInterval
	}

	var room models.Boardroom
	if err := tx.First(&room, boardroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardroomNotFound
		}
		return fmt.Errorf("db error checking boardroom %d: %w", boardroomID, err)
	}

	bookings, err := activeBookings(tx, boardroomID)
	if err != nil {
		return err
	}

	if hit := findOverlap(bookings, start, end, excludeBookingID); hit != nil {
		return &ConflictError{BookingID: hit.ID, Start: hit.StartTime, End: hit.EndTime}
	}
	return nil
}

// IsAdmissible is the read-only variant on the service's own handle, used by
// availability queries and pre-flight checks from the UI.
func (s *ConflictService) IsAdmissible(boardroomID uint, start, end time.Time, excludeBookingID uint) error {
	return s.CheckAdmissible(s.DB, boardroomID, start, end, excludeBookingID)
}
