package services

import (
	"errors"
	"fmt"
	"time"

	"boardroom-backend/utils"
)

// Typed failures surfaced by the lifecycle operations. Controllers map them
// to HTTP statuses with errors.Is / errors.As; they never leak storage detail.
var (
	ErrInvalidInterval    = utils.ErrInvalidInterval
	ErrBoardroomNotFound  = errors.New("boardroom_not_found")
	ErrBookingNotFound    = errors.New("booking_not_found")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrConflictDetected   = errors.New("conflict_detected")
	ErrInsufficientTokens = errors.New("insufficient_tokens")
	ErrInvalidTransition  = errors.New("invalid_transition")
	ErrAlreadyProcessed   = errors.New("already_processed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidSettings    = errors.New("invalid_settings")
)

// ConflictError reports which existing booking blocks the candidate interval
// so callers can suggest alternatives.
type ConflictError struct {
	BookingID uint
	Start     time.Time
	End       time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict_detected: booking %d occupies %s - %s",
		e.BookingID, e.Start.Format("15:04"), e.End.Format("15:04"))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflictDetected }
