package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"boardroom-backend/models"
	"boardroom-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService orchestrates the booking lifecycle. Every transition runs as
// one transaction: conflict check, balance check and the resulting writes
// commit together or not at all. Rows are locked bookings-first, ledger-second
// so concurrent transitions on different resources cannot deadlock.
type BookingService struct {
	DB       *gorm.DB
	Conflict *ConflictService
	Ledger   *LedgerService
}

func NewBookingService(db *gorm.DB, conflict *ConflictService, ledger *LedgerService) *BookingService {
	return &BookingService{DB: db, Conflict: conflict, Ledger: ledger}
}

// CreateBookingInput carries a parsed booking request. Price set and
// IsExisting false means an external (paid) booking; otherwise a token
// booking debiting the owner's account, or the shared pool when no owner is
// given (anonymous administrative booking).
type CreateBookingInput struct {
	BoardroomID uint
	StartTime   time.Time
	EndTime     time.Time

	IsExisting  bool
	OwnerUserID *uint

	Price       string
	BookerName  string
	BookerEmail string
}

// ---------------------------
// Row locking helpers
// ---------------------------

func lockBooking(tx *gorm.DB, id uint) (*models.Booking, error) {
	var b models.Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("db error loading booking %d: %w", id, err)
	}
	return &b, nil
}

// lockBoardroom serializes admission decisions per boardroom: every mutating
// transition that needs a conflict answer locks the room row before reading
// its bookings.
func lockBoardroom(tx *gorm.DB, id uint) (*models.Boardroom, error) {
	var room models.Boardroom
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardroomNotFound
		}
		return nil, fmt.Errorf("db error locking boardroom %d: %w", id, err)
	}
	return &room, nil
}

// ---------------------------
// Ledger custody
// ---------------------------

// debitCustody charges amount to whichever ledger holds custody for b.
// External bookings never move tokens.
func (s *BookingService) debitCustody(tx *gorm.DB, b *models.Booking, amount int) error {
	if amount == 0 {
		return nil
	}
	switch b.Kind() {
	case models.TokenBooking:
		if b.OwnerUserID != nil {
			return s.Ledger.DebitUser(tx, *b.OwnerUserID, amount)
		}
		return s.Ledger.DebitPool(tx, amount)
	case models.ExternalBooking:
		return nil
	}
	return nil
}

func (s *BookingService) creditCustody(tx *gorm.DB, b *models.Booking, amount int) error {
	if amount == 0 {
		return nil
	}
	switch b.Kind() {
	case models.TokenBooking:
		if b.OwnerUserID != nil {
			return s.Ledger.CreditUser(tx, *b.OwnerUserID, amount)
		}
		return s.Ledger.CreditPool(tx, amount)
	case models.ExternalBooking:
		return nil
	}
	return nil
}

func (s *BookingService) adjustCustody(tx *gorm.DB, b *models.Booking, delta int) error {
	if delta >= 0 {
		return s.debitCustody(tx, b, delta)
	}
	return s.creditCustody(tx, b, -delta)
}

// ---------------------------
// Create
// ---------------------------

// Create admits a new booking: conflict check, then token debit (token
// bookings only), then the row write, all in one transaction. The booking is
// created pending; approval is a separate transition.
func (s *BookingService) Create(input CreateBookingInput, role string) (*models.Booking, error) {
	if _, err := ruleFor(ActionCreate, role, ""); err != nil {
		return nil, err
	}

	hours, err := utils.DurationHours(input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}

	external := !input.IsExisting
	tokens := 0
	if !external {
		if tokens, err = utils.TokensForInterval(input.StartTime, input.EndTime); err != nil {
			return nil, err
		}
	}

	st := input.StartTime
	booking := models.Booking{
		BoardroomID:   input.BoardroomID,
		ReferenceCode: utils.GenerateBookingReference(),
		Status:        models.BookingStatusPending,
		Date:          time.Date(st.Year(), st.Month(), st.Day(), 0, 0, 0, 0, st.Location()),
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		DurationHours: hours,
		TokensUsed:    tokens,
		IsExisting:    input.IsExisting,
		OwnerUserID:   input.OwnerUserID,
		BookerName:    input.BookerName,
		BookerEmail:   input.BookerEmail,
	}
	if external {
		booking.Price = input.Price
		fs := models.FinancePending
		booking.FinanceStatus = &fs
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := lockBoardroom(tx, input.BoardroomID); err != nil {
			return err
		}
		if err := s.Conflict.CheckAdmissible(tx, input.BoardroomID, input.StartTime, input.EndTime, 0); err != nil {
			return err
		}
		if err := s.debitCustody(tx, &booking, tokens); err != nil {
			return err
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(booking.ID)
}

// ---------------------------
// Status transitions
// ---------------------------

func (s *BookingService) transition(id uint, action Action, role string) (*models.Booking, error) {
	var bookingID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		rule, err := ruleFor(action, role, booking.Status)
		if err != nil {
			return err
		}

		switch rule.effect {
		case effectNone:
		case effectRefund:
			if err := s.creditCustody(tx, booking, booking.TokensUsed); err != nil {
				return err
			}
		case effectRedebit:
			// Re-activation: the slot and the tokens both have to be
			// available again.
			if _, err := lockBoardroom(tx, booking.BoardroomID); err != nil {
				return err
			}
			if err := s.Conflict.CheckAdmissible(tx, booking.BoardroomID,
				booking.StartTime, booking.EndTime, booking.ID); err != nil {
				return err
			}
			if err := s.debitCustody(tx, booking, booking.TokensUsed); err != nil {
				return err
			}
		}

		if err := tx.Model(booking).Update("status", rule.to).Error; err != nil {
			return fmt.Errorf("failed to update booking %d status: %w", id, err)
		}
		bookingID = booking.ID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(bookingID)
}

// Approve confirms a pending booking. No token movement: tokens were already
// debited at creation.
func (s *BookingService) Approve(id uint, role string) (*models.Booking, error) {
	booking, err := s.transition(id, ActionApprove, role)
	if err != nil {
		return nil, err
	}
	s.notifyConfirmed(booking)
	return booking, nil
}

// Reject cancels a pending booking and refunds its tokens to the custodian.
func (s *BookingService) Reject(id uint, role string) (*models.Booking, error) {
	return s.transition(id, ActionReject, role)
}

// ChangeStatus routes a requested target status to the matching transition:
// cancelled -> cancel (refund), confirmed from cancelled -> re-confirm
// (balance- and conflict-checked re-debit), confirmed from pending -> approve.
func (s *BookingService) ChangeStatus(id uint, target string, role string) (*models.Booking, error) {
	switch target {
	case models.BookingStatusCancelled:
		return s.transition(id, ActionCancel, role)
	case models.BookingStatusConfirmed:
		var current models.Booking
		if err := s.DB.Select("status").First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, fmt.Errorf("db error loading booking %d: %w", id, err)
		}
		if current.Status == models.BookingStatusCancelled {
			return s.transition(id, ActionReconfirm, role)
		}
		return s.Approve(id, role)
	default:
		return nil, ErrInvalidTransition
	}
}

// ---------------------------
// Edit
// ---------------------------

// EditBookingInput carries the mutable fields of an edit request.
type EditBookingInput struct {
	BoardroomID uint // 0 keeps the current room
	StartTime   time.Time
	EndTime     time.Time
	Price       string // external bookings only
}

// Edit re-validates the new interval (excluding the booking itself) and
// applies the token delta between old and new cost. On any failure the
// booking is left exactly as it was.
func (s *BookingService) Edit(id uint, input EditBookingInput, role string) (*models.Booking, error) {
	hours, err := utils.DurationHours(input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		rule, err := ruleFor(ActionEdit, role, booking.Status)
		if err != nil {
			return err
		}

		roomID := booking.BoardroomID
		if input.BoardroomID != 0 {
			roomID = input.BoardroomID
		}

		if _, err := lockBoardroom(tx, roomID); err != nil {
			return err
		}
		if err := s.Conflict.CheckAdmissible(tx, roomID, input.StartTime, input.EndTime, booking.ID); err != nil {
			return err
		}

		newTokens := booking.TokensUsed
		if booking.Kind() == models.TokenBooking {
			if newTokens, err = utils.TokensForInterval(input.StartTime, input.EndTime); err != nil {
				return err
			}
			if rule.effect == effectAdjust {
				if err := s.adjustCustody(tx, booking, newTokens-booking.TokensUsed); err != nil {
					return err
				}
			}
		}

		st := input.StartTime
		fields := map[string]interface{}{
			"boardroom_id":   roomID,
			"date":           time.Date(st.Year(), st.Month(), st.Day(), 0, 0, 0, 0, st.Location()),
			"start_time":     input.StartTime,
			"end_time":       input.EndTime,
			"duration_hours": hours,
			"tokens_used":    newTokens,
		}
		if booking.Kind() == models.ExternalBooking && input.Price != "" {
			fields["price"] = input.Price
		}
		if err := tx.Model(booking).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update booking %d: %w", id, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(id)
}

// ---------------------------
// Delete
// ---------------------------

// Delete removes the booking row entirely. Refund policy: always refund the
// custodian, except when the booking was already cancelled and no owning
// user is identified. Deliberately kept as-is, do not "fix" without product
// confirmation.
func (s *BookingService) Delete(id uint, role string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		if _, err := ruleFor(ActionDelete, role, booking.Status); err != nil {
			return err
		}

		skipRefund := booking.Status == models.BookingStatusCancelled && booking.OwnerUserID == nil
		if !skipRefund {
			if err := s.creditCustody(tx, booking, booking.TokensUsed); err != nil {
				return err
			}
		}

		if err := tx.Delete(booking).Error; err != nil {
			return fmt.Errorf("failed to delete booking %d: %w", id, err)
		}
		return nil
	})
}

// ---------------------------
// Finance sub-flow
// ---------------------------

// SetFinanceStatus runs the finance side-flow on an external booking. A
// financeadmin may finalize finance-pending exactly once; a manager may
// overwrite any value.
func (s *BookingService) SetFinanceStatus(id uint, next string, role string) (*models.Booking, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		if booking.Kind() != models.ExternalBooking {
			return ErrInvalidTransition
		}
		if err := financeTransition(role, booking.FinanceStatus, next); err != nil {
			return err
		}
		if err := tx.Model(booking).Update("finance_status", next).Error; err != nil {
			return fmt.Errorf("failed to update booking %d finance status: %w", id, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(id)
}

// ---------------------------
// Queries
// ---------------------------

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Boardroom").
		Preload("Boardroom.Location").
		Preload("Owner").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking %d: %w", id, err)
	}
	return &booking, nil
}

func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	err := s.DB.
		Preload("Boardroom").
		Preload("Boardroom.Location").
		Preload("Owner").
		Order("start_time DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// notifyConfirmed emails the booker after an approval commits. Best-effort:
// a mail failure never unwinds the transition.
func (s *BookingService) notifyConfirmed(b *models.Booking) {
	email := b.BookerEmail
	name := b.BookerName
	if b.Owner != nil {
		email = b.Owner.Email
		name = b.Owner.FullName
	}
	if email == "" {
		return
	}
	if err := utils.SendBookingConfirmationEmail(email, name, b.ReferenceCode,
		b.Boardroom.Name, b.StartTime, b.EndTime); err != nil {
		log.Printf("warning: confirmation email for booking %d failed: %v", b.ID, err)
	}
}
