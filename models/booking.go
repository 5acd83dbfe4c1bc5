package models

import (
	"time"
)

// Booking statuses. Cancelled bookings stay in the table for history;
// a hard delete removes the row entirely.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Finance sub-statuses, used only for external (priced) bookings.
const (
	FinancePending  = "finance-pending"
	FinanceApproved = "finance-approved"
	FinanceRejected = "finance-rejected"
)

// BookingKind discriminates the two booking shapes: a token booking is paid
// for in usage credits (per-user account or the shared pool), an external
// booking is paid in currency and runs the finance side-flow instead.
type BookingKind int

const (
	TokenBooking BookingKind = iota
	ExternalBooking
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BoardroomID   uint      `gorm:"index;column:boardroom_id" json:"boardroom_id"`
	ReferenceCode string    `gorm:"column:reference_code;size:64" json:"reference_code,omitempty"`
	Status        string    `gorm:"column:status;size:32;index" json:"status"`
	Date          time.Time `gorm:"column:date" json:"date"`
	StartTime     time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime       time.Time `gorm:"column:end_time" json:"end_time"`
	DurationHours float64   `gorm:"column:duration_hours" json:"duration_hours"`

	// Token custody. TokensUsed is 0 for external bookings.
	TokensUsed  int   `gorm:"column:tokens_used;default:0" json:"tokens_used"`
	IsExisting  bool  `gorm:"column:is_existing;default:true" json:"is_existing"`
	OwnerUserID *uint `gorm:"column:owner_user_id;index" json:"owner_user_id,omitempty"`

	// External (paid) booking fields.
	Price         string  `gorm:"column:price;size:32" json:"price,omitempty"`
	FinanceStatus *string `gorm:"column:finance_status;size:32" json:"finance_status,omitempty"`
	BookerName    string  `gorm:"column:booker_name;size:255" json:"booker_name,omitempty"`
	BookerEmail   string  `gorm:"column:booker_email;size:255" json:"booker_email,omitempty"`

	Boardroom Boardroom `gorm:"foreignKey:BoardroomID;references:ID" json:"boardroom,omitempty"`
	Owner     *User     `gorm:"foreignKey:OwnerUserID;references:ID" json:"owner,omitempty"`
}

// Kind reports which of the two booking shapes this row is. Every piece of
// lifecycle/ledger logic switches on this exhaustively instead of poking at
// nullable fields.
func (b *Booking) Kind() BookingKind {
	if b.IsExisting {
		return TokenBooking
	}
	return ExternalBooking
}

// Active reports whether the booking still blocks its time slot.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
