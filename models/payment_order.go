package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
)

// PaymentOrder tracks one handshake with the external payment gateway for an
// external (priced) booking. The raw notification body is kept for audits.
type PaymentOrder struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OrderNo   string `gorm:"column:order_no;uniqueIndex;size:64" json:"order_no"`
	BookingID uint   `gorm:"column:booking_id;index" json:"booking_id"`
	Amount    string `gorm:"column:amount;size:32" json:"amount"`
	Currency  string `gorm:"column:currency;size:8;default:THB" json:"currency"`
	Status    string `gorm:"column:status;size:32" json:"status"`

	RawNotification datatypes.JSON `gorm:"column:raw_notification" json:"raw_notification,omitempty"`
	PaidAt          *time.Time     `gorm:"column:paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}

func (o *PaymentOrder) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNo == "" {
		o.OrderNo = uuid.NewString()
	}
	return nil
}
