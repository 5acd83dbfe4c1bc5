package services

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"boardroom-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPaymentOrderNotFound = errors.New("payment_order_not_found")
	ErrBadSignature         = errors.New("bad_signature")
)

// PaymentService talks to the external payment gateway for external (priced)
// bookings. The gateway contract: requests carry an MD5 signature over the
// sorted key=value pairs plus the merchant secret; notifications carry the
// same signature scheme and are only trusted when it verifies.
type PaymentService struct {
	DB         *gorm.DB
	MerchantID string
	Secret     string
}

func NewPaymentService(db *gorm.DB, merchantID, secret string) *PaymentService {
	return &PaymentService{DB: db, MerchantID: merchantID, Secret: secret}
}

// signParams computes the gateway signature: md5 of "k1=v1&k2=v2...&key=secret"
// with keys sorted, empty values and the sign field itself excluded.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == "sign" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(params[k])
		sb.WriteString("&")
	}
	sb.WriteString("key=")
	sb.WriteString(secret)

	sum := md5.Sum([]byte(sb.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// verifyParams checks a notification's signature against our secret.
func verifyParams(params map[string]string, secret string) bool {
	got, ok := params["sign"]
	if !ok || got == "" {
		return false
	}
	return strings.EqualFold(got, signParams(params, secret))
}

// encodeNotification renders a form-encoded notification as JSON for the
// audit column. The gateway sends k=v pairs, not JSON, so the raw body
// cannot go into a JSON column directly.
func encodeNotification(params map[string]string) datatypes.JSON {
	payload, err := json.Marshal(params)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(payload)
}

// handshakeParams builds the signed request the frontend forwards to the
// gateway for one payment order.
func handshakeParams(merchantID, secret string, order *models.PaymentOrder, referenceCode string) map[string]string {
	params := map[string]string{
		"merchant_id": merchantID,
		"order_no":    order.OrderNo,
		"amount":      order.Amount,
		"currency":    order.Currency,
		"subject":     "Boardroom booking " + referenceCode,
	}
	params["sign"] = signParams(params, secret)
	return params
}

// Initiate creates a payment order for an external booking and returns the
// signed handshake the frontend forwards to the gateway.
func (s *PaymentService) Initiate(bookingID uint) (map[string]string, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("db error loading booking %d: %w", bookingID, err)
	}
	if booking.Kind() != models.ExternalBooking {
		return nil, ErrInvalidTransition
	}

	order := models.PaymentOrder{
		BookingID: booking.ID,
		Amount:    booking.Price,
		// The column default only exists database-side; the handshake needs
		// the value in the struct.
		Currency: "THB",
		Status:   models.PaymentStatusInitiated,
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	return handshakeParams(s.MerchantID, s.Secret, &order, booking.ReferenceCode), nil
}

// Verify checks a raw notification and reports the order it refers to.
func (s *PaymentService) Verify(params map[string]string) (string, bool) {
	return params["order_no"], verifyParams(params, s.Secret)
}

// HandleNotification processes a gateway callback: signature gate first,
// then mark the order paid. Idempotent — replayed notifications for a paid
// order are acknowledged without changes.
func (s *PaymentService) HandleNotification(params map[string]string) error {
	orderNo, ok := s.Verify(params)
	if !ok {
		return ErrBadSignature
	}
	if orderNo == "" {
		return ErrPaymentOrderNotFound
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.PaymentOrder
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_no = ?", orderNo).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentOrderNotFound
			}
			return fmt.Errorf("db error loading payment order %s: %w", orderNo, err)
		}

		if order.Status == models.PaymentStatusPaid {
			return nil
		}

		now := time.Now().UTC()
		err = tx.Model(&order).Updates(map[string]interface{}{
			"status":           models.PaymentStatusPaid,
			"paid_at":          now,
			"raw_notification": encodeNotification(params),
		}).Error
		if err != nil {
			return fmt.Errorf("failed to mark payment order %s paid: %w", orderNo, err)
		}

		// A settled payment closes the finance side-flow unless a human
		// already decided it.
		err = tx.Model(&models.Booking{}).
			Where("id = ? AND finance_status = ?", order.BookingID, models.FinancePending).
			Update("finance_status", models.FinanceApproved).Error
		if err != nil {
			return fmt.Errorf("failed to update finance status for booking %d: %w", order.BookingID, err)
		}
		return nil
	})
}
