package models

import "time"

// TokenPool is the single shared ledger row for bookings that carry tokens
// but no owning user (anonymous administrative bookings). It is created
// lazily on first access; see LedgerService.GetPool.
type TokenPool struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	InitialCount        int       `gorm:"column:initial_count" json:"initial_count"`
	AvailableCount      int       `gorm:"column:available_count" json:"available_count"`
	TokensUsedThisMonth int       `gorm:"column:tokens_used_this_month" json:"tokens_used_this_month"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
