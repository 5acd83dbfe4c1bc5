package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a known (internal) booker with a monthly token account.
// TokensAvailable is a real column, not derived: admin grants can push it
// above token_limit - tokens_used.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:255" json:"full_name"`
	Email     string         `gorm:"uniqueIndex;size:150" json:"email"`
	Phone     string         `gorm:"size:50" json:"phone,omitempty"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TokenLimit      int `gorm:"column:token_limit;default:20" json:"token_limit"`
	TokensUsed      int `gorm:"column:tokens_used;default:0" json:"tokens_used"`
	TokensAvailable int `gorm:"column:tokens_available;default:20" json:"tokens_available"`

	Bookings []Booking `gorm:"foreignKey:OwnerUserID" json:"-"`
}
