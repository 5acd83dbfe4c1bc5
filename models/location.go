package models

import (
	"time"

	"gorm.io/gorm"
)

type Location struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255" json:"name"`
	Address     string         `gorm:"type:text" json:"address"`
	Phone       string         `gorm:"size:50" json:"phone"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// One-To-Many: Location -> Boardrooms (boardrooms go with the location)
	Boardrooms []Boardroom `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"boardrooms,omitempty"`
}
