package models

import "time"

// OfficeSetting holds the organisation profile plus the booking parameters
// the availability service reads: bookable day window and slot granularity.
type OfficeSetting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`
	Website string `gorm:"size:255" json:"website"`

	OpenHour    int `gorm:"column:open_hour;default:8" json:"open_hour"`
	CloseHour   int `gorm:"column:close_hour;default:22" json:"close_hour"`
	SlotMinutes int `gorm:"column:slot_minutes;default:30" json:"slot_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
