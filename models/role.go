package models

import "time"

// Role names known to the lifecycle transition table.
const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleUser         = "user"
	RoleFinanceAdmin = "financeadmin"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
