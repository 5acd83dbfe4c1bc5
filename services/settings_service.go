package services

import (
	"errors"
	"fmt"

	"boardroom-backend/models"

	"gorm.io/gorm"
)

// SettingsService reads and updates the office settings row. Created with
// defaults on first access so availability queries always have a bookable
// window to work with.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

func (s *SettingsService) Get() (*models.OfficeSetting, error) {
	var setting models.OfficeSetting
	err := s.DB.Order("id ASC").First(&setting).Error
	if err == nil {
		return &setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db error loading office settings: %w", err)
	}

	setting = models.OfficeSetting{
		Name:        "Boardroom Office",
		OpenHour:    8,
		CloseHour:   22,
		SlotMinutes: 30,
	}
	if err := s.DB.Create(&setting).Error; err != nil {
		return nil, fmt.Errorf("failed to create office settings: %w", err)
	}
	return &setting, nil
}

// validateOfficeHours rejects bookable-window parameters the availability
// enumeration cannot work with: the slot length must be positive and the
// open/close hours must form a non-empty window within the day.
func validateOfficeHours(openHour, closeHour, slotMinutes int) error {
	if slotMinutes <= 0 {
		return ErrInvalidSettings
	}
	if openHour < 0 || openHour > 23 || closeHour < 1 || closeHour > 24 {
		return ErrInvalidSettings
	}
	if closeHour <= openHour {
		return ErrInvalidSettings
	}
	return nil
}

// intField reads an integer update out of a JSON-decoded field map, falling
// back to the current value when the key is absent.
func intField(fields map[string]interface{}, key string, current int) int {
	v, ok := fields[key]
	if !ok {
		return current
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return current
}

func (s *SettingsService) Update(fields map[string]interface{}) (*models.OfficeSetting, error) {
	setting, err := s.Get()
	if err != nil {
		return nil, err
	}

	openHour := intField(fields, "open_hour", setting.OpenHour)
	closeHour := intField(fields, "close_hour", setting.CloseHour)
	slotMinutes := intField(fields, "slot_minutes", setting.SlotMinutes)
	if err := validateOfficeHours(openHour, closeHour, slotMinutes); err != nil {
		return nil, err
	}

	if err := s.DB.Model(setting).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update office settings: %w", err)
	}
	return s.Get()
}
