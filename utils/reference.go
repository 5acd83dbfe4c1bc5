package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateBookingReference builds a short display reference like "BR-7F3A2C1D".
func GenerateBookingReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BR-" + strings.ToUpper(raw[:8])
}
