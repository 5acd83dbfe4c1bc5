package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Boardroom struct {
	gorm.Model

	// Nullable so a payload without a valid location FK doesn't insert 0.
	LocationID *uint  `json:"locationId,omitempty" gorm:"column:location_id;index"`
	Name       string `json:"name" gorm:"column:name;size:255"`
	RoomCode   string `json:"roomCode" gorm:"column:room_code;uniqueIndex;type:varchar(50)"`

	Capacity    int    `json:"capacity" gorm:"column:capacity;default:0"`
	Floor       string `json:"floor" gorm:"type:varchar(10)"`
	Description string `json:"description" gorm:"type:text"`
	Active      bool   `json:"active" gorm:"column:active;default:true"`

	// Free-form amenity list from the frontend, e.g. ["projector","whiteboard"]
	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`

	Location Location  `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Bookings []Booking `gorm:"foreignKey:BoardroomID;constraint:OnDelete:CASCADE" json:"-"`
}
