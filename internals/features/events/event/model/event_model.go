package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "eventhub_backend/internals/features/users/user/model"
)

/* =======================================================
   Enums
   ======================================================= */

var Categories = []string{
	"arts", "business", "family", "food", "music", "social", "sports", "tech",
}

const (
	SeatingGeneral  = "general"
	SeatingReserved = "reserved"
)

var SeatingTypes = []string{SeatingGeneral, SeatingReserved}

func ValidCategory(v string) bool    { return contains(Categories, v) }
func ValidSeatingType(v string) bool { return contains(SeatingTypes, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

/* =======================================================
   Models
   ======================================================= */

// EventModel owns its price zones and images; deleting an event removes the
// dependent rows through the FK cascade.
type EventModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Date        datatypes.Date `gorm:"not null" json:"date"`
	Time        datatypes.Time `gorm:"not null" json:"time"`
	Location    string         `gorm:"size:255;not null" json:"location"`
	Category    string         `gorm:"size:20;not null" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	SeatingType string         `gorm:"size:10;not null;default:'general'" json:"seating_type"`

	OrganizerID uuid.UUID           `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer   userModel.UserModel `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"-"`

	PriceZones []EventPriceZoneModel `gorm:"foreignKey:EventID" json:"price_zones"`
	Images     []EventImageModel     `gorm:"foreignKey:EventID" json:"images"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

// EventImageModel holds one CDN URL per uploaded file; no local file is ever
// persisted.
type EventImageModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	Event    EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	ImageURL string     `gorm:"size:255;not null" json:"image_url"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EventImageModel) TableName() string {
	return "event_images"
}

type EventPriceZoneModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	Event     EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	ZoneName  string     `gorm:"size:50;not null" json:"zone_name"`
	ZonePrice float64    `gorm:"type:numeric(10,2);not null" json:"zone_price"`
	ZoneSeats int        `gorm:"not null" json:"zone_seats"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EventPriceZoneModel) TableName() string {
	return "event_price_zones"
}
