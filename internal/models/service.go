package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityOffline   Availability = "offline"
)

// Service is a single advertised listing by a provider.
type Service struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`

	Title    string `gorm:"type:varchar(150);not null" json:"title"`
	Category string `gorm:"type:varchar(80);not null;index" json:"category"`
	Location string `gorm:"type:varchar(200)" json:"location"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Availability Availability `gorm:"type:varchar(20);default:'available'" json:"availability"`

	// derived cache, owned by the review aggregator (see handlers/review_handler.go)
	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	Description string         `gorm:"type:text" json:"description"`
	Image       string         `gorm:"type:text" json:"image"`
	Price       string         `gorm:"type:varchar(60)" json:"price"`
	Skills      datatypes.JSON `json:"skills"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Provider *User `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}
